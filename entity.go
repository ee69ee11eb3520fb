package wld

// NPCEntity is a town or quest NPC placed in the world.
type NPCEntity struct {
	Name        string
	DisplayName string
	PosX, PosY  float32
	Homeless    bool
	HomeX, HomeY int32
}

// MobEntity is a saved enemy/critter (present only from Version140 on).
type MobEntity struct {
	Name       string
	PosX, PosY float32
}

// Tile entity type tags, as stored in the tile-entities section.
const (
	tileEntityDummy     = 0
	tileEntityItemFrame = 1
)

// TileEntityKind distinguishes the two known tile-entity payload shapes.
type TileEntityKind uint8

const (
	TileEntityKindDummy TileEntityKind = iota
	TileEntityKindItemFrame
	TileEntityKindUnknown
)

// TileEntity is a tagged record anchored to a tile; its payload depends
// on Kind. Dummy entities back mannequins/training dummies; ItemFrame
// entities back displayed items.
type TileEntity struct {
	ID   int32
	X, Y int16
	Kind TileEntityKind

	// Dummy payload.
	NPC int16

	// ItemFrame payload.
	ItemID int16
	Prefix uint8
	Stack  int16
}

func readNPCs(s *ByteStream, version uint32) ([]NPCEntity, []MobEntity, error) {
	var npcs []NPCEntity
	for {
		more, err := s.ReadBool()
		if err != nil {
			return nil, nil, err
		}
		if !more {
			break
		}
		name, err := s.ReadString()
		if err != nil {
			return nil, nil, err
		}
		displayName, err := s.ReadString()
		if err != nil {
			return nil, nil, err
		}
		posX, err := s.ReadF32()
		if err != nil {
			return nil, nil, err
		}
		posY, err := s.ReadF32()
		if err != nil {
			return nil, nil, err
		}
		homeless, err := s.ReadBool()
		if err != nil {
			return nil, nil, err
		}
		homeX, err := s.ReadI32()
		if err != nil {
			return nil, nil, err
		}
		homeY, err := s.ReadI32()
		if err != nil {
			return nil, nil, err
		}
		npcs = append(npcs, NPCEntity{
			Name: name, DisplayName: displayName,
			PosX: posX, PosY: posY,
			Homeless: homeless, HomeX: homeX, HomeY: homeY,
		})
	}

	var mobs []MobEntity
	if version >= Version140 {
		for {
			more, err := s.ReadBool()
			if err != nil {
				return nil, nil, err
			}
			if !more {
				break
			}
			name, err := s.ReadString()
			if err != nil {
				return nil, nil, err
			}
			posX, err := s.ReadF32()
			if err != nil {
				return nil, nil, err
			}
			posY, err := s.ReadF32()
			if err != nil {
				return nil, nil, err
			}
			mobs = append(mobs, MobEntity{Name: name, PosX: posX, PosY: posY})
		}
	}

	return npcs, mobs, nil
}

// readTileEntities decodes the tile-entities section (Version140+ only).
// An unrecognized type tag is a non-fatal Inconsistency: the ID/X/Y
// header is still well-formed, so the record is kept with no payload
// and a diagnostic warning, and decoding continues with the next record.
func readTileEntities(s *ByteStream, diag *Diagnostics) ([]TileEntity, error) {
	count, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	entities := make([]TileEntity, 0, count)
	for i := int32(0); i < count; i++ {
		typ, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		id, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		x, err := s.ReadI16()
		if err != nil {
			return nil, err
		}
		y, err := s.ReadI16()
		if err != nil {
			return nil, err
		}

		e := TileEntity{ID: id, X: x, Y: y}
		switch typ {
		case tileEntityDummy:
			e.Kind = TileEntityKindDummy
			npc, err := s.ReadI16()
			if err != nil {
				return nil, err
			}
			e.NPC = npc
		case tileEntityItemFrame:
			e.Kind = TileEntityKindItemFrame
			item, err := s.ReadI16()
			if err != nil {
				return nil, err
			}
			prefix, err := s.ReadU8()
			if err != nil {
				return nil, err
			}
			stack, err := s.ReadI16()
			if err != nil {
				return nil, err
			}
			e.ItemID, e.Prefix, e.Stack = item, prefix, stack
		default:
			diag.warn(WarnUnknownTileEntity, s.Tell(), "unknown tile entity type %d at index %d", typ, i)
			e.Kind = TileEntityKindUnknown
		}
		entities = append(entities, e)
	}
	return entities, nil
}
