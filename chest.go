package wld

// maxChestSlots is the number of item slots stored inline per chest
// before the decoder switches to the overflow list. Chest.py's
// MAX_ITEMS constant (50) differs from this; DESIGN.md records the
// discrepancy and why this module follows the authoritative value.
const maxChestSlots = 40

// Item is one occupied chest slot. A zero Stack means the slot is empty
// and ItemID/Prefix are not meaningful.
type Item struct {
	ItemID int32
	Prefix uint8
	Stack  int16
}

// Chest is a placed container and its inventory. Items beyond
// maxChestSlots (when the file's max_items exceeds it) land in Overflow
// instead of Items.
type Chest struct {
	X, Y     int32
	Name     string
	Items    []Item
	Overflow []Item
}

func readItemSlot(s *ByteStream) (Item, error) {
	stack, err := s.ReadI16()
	if err != nil {
		return Item{}, err
	}
	if stack <= 0 {
		return Item{Stack: 0}, nil
	}
	id, err := s.ReadI32()
	if err != nil {
		return Item{}, err
	}
	prefix, err := s.ReadU8()
	if err != nil {
		return Item{}, err
	}
	return Item{ItemID: id, Prefix: prefix, Stack: stack}, nil
}

// readChests decodes the chests section: a u16 total, a u16 max_items,
// then that many chest records with items_per_chest = min(max_items, 40)
// inline slots and the remainder read into each chest's overflow list.
func readChests(s *ByteStream, diag *Diagnostics) ([]Chest, error) {
	total, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	maxItems, err := s.ReadU16()
	if err != nil {
		return nil, err
	}

	itemsPerChest := int(maxItems)
	if itemsPerChest > maxChestSlots {
		itemsPerChest = maxChestSlots
	}
	overflowCount := int(maxItems) - maxChestSlots
	if overflowCount < 0 {
		overflowCount = 0
	}
	if overflowCount > 0 {
		diag.warn(WarnChestOverflow, s.Tell(), "max_items %d exceeds %d inline slots, %d overflow slots per chest", maxItems, maxChestSlots, overflowCount)
	}

	chests := make([]Chest, total)
	for i := range chests {
		x, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		y, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		name, err := s.ReadString()
		if err != nil {
			return nil, err
		}
		c := Chest{X: x, Y: y, Name: name}

		c.Items = make([]Item, itemsPerChest)
		for slot := range c.Items {
			item, err := readItemSlot(s)
			if err != nil {
				return nil, err
			}
			c.Items[slot] = item
		}

		if overflowCount > 0 {
			c.Overflow = make([]Item, overflowCount)
			for slot := range c.Overflow {
				item, err := readItemSlot(s)
				if err != nil {
					return nil, err
				}
				c.Overflow[slot] = item
			}
		}

		chests[i] = c
	}
	return chests, nil
}
