package fixture

// MinimalWorld assembles a complete, valid world-file buffer at
// CompatibleVersion (102) with a tilesWide x tilesHigh grid of empty
// tiles, no chests/signs/NPCs, and a consistent section-pointer table.
// It exists so package-level tests can exercise Decode end-to-end
// without a real .wld fixture file.
func MinimalWorld(tilesWide, tilesHigh uint32, title string) []byte {
	const version = 102 // CompatibleVersion
	const relogicMagic = 0x6369676f6c6572
	const fileTypeWorld = 1

	flags := New()
	flags.String(title)
	flags.U32(1)          // WorldId
	flags.U32(0xffffffff) // LeftWorld
	flags.U32(0xffffffff) // RightWorld
	flags.U32(0xffffffff) // TopWorld
	flags.U32(0xffffffff) // BottomWorld
	flags.U32(tilesHigh)
	flags.U32(tilesWide)
	flags.I8(0)  // MoonType
	flags.U32(0) // TreeX0
	flags.U32(0) // TreeX1
	flags.U32(0) // TreeX2
	flags.U32(0) // TreeStyle0
	flags.U32(0) // TreeStyle1
	flags.U32(0) // TreeStyle2
	flags.U32(0) // TreeStyle3
	flags.U32(0) // CaveBackX0
	flags.U32(0) // CaveBackX1
	flags.U32(0) // CaveBackX2
	flags.U32(0) // CaveBackStyle0
	flags.U32(0) // CaveBackStyle1
	flags.U32(0) // CaveBackStyle2
	flags.U32(0) // CaveBackStyle3
	flags.U32(0) // IceBackStyle
	flags.U32(0) // JungleBackStyle
	flags.U32(0) // HellBackStyle
	flags.U32(tilesWide / 2)  // SpawnX
	flags.U32(1)              // SpawnY
	flags.F64(1.0)            // GroundLevel
	flags.F64(2.0)            // RockLevel
	flags.F64(0)              // Time
	flags.Bool(true)          // DayTime
	flags.U32(0)              // MoonPhase
	flags.Bool(false)         // BloodMoon
	flags.Bool(false)         // IsEclipse
	flags.U32(0)              // DungeonX
	flags.U32(0)              // DungeonY
	flags.Bool(false)         // IsCrimson
	flags.Bool(false)         // DownedBoss1
	flags.Bool(false)         // DownedBoss2
	flags.Bool(false)         // DownedBoss3
	flags.Bool(false)         // DownedQueenBee
	flags.Bool(false)         // DownedMechBoss1
	flags.Bool(false)         // DownedMechBoss2
	flags.Bool(false)         // DownedMechBoss3
	flags.Bool(false)         // DownedMechBossAny
	flags.Bool(false)         // DownedPlantBoss
	flags.Bool(false)         // DownedGolemBoss
	flags.Bool(false)         // SavedGoblin
	flags.Bool(false)         // SavedWizard
	flags.Bool(false)         // SavedMech
	flags.Bool(false)         // DownedGoblins
	flags.Bool(false)         // DownedClown
	flags.Bool(false)         // DownedFrost
	flags.Bool(false)         // DownedPirates
	flags.Bool(false)         // ShadowOrbSmashed
	flags.Bool(false)         // SpawnMeteor
	flags.I8(0)               // ShadowOrbCount
	flags.U32(0)               // AltarCount
	flags.Bool(false)          // HardMode
	flags.U32(0)               // InvasionDelay
	flags.U32(0)               // InvasionSize
	flags.U32(0)               // InvasionType
	flags.F64(0)               // InvasionX
	flags.Bool(false)          // TempRaining
	flags.U32(0)               // TempRainTime
	flags.F32(0)               // TempMaxRain
	flags.U32(0)               // OreTier1
	flags.U32(0)               // OreTier2
	flags.U32(0)               // OreTier3
	flags.I8(0)                // BGTree
	flags.I8(0)                // BGCorruption
	flags.I8(0)                // BGJungle
	flags.I8(0)                // BGSnow
	flags.I8(0)                // BGHallow
	flags.I8(0)                // BGCrimson
	flags.I8(0)                // BGDesert
	flags.I8(0)                // BGOcean
	flags.U32(0)                // CloudBGActive
	flags.U16(0)                // NumClouds
	flags.F32(0)                // WindSpeedSet
	flags.U32(0)                // NumAnglers
	// Anglers: zero strings, nothing written
	flags.Bool(false) // SavedAngler
	flags.U32(0)       // AnglerQuest
	// UnknownFlags: none; flags section ends exactly at the tiles pointer

	tiles := New()
	for i := uint32(0); i < tilesWide*tilesHigh; i++ {
		tiles.U8(0) // header1 == 0: inactive, no wall, no liquid, no rle
	}

	chests := New()
	chests.U16(0) // total
	chests.U16(0) // max_items

	signs := New()
	signs.I16(0) // total

	npcs := New()
	npcs.Bool(false) // no NPCs (version < 140, no mob list follows)

	footer := New()
	footer.Bool(true)
	footer.String(title)
	footer.I32(1)

	headerLen := 4 + 8 + 4 + 8 + 2 + 6*4 + 2 // version+magic+revision+bits+nsections+6 pointers+bitcount
	flagsPtr := headerLen
	tilesPtr := flagsPtr + len(flags.Bytes())
	chestsPtr := tilesPtr + len(tiles.Bytes())
	signsPtr := chestsPtr + len(chests.Bytes())
	npcsPtr := signsPtr + len(signs.Bytes())
	footerPtr := npcsPtr + len(npcs.Bytes())

	w := New()
	w.U32(version)
	w.U64(uint64(relogicMagic) | uint64(fileTypeWorld)<<56)
	w.U32(0) // revision
	w.U64(0) // world bits
	w.U16(6) // n_sections
	w.I32(int32(flagsPtr))
	w.I32(int32(tilesPtr))
	w.I32(int32(chestsPtr))
	w.I32(int32(signsPtr))
	w.I32(int32(npcsPtr))
	w.I32(int32(footerPtr))
	w.BitArrayPrefixed(nil) // important_tiles: none

	w.Raw(flags.Bytes())
	w.Raw(tiles.Bytes())
	w.Raw(chests.Bytes())
	w.Raw(signs.Bytes())
	w.Raw(npcs.Bytes())
	w.Raw(footer.Bytes())

	return w.Bytes()
}
