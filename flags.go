package wld

// WorldFlags is the ~110-field global flag block that opens a world's
// flags section. Fields default to their zero value when the file's
// version predates the flag's min_version gate. Anglers, KilledMobs and
// UnknownFlags are parsed by hand rather than through the primitive
// schema loop below (see readWorldFlags).
type WorldFlags struct {
	Title string

	WorldID, LeftWorld, RightWorld, TopWorld, BottomWorld uint32
	TilesHigh, TilesWide                                  uint32
	ExpertMode                                             bool
	CreationTime                                           uint64
	MoonType                                                int8
	TreeX0, TreeX1, TreeX2                                  uint32
	TreeStyle0, TreeStyle1, TreeStyle2, TreeStyle3          uint32
	CaveBackX0, CaveBackX1, CaveBackX2                      uint32
	CaveBackStyle0, CaveBackStyle1, CaveBackStyle2, CaveBackStyle3 uint32
	IceBackStyle, JungleBackStyle, HellBackStyle            uint32
	SpawnX, SpawnY                                          uint32
	GroundLevel, RockLevel                                  float64
	Time                                                     float64
	DayTime                                                  bool
	MoonPhase                                                uint32
	BloodMoon, IsEclipse                                     bool
	DungeonX, DungeonY                                       uint32
	IsCrimson                                                bool
	DownedBoss1, DownedBoss2, DownedBoss3                    bool
	DownedQueenBee                                           bool
	DownedMechBoss1, DownedMechBoss2, DownedMechBoss3        bool
	DownedMechBossAny                                        bool
	DownedPlantBoss, DownedGolemBoss                         bool
	DownedSlimeKingBoss                                      bool
	SavedGoblin, SavedWizard, SavedMech                      bool
	DownedGoblins, DownedClown, DownedFrost, DownedPirates   bool
	ShadowOrbSmashed, SpawnMeteor                            bool
	ShadowOrbCount                                           int8
	AltarCount                                               uint32
	HardMode                                                 bool
	InvasionDelay, InvasionSize, InvasionType                uint32
	InvasionX                                                float64
	SlimeRainTime                                            float64
	SundialCooldown                                          int8
	TempRaining                                              bool
	TempRainTime                                             uint32
	TempMaxRain                                              float32
	OreTier1, OreTier2, OreTier3                             uint32
	BGTree, BGCorruption, BGJungle, BGSnow                   int8
	BGHallow, BGCrimson, BGDesert, BGOcean                    int8
	CloudBGActive                                            uint32
	NumClouds                                                 uint16
	WindSpeedSet                                              float32

	NumAnglers uint32
	Anglers    []string

	SavedAngler    bool
	AnglerQuest    uint32
	SavedStylist   bool

	SavedTaxCollector  bool
	InvasionSizeStart  uint32
	CultistDelay       uint32

	KilledMobCount uint16
	KilledMobs     []uint32

	FastForwardTime bool

	DownedFishron, DownedMartians                                   bool
	DownedLunaticCultist, DownedMoonlord                            bool
	DownedHalloweenKing, DownedHalloweenTree                        bool
	DownedChristmasQueen, DownedSanta, DownedChristmasTree          bool
	DownedCelestialColar, DownedCelestialVortex                     bool
	DownedCelestialNebula, DownedCelestialStardust                  bool
	CelestialSolarActive, CelestialVortexActive                     bool
	CelestialNebulaActive, CelestialStardustActive                  bool
	Apocalypse bool

	// UnknownFlags holds whatever trailing bytes remain between the last
	// recognized flag and the tile section pointer: a forward-compat
	// catch-all for flags added by versions this schema doesn't know.
	UnknownFlags []byte
}

// flagField is one entry of the flag schema: a name (a label for the
// entry; the read loop does not use it), a version gate, and a closure that reads the field's
// value off the stream into f when the running file's version is new
// enough. Keeping the read as a closure instead of a reflect-based
// dispatch keeps every flag's Go type explicit at its declaration site.
type flagField struct {
	name       string
	minVersion uint32
	read       func(f *WorldFlags, s *ByteStream) error
}

func fBool(name string, minVersion uint32, dst *bool) flagField {
	return flagField{name, minVersion, func(f *WorldFlags, s *ByteStream) error {
		v, err := s.ReadBool()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

func fU32(name string, minVersion uint32, dst *uint32) flagField {
	return flagField{name, minVersion, func(f *WorldFlags, s *ByteStream) error {
		v, err := s.ReadU32()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

func fU16(name string, minVersion uint32, dst *uint16) flagField {
	return flagField{name, minVersion, func(f *WorldFlags, s *ByteStream) error {
		v, err := s.ReadU16()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

func fU64(name string, minVersion uint32, dst *uint64) flagField {
	return flagField{name, minVersion, func(f *WorldFlags, s *ByteStream) error {
		v, err := s.ReadU64()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

func fI8(name string, minVersion uint32, dst *int8) flagField {
	return flagField{name, minVersion, func(f *WorldFlags, s *ByteStream) error {
		v, err := s.ReadI8()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

func fF32(name string, minVersion uint32, dst *float32) flagField {
	return flagField{name, minVersion, func(f *WorldFlags, s *ByteStream) error {
		v, err := s.ReadF32()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

func fF64(name string, minVersion uint32, dst *float64) flagField {
	return flagField{name, minVersion, func(f *WorldFlags, s *ByteStream) error {
		v, err := s.ReadF64()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

// readWorldFlags reads the Title string followed by the full flag
// schema, in declared order, gating each field on version and manually
// dispatching Anglers/KilledMobs/UnknownFlags. tilesPointer is the
// already-known offset of the tiles section, used to bound the trailing
// UnknownFlags catch-all.
func readWorldFlags(s *ByteStream, version uint32, tilesPointer int, diag *Diagnostics) (*WorldFlags, error) {
	f := &WorldFlags{}

	title, err := s.ReadString()
	if err != nil {
		return nil, err
	}
	f.Title = title

	schema := []flagField{
		fU32("WorldId", CompatibleVersion, &f.WorldID),
		fU32("LeftWorld", CompatibleVersion, &f.LeftWorld),
		fU32("RightWorld", CompatibleVersion, &f.RightWorld),
		fU32("TopWorld", CompatibleVersion, &f.TopWorld),
		fU32("BottomWorld", CompatibleVersion, &f.BottomWorld),
		fU32("TilesHigh", CompatibleVersion, &f.TilesHigh),
		fU32("TilesWide", CompatibleVersion, &f.TilesWide),
		fBool("ExpertMode", Version147, &f.ExpertMode),
		fU64("CreationTime", Version147, &f.CreationTime),
		fI8("MoonType", CompatibleVersion, &f.MoonType),
		fU32("TreeX0", CompatibleVersion, &f.TreeX0),
		fU32("TreeX1", CompatibleVersion, &f.TreeX1),
		fU32("TreeX2", CompatibleVersion, &f.TreeX2),
		fU32("TreeStyle0", CompatibleVersion, &f.TreeStyle0),
		fU32("TreeStyle1", CompatibleVersion, &f.TreeStyle1),
		fU32("TreeStyle2", CompatibleVersion, &f.TreeStyle2),
		fU32("TreeStyle3", CompatibleVersion, &f.TreeStyle3),
		fU32("CaveBackX0", CompatibleVersion, &f.CaveBackX0),
		fU32("CaveBackX1", CompatibleVersion, &f.CaveBackX1),
		fU32("CaveBackX2", CompatibleVersion, &f.CaveBackX2),
		fU32("CaveBackStyle0", CompatibleVersion, &f.CaveBackStyle0),
		fU32("CaveBackStyle1", CompatibleVersion, &f.CaveBackStyle1),
		fU32("CaveBackStyle2", CompatibleVersion, &f.CaveBackStyle2),
		fU32("CaveBackStyle3", CompatibleVersion, &f.CaveBackStyle3),
		fU32("IceBackStyle", CompatibleVersion, &f.IceBackStyle),
		fU32("JungleBackStyle", CompatibleVersion, &f.JungleBackStyle),
		fU32("HellBackStyle", CompatibleVersion, &f.HellBackStyle),
		fU32("SpawnX", CompatibleVersion, &f.SpawnX),
		fU32("SpawnY", CompatibleVersion, &f.SpawnY),
		fF64("GroundLevel", CompatibleVersion, &f.GroundLevel),
		fF64("RockLevel", CompatibleVersion, &f.RockLevel),
		fF64("Time", CompatibleVersion, &f.Time),
		fBool("DayTime", CompatibleVersion, &f.DayTime),
		fU32("MoonPhase", CompatibleVersion, &f.MoonPhase),
		fBool("BloodMoon", CompatibleVersion, &f.BloodMoon),
		fBool("IsEclipse", CompatibleVersion, &f.IsEclipse),
		fU32("DungeonX", CompatibleVersion, &f.DungeonX),
		fU32("DungeonY", CompatibleVersion, &f.DungeonY),
		fBool("IsCrimson", CompatibleVersion, &f.IsCrimson),
		fBool("DownedBoss1", CompatibleVersion, &f.DownedBoss1),
		fBool("DownedBoss2", CompatibleVersion, &f.DownedBoss2),
		fBool("DownedBoss3", CompatibleVersion, &f.DownedBoss3),
		fBool("DownedQueenBee", CompatibleVersion, &f.DownedQueenBee),
		fBool("DownedMechBoss1", CompatibleVersion, &f.DownedMechBoss1),
		fBool("DownedMechBoss2", CompatibleVersion, &f.DownedMechBoss2),
		fBool("DownedMechBoss3", CompatibleVersion, &f.DownedMechBoss3),
		fBool("DownedMechBossAny", CompatibleVersion, &f.DownedMechBossAny),
		fBool("DownedPlantBoss", CompatibleVersion, &f.DownedPlantBoss),
		fBool("DownedGolemBoss", CompatibleVersion, &f.DownedGolemBoss),
		fBool("DownedSlimeKingBoss", Version147, &f.DownedSlimeKingBoss),
		fBool("SavedGoblin", CompatibleVersion, &f.SavedGoblin),
		fBool("SavedWizard", CompatibleVersion, &f.SavedWizard),
		fBool("SavedMech", CompatibleVersion, &f.SavedMech),
		fBool("DownedGoblins", CompatibleVersion, &f.DownedGoblins),
		fBool("DownedClown", CompatibleVersion, &f.DownedClown),
		fBool("DownedFrost", CompatibleVersion, &f.DownedFrost),
		fBool("DownedPirates", CompatibleVersion, &f.DownedPirates),
		fBool("ShadowOrbSmashed", CompatibleVersion, &f.ShadowOrbSmashed),
		fBool("SpawnMeteor", CompatibleVersion, &f.SpawnMeteor),
		fI8("ShadowOrbCount", CompatibleVersion, &f.ShadowOrbCount),
		fU32("AltarCount", CompatibleVersion, &f.AltarCount),
		fBool("HardMode", CompatibleVersion, &f.HardMode),
		fU32("InvasionDelay", CompatibleVersion, &f.InvasionDelay),
		fU32("InvasionSize", CompatibleVersion, &f.InvasionSize),
		fU32("InvasionType", CompatibleVersion, &f.InvasionType),
		fF64("InvasionX", CompatibleVersion, &f.InvasionX),
		fF64("SlimeRainTime", Version147, &f.SlimeRainTime),
		fI8("SundialCooldown", Version147, &f.SundialCooldown),
		fBool("TempRaining", CompatibleVersion, &f.TempRaining),
		fU32("TempRainTime", CompatibleVersion, &f.TempRainTime),
		fF32("TempMaxRain", CompatibleVersion, &f.TempMaxRain),
		fU32("OreTier1", CompatibleVersion, &f.OreTier1),
		fU32("OreTier2", CompatibleVersion, &f.OreTier2),
		fU32("OreTier3", CompatibleVersion, &f.OreTier3),
		fI8("BGTree", CompatibleVersion, &f.BGTree),
		fI8("BGCorruption", CompatibleVersion, &f.BGCorruption),
		fI8("BGJungle", CompatibleVersion, &f.BGJungle),
		fI8("BGSnow", CompatibleVersion, &f.BGSnow),
		fI8("BGHallow", CompatibleVersion, &f.BGHallow),
		fI8("BGCrimson", CompatibleVersion, &f.BGCrimson),
		fI8("BGDesert", CompatibleVersion, &f.BGDesert),
		fI8("BGOcean", CompatibleVersion, &f.BGOcean),
		fU32("CloudBGActive", CompatibleVersion, &f.CloudBGActive),
		fU16("NumClouds", CompatibleVersion, &f.NumClouds),
		fF32("WindSpeedSet", CompatibleVersion, &f.WindSpeedSet),
		fU32("NumAnglers", Version95, &f.NumAnglers),
		{"Anglers", Version95, func(f *WorldFlags, s *ByteStream) error {
			out := make([]string, 0, f.NumAnglers)
			for i := uint32(0); i < f.NumAnglers; i++ {
				str, err := s.ReadString()
				if err != nil {
					return err
				}
				out = append(out, str)
			}
			f.Anglers = out
			return nil
		}},
		fBool("SavedAngler", Version99, &f.SavedAngler),
		fU32("AnglerQuest", Version101, &f.AnglerQuest),
		fBool("SavedStylist", Version104, &f.SavedStylist),
		fBool("SavedTaxCollector", Version140, &f.SavedTaxCollector),
		fU32("InvasionSizeStart", Version140, &f.InvasionSizeStart),
		fU32("CultistDelay", Version140, &f.CultistDelay),
		fU16("KilledMobCount", Version140, &f.KilledMobCount),
		{"KilledMobs", Version140, func(f *WorldFlags, s *ByteStream) error {
			out := make([]uint32, 0, f.KilledMobCount)
			for i := uint16(0); i < f.KilledMobCount; i++ {
				v, err := s.ReadU32()
				if err != nil {
					return err
				}
				out = append(out, v)
			}
			f.KilledMobs = out
			return nil
		}},
		fBool("FastForwardTime", Version140, &f.FastForwardTime),
		fBool("DownedFishron", Version140, &f.DownedFishron),
		fBool("DownedMartians", Version140, &f.DownedMartians),
		fBool("DownedLunaticCultist", Version140, &f.DownedLunaticCultist),
		fBool("DownedMoonlord", Version140, &f.DownedMoonlord),
		fBool("DownedHalloweenKing", Version140, &f.DownedHalloweenKing),
		fBool("DownedHalloweenTree", Version140, &f.DownedHalloweenTree),
		fBool("DownedChristmasQueen", Version140, &f.DownedChristmasQueen),
		fBool("DownedSanta", Version140, &f.DownedSanta),
		fBool("DownedChristmasTree", Version140, &f.DownedChristmasTree),
		fBool("DownedCelestialColar", Version140, &f.DownedCelestialColar),
		fBool("DownedCelestialVortex", Version140, &f.DownedCelestialVortex),
		fBool("DownedCelestialNebula", Version140, &f.DownedCelestialNebula),
		fBool("DownedCelestialStardust", Version140, &f.DownedCelestialStardust),
		fBool("CelestialSolarActive", Version140, &f.CelestialSolarActive),
		fBool("CelestialVortexActive", Version140, &f.CelestialVortexActive),
		fBool("CelestialNebulaActive", Version140, &f.CelestialNebulaActive),
		fBool("CelestialStardustActive", Version140, &f.CelestialStardustActive),
		fBool("Apocalypse", Version140, &f.Apocalypse),
		{"UnknownFlags", CompatibleVersion, func(f *WorldFlags, s *ByteStream) error {
			n := tilesPointer - s.Tell()
			if n <= 0 {
				return nil
			}
			b, err := s.take(n)
			if err != nil {
				return err
			}
			f.UnknownFlags = append([]byte(nil), b...)
			return nil
		}},
	}

	for _, field := range schema {
		if field.minVersion > version {
			continue
		}
		if err := field.read(f, s); err != nil {
			return nil, err
		}
	}

	if got := s.Tell(); got != tilesPointer {
		diag.warn(WarnUnknownFlag, got, "flags section ended at %d, expected tiles pointer %d", got, tilesPointer)
	}

	return f, nil
}
