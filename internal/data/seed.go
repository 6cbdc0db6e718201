// Package data loads the authored seed world from YAML. Seed files describe
// intent (where each NPC lives); the loader derives the redundant runtime
// indexes (location rosters) so a freshly loaded world never starts with a
// roster/location disagreement.
package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mythforge/server/internal/world"
)

// SeedLocation is one authored location entry.
type SeedLocation struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Terrain     string `yaml:"terrain"`
	DangerLevel int    `yaml:"danger_level"`

	Items      []SeedItem      `yaml:"items"`
	Structures []SeedStructure `yaml:"structures"`
}

// SeedNPC is one authored NPC entry. Location is where the NPC starts; the
// loader places them on that location's roster.
type SeedNPC struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Location    string   `yaml:"location"`
	Home        string   `yaml:"home"`
	Attitude    int      `yaml:"attitude"`
	Health      int      `yaml:"health"`
	MaxHealth   int      `yaml:"max_health"`
	Strength    int      `yaml:"strength"`
	Defense     int      `yaml:"defense"`
	FactionIDs  []string `yaml:"factions"`
	Knowledge   []string `yaml:"knowledge"`

	Inventory []SeedItem `yaml:"inventory"`
}

// SeedFaction is one authored faction entry.
type SeedFaction struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Reputation  int      `yaml:"reputation"`
	Members     []string `yaml:"members"`
	Leader      string   `yaml:"leader"`
}

// SeedItem is an authored item, placed in a location or an inventory.
type SeedItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Description string `yaml:"description"`
	Effect      int    `yaml:"effect"`
}

// SeedStructure is an authored construction inside a location.
type SeedStructure struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SeedPlayer is the authored starting character.
type SeedPlayer struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Health      int        `yaml:"health"`
	MaxHealth   int        `yaml:"max_health"`
	Strength    int        `yaml:"strength"`
	Defense     int        `yaml:"defense"`
	Magic       int        `yaml:"magic"`
	Level       int        `yaml:"level"`
	Gold        int        `yaml:"gold"`
	Location    string     `yaml:"location"`
	Inventory   []SeedItem `yaml:"inventory"`
}

type seedFile struct {
	Player    SeedPlayer     `yaml:"player"`
	Locations []SeedLocation `yaml:"locations"`
	NPCs      []SeedNPC      `yaml:"npcs"`
	Factions  []SeedFaction  `yaml:"factions"`
}

// LoadWorld builds the initial snapshot from a YAML seed file. Every seeded
// location is canonical; NPC rosters are derived from NPC placements.
func LoadWorld(path string) (*world.State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed world: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed world: %w", err)
	}

	s := &world.State{
		Locations: make(map[string]*world.Location, len(f.Locations)),
		NPCs:      make(map[string]*world.NPC, len(f.NPCs)),
		Factions:  make(map[string]*world.Faction, len(f.Factions)),
		Quests:    map[string]*world.Quest{},
		Version:   world.SchemaVersion,
	}

	for _, sl := range f.Locations {
		if sl.ID == "" {
			return nil, fmt.Errorf("seed location %q missing id", sl.Name)
		}
		if _, dup := s.Locations[sl.ID]; dup {
			return nil, fmt.Errorf("duplicate seed location id %q", sl.ID)
		}
		s.Locations[sl.ID] = &world.Location{
			ID:          sl.ID,
			Name:        sl.Name,
			Description: sl.Description,
			Coordinates: world.Coordinates{X: sl.X, Y: sl.Y},
			Terrain:     sl.Terrain,
			DangerLevel: sl.DangerLevel,
			Items:       seedItems(sl.Items),
			Structures:  seedStructures(sl.Structures),
			IsCanonical: true,
		}
	}

	for _, sn := range f.NPCs {
		if sn.ID == "" {
			return nil, fmt.Errorf("seed npc %q missing id", sn.Name)
		}
		if _, dup := s.NPCs[sn.ID]; dup {
			return nil, fmt.Errorf("duplicate seed npc id %q", sn.ID)
		}
		loc := s.Locations[sn.Location]
		if loc == nil {
			return nil, fmt.Errorf("seed npc %q placed at unknown location %q", sn.ID, sn.Location)
		}
		maxHP := sn.MaxHealth
		if maxHP == 0 {
			maxHP = 10
		}
		hp := sn.Health
		if hp == 0 {
			hp = maxHP
		}
		s.NPCs[sn.ID] = &world.NPC{
			ID:                sn.ID,
			Name:              sn.Name,
			Description:       sn.Description,
			CurrentLocationID: sn.Location,
			HomeLocationID:    sn.Home,
			Attitude:          sn.Attitude,
			IsAlive:           true,
			Inventory:         seedItems(sn.Inventory),
			Stats: world.NPCStats{
				Health:    hp,
				MaxHealth: maxHP,
				Strength:  sn.Strength,
				Defense:   sn.Defense,
			},
			FactionIDs: sn.FactionIDs,
			Knowledge:  sn.Knowledge,
		}
		loc.PresentNpcIDs = append(loc.PresentNpcIDs, sn.ID)
	}

	for _, sf := range f.Factions {
		if sf.ID == "" {
			return nil, fmt.Errorf("seed faction %q missing id", sf.Name)
		}
		for _, m := range sf.Members {
			if s.NPCs[m] == nil {
				return nil, fmt.Errorf("seed faction %q lists unknown member %q", sf.ID, m)
			}
		}
		s.Factions[sf.ID] = &world.Faction{
			ID:               sf.ID,
			Name:             sf.Name,
			Description:      sf.Description,
			PlayerReputation: sf.Reputation,
			MemberNpcIDs:     sf.Members,
			LeaderNpcID:      sf.Leader,
		}
	}

	player, err := seedPlayer(f.Player, s)
	if err != nil {
		return nil, err
	}
	s.Player = player
	return s, nil
}

func seedPlayer(sp SeedPlayer, s *world.State) (*world.Player, error) {
	if s.Location(sp.Location) == nil {
		return nil, fmt.Errorf("seed player starts at unknown location %q", sp.Location)
	}
	p := &world.Player{
		Name:              sp.Name,
		Description:       sp.Description,
		Health:            sp.Health,
		MaxHealth:         sp.MaxHealth,
		Strength:          sp.Strength,
		Defense:           sp.Defense,
		Magic:             sp.Magic,
		Level:             sp.Level,
		Gold:              sp.Gold,
		CurrentLocationID: sp.Location,
		Inventory:         seedItems(sp.Inventory),
		Knowledge: world.Knowledge{
			LocationIDs: []string{sp.Location},
		},
	}
	if p.Name == "" {
		p.Name = "Adventurer"
	}
	if p.MaxHealth == 0 {
		p.MaxHealth = 100
	}
	if p.Health == 0 {
		p.Health = p.MaxHealth
	}
	if p.Level == 0 {
		p.Level = 1
	}
	return p, nil
}

func seedItems(items []SeedItem) []world.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]world.Item, 0, len(items))
	for _, it := range items {
		out = append(out, world.Item{
			ID:          it.ID,
			Name:        it.Name,
			Kind:        it.Kind,
			Description: it.Description,
			Effect:      it.Effect,
		})
	}
	return out
}

func seedStructures(structs []SeedStructure) []world.Structure {
	if len(structs) == 0 {
		return nil
	}
	out := make([]world.Structure, 0, len(structs))
	for _, st := range structs {
		out = append(out, world.Structure{Name: st.Name, Description: st.Description})
	}
	return out
}
