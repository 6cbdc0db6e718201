package engine

import (
	"time"

	"github.com/mythforge/server/internal/world"
)

// stubRoller fixes the engine's randomness so combat assertions are exact.
type stubRoller struct {
	noise  int
	chance bool
}

func (r stubRoller) Noise() int            { return r.noise }
func (r stubRoller) Chance(p float64) bool { return r.chance }

func testEngine(roll Roller) *Engine {
	e := New(nil, roll)
	e.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

// testState builds a small two-location world: the player and two NPCs in the
// village, a hostile wolf in the forest.
func testState() *world.State {
	return &world.State{
		Player: &world.Player{
			Name:              "Hero",
			Health:            30,
			MaxHealth:         30,
			Strength:          10,
			Defense:           5,
			Level:             1,
			Gold:              10,
			CurrentLocationID: "village",
			Knowledge: world.Knowledge{
				LocationIDs: []string{"village"},
			},
		},
		Locations: map[string]*world.Location{
			"village": {
				ID: "village", Name: "Village",
				IsCanonical:         true,
				PresentNpcIDs:       []string{"guard", "elda"},
				LastVisitedAtAction: 1,
			},
			"forest": {
				ID: "forest", Name: "Forest",
				Coordinates:   world.Coordinates{X: 0, Y: 1},
				IsCanonical:   true,
				PresentNpcIDs: []string{"wolf"},
			},
		},
		NPCs: map[string]*world.NPC{
			"guard": {
				ID: "guard", Name: "Gate Guard",
				CurrentLocationID: "village",
				IsAlive:           true,
				Stats:             world.NPCStats{Health: 40, MaxHealth: 40, Strength: 12, Defense: 6},
				FactionIDs:        []string{"watch"},
			},
			"elda": {
				ID: "elda", Name: "Elda",
				CurrentLocationID: "village",
				Attitude:          40,
				IsAlive:           true,
				Stats:             world.NPCStats{Health: 15, MaxHealth: 15, Strength: 5, Defense: 2},
			},
			"wolf": {
				ID: "wolf", Name: "Grey Wolf",
				CurrentLocationID: "forest",
				Attitude:          -60,
				IsAlive:           true,
				Stats:             world.NPCStats{Health: 20, MaxHealth: 20, Strength: 8, Defense: 2},
			},
		},
		Factions: map[string]*world.Faction{
			"watch": {
				ID: "watch", Name: "Village Watch",
				MemberNpcIDs: []string{"guard"},
				LeaderNpcID:  "guard",
			},
		},
		Quests:        map[string]*world.Quest{},
		ActionCounter: 1,
		Version:       world.SchemaVersion,
	}
}

func ch(kind Kind, data map[string]any) Change {
	return Change{Kind: kind, Data: data}
}
