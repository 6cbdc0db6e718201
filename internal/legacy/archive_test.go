package legacy

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/mythforge/server/internal/world"
)

func archiveFixture() *world.State {
	return &world.State{
		Player: &world.Player{
			Name:              "Ragnar",
			Level:             4,
			Health:            0,
			MaxHealth:         60,
			CurrentLocationID: "crypt",
			Inventory: []world.Item{
				{ID: "sword", Name: "Runed Sword"},
			},
			CompanionIDs: []string{"elda"},
		},
		Locations: map[string]*world.Location{
			"village": {ID: "village", Name: "Village", IsCanonical: true},
			"crypt":   {ID: "crypt", Name: "Crypt"},
		},
		NPCs: map[string]*world.NPC{
			"elda": {
				ID: "elda", Name: "Elda", CurrentLocationID: "crypt",
				IsAlive: true, IsCompanion: true,
			},
			"rumormonger": {
				ID: "rumormonger", Name: "Tomas", CurrentLocationID: "village",
				IsAlive:   true,
				Knowledge: []string{"Ragnar once saved the mill"},
			},
			"stranger": {
				ID: "stranger", Name: "Stranger", CurrentLocationID: "village",
				IsAlive: true,
			},
		},
		Factions: map[string]*world.Faction{},
		Quests:   map[string]*world.Quest{},
		EventHistory: []world.Event{
			{Type: world.EventCombat, Description: "Slew the troll", Significant: true},
			{Type: world.EventWorld, Description: "It rained", Significant: true},
			{Type: world.EventQuest, Description: "Saved the mill", Significant: true},
			{Type: world.EventQuest, Description: "Talked about the weather", Significant: false},
		},
		Combat:        &world.CombatState{EnemyNpcID: "elda"},
		ActionCounter: 12,
		Version:       world.SchemaVersion,
	}
}

func TestArchiveRecordsHeroAndResetsPlayer(t *testing.T) {
	s := archiveFixture()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	out := Archive(s, "fell to the crypt guardian", "village", now)

	if len(out.DeceasedHeroes) != 1 {
		t.Fatalf("heroes = %d", len(out.DeceasedHeroes))
	}
	hero := out.DeceasedHeroes[0]
	if hero.Name != "Ragnar" || hero.Level != 4 || hero.DiedAtAction != 12 {
		t.Fatalf("hero = %+v", hero)
	}
	if hero.DeathLocationID != "crypt" {
		t.Fatalf("death location = %q", hero.DeathLocationID)
	}

	p := out.Player
	if p.Name != "Adventurer" || p.Level != 1 || p.Health != 100 {
		t.Fatalf("replacement = %+v", p)
	}
	if p.CurrentLocationID != "village" {
		t.Fatalf("start = %q", p.CurrentLocationID)
	}
	if len(p.Inventory) != 0 || len(p.CompanionIDs) != 0 {
		t.Fatal("replacement character inherited the dead hero's ties")
	}
}

func TestArchiveScattersBelongingsAndCompanions(t *testing.T) {
	s := archiveFixture()
	out := Archive(s, "", "village", time.Now())

	if out.Location("crypt").FindItem("sword") < 0 {
		t.Fatal("belongings should stay at the death location")
	}
	if out.NPC("elda").IsCompanion {
		t.Fatal("companions should be released")
	}
	if out.NPC("elda").CurrentLocationID != "crypt" {
		t.Fatal("released companions stay where they were")
	}
	if out.Combat != nil {
		t.Fatal("combat should clear on death")
	}
}

func TestArchiveMajorDeedsFilterAndOrder(t *testing.T) {
	out := Archive(archiveFixture(), "", "village", time.Now())
	deeds := out.DeceasedHeroes[0].MajorDeeds

	// Newest first; only significant combat/quest/discovery/relationship.
	want := []string{"Saved the mill", "Slew the troll"}
	if len(deeds) != len(want) {
		t.Fatalf("deeds = %v", deeds)
	}
	for i := range want {
		if deeds[i] != want[i] {
			t.Fatalf("deeds = %v, want %v", deeds, want)
		}
	}
}

func TestArchiveKnownBy(t *testing.T) {
	out := Archive(archiveFixture(), "", "village", time.Now())
	known := out.DeceasedHeroes[0].KnownByNpcIDs

	has := map[string]bool{}
	for _, id := range known {
		has[id] = true
	}
	if !has["elda"] {
		t.Fatal("companions always know of the death")
	}
	if !has["rumormonger"] {
		t.Fatal("npc whose knowledge names the player should know")
	}
	if has["stranger"] {
		t.Fatal("uninvolved npc should not know")
	}
}

// Archiving the same snapshot must always produce the same hero record, so
// persisted snapshots of replayed sessions stay byte-identical.
func TestArchiveKnownByOrderIsDeterministic(t *testing.T) {
	build := func() *world.State {
		s := archiveFixture()
		for i := 0; i < 12; i++ {
			id := fmt.Sprintf("npc%02d", i)
			s.NPCs[id] = &world.NPC{
				ID: id, Name: id, CurrentLocationID: "village",
				IsAlive:             true,
				ConversationHistory: []string{"talked with Ragnar"},
			}
		}
		return s
	}

	first := Archive(build(), "", "village", time.Now()).DeceasedHeroes[0].KnownByNpcIDs
	second := Archive(build(), "", "village", time.Now()).DeceasedHeroes[0].KnownByNpcIDs

	if len(first) != len(second) {
		t.Fatalf("known-by lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("known-by order differs: %v vs %v", first, second)
		}
	}
	if !sort.StringsAreSorted(first) {
		t.Fatalf("known-by not sorted: %v", first)
	}
}

func TestArchiveStartFallsBackToCanonical(t *testing.T) {
	out := Archive(archiveFixture(), "", "nowhere", time.Now())
	if out.Player.CurrentLocationID != "village" {
		t.Fatalf("start = %q, want the canonical village", out.Player.CurrentLocationID)
	}
}

func TestArchiveLeavesInputUntouched(t *testing.T) {
	s := archiveFixture()
	Archive(s, "", "village", time.Now())

	if s.Player.Name != "Ragnar" {
		t.Fatal("input player replaced")
	}
	if !s.NPCs["elda"].IsCompanion {
		t.Fatal("input npc mutated")
	}
	if len(s.DeceasedHeroes) != 0 {
		t.Fatal("input hero list mutated")
	}
}
