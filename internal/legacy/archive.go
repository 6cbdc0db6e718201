// Package legacy handles permanent player death: the fallen character is
// archived as a deceased hero, their belongings and companions scatter, and
// a fresh default character takes over with the rest of the world untouched.
package legacy

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mythforge/server/internal/world"
)

// maxDeeds caps how many significant events make the deceased hero's deed
// summary.
const maxDeeds = 10

// deedTypes are the event categories worth remembering a hero by.
var deedTypes = map[world.EventType]bool{
	world.EventCombat:       true,
	world.EventQuest:        true,
	world.EventDiscovery:    true,
	world.EventRelationship: true,
}

// Archive retires the current player character permanently. startLocationID
// is where the replacement character begins; when empty the lowest-id
// canonical location is used.
func Archive(s *world.State, narrative, startLocationID string, now time.Time) *world.State {
	dead := s.Player
	deathLocID := dead.CurrentLocationID

	hero := world.DeceasedHero{
		Name:            dead.Name,
		Description:     dead.Description,
		Level:           dead.Level,
		DeathNarrative:  narrative,
		DeathLocationID: deathLocID,
		DiedAtAction:    s.ActionCounter,
		BelongingsLeft:  dead.Inventory,
		MajorDeeds:      majorDeeds(s),
		KnownByNpcIDs:   knownBy(s),
	}

	out := s.Clone()
	out.DeceasedHeroes = append(world.Capped(s.DeceasedHeroes), hero)

	// The hero's belongings stay where they fell.
	if loc := out.Location(deathLocID); loc != nil && len(dead.Inventory) > 0 {
		l := loc.Clone()
		l.Items = append(world.Capped(l.Items), dead.Inventory...)
		out = out.WithLocation(l)
	}

	// Companions are released in place; they stay where they were.
	for _, id := range dead.CompanionIDs {
		if npc := out.NPC(id); npc != nil && npc.IsCompanion {
			n := npc.Clone()
			n.IsCompanion = false
			out = out.WithNPC(n)
		}
	}

	out = out.WithCombat(nil)
	out = out.WithEvent(world.Event{
		Type:        world.EventDeath,
		Description: deathDescription(dead, narrative),
		ActionIndex: s.ActionCounter,
		Timestamp:   now,
		Significant: true,
	})

	return out.WithPlayer(NewDefaultPlayer(resolveStart(out, startLocationID)))
}

func deathDescription(dead *world.Player, narrative string) string {
	if narrative != "" {
		return fmt.Sprintf("%s died: %s", dead.Name, narrative)
	}
	return fmt.Sprintf("%s died", dead.Name)
}

// majorDeeds collects the most recent significant combat, quest, discovery,
// and relationship events, newest first.
func majorDeeds(s *world.State) []string {
	var deeds []string
	for i := len(s.EventHistory) - 1; i >= 0 && len(deeds) < maxDeeds; i-- {
		ev := s.EventHistory[i]
		if ev.Significant && deedTypes[ev.Type] {
			deeds = append(deeds, ev.Description)
		}
	}
	return deeds
}

// knownBy lists living NPCs who would plausibly hear of the death: anyone
// the player has spoken with, anyone who knew the player's name, and every
// companion. Sorted by id so archives of the same snapshot are identical.
func knownBy(s *world.State) []string {
	var ids []string
	name := strings.ToLower(s.Player.Name)
	for id, npc := range s.NPCs {
		if !npc.IsAlive {
			continue
		}
		if npc.IsCompanion || len(npc.ConversationHistory) > 0 || knowsName(npc, name) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func knowsName(npc *world.NPC, loweredName string) bool {
	if loweredName == "" {
		return false
	}
	for _, fact := range npc.Knowledge {
		if strings.Contains(strings.ToLower(fact), loweredName) {
			return true
		}
	}
	return false
}

// resolveStart picks the starting location for a fresh character.
func resolveStart(s *world.State, startLocationID string) string {
	if startLocationID != "" && s.Location(startLocationID) != nil {
		return startLocationID
	}
	best := ""
	for id, loc := range s.Locations {
		if !loc.IsCanonical {
			continue
		}
		if best == "" || id < best {
			best = id
		}
	}
	if best == "" {
		// Degenerate world; keep the death location rather than invent one.
		return s.Player.CurrentLocationID
	}
	return best
}

// NewDefaultPlayer builds the fresh character that replaces a fallen hero.
func NewDefaultPlayer(startLocationID string) *world.Player {
	return &world.Player{
		Name:              "Adventurer",
		Description:       "A newcomer with an unwritten story.",
		Health:            100,
		MaxHealth:         100,
		Strength:          10,
		Defense:           5,
		Magic:             5,
		Level:             1,
		Gold:              10,
		CurrentLocationID: startLocationID,
		Knowledge: world.Knowledge{
			LocationIDs: []string{startLocationID},
		},
	}
}
