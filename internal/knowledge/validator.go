// Package knowledge answers "does the player currently know about X?".
// Knowledge deliberately conflates explicit memory with current
// perceptibility: anything in front of the player right now counts as known
// even if never recorded, so the narrative layer is never blocked from
// referencing what is plainly visible.
package knowledge

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mythforge/server/internal/world"
)

// Matcher is the lenient reference-matching strategy: case-folded, trimmed,
// substring-tolerant (a shorter reference matching anywhere inside a known
// name counts). Kept behind one name so it can be tightened later without
// touching call sites. Casers are stateful, so each call folds with its own.
func Matcher(known, ref string) bool {
	folder := cases.Fold()
	known = folder.String(strings.TrimSpace(known))
	ref = folder.String(strings.TrimSpace(ref))
	if known == "" || ref == "" {
		return false
	}
	return strings.Contains(known, ref)
}

// Knows reports whether the player can be assumed to know the referenced
// name. The search is a union; order only matters for cost.
func Knows(s *world.State, ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	p := s.Player

	// Explicit memory.
	for _, id := range p.Knowledge.LocationIDs {
		if Matcher(id, ref) {
			return true
		}
		if loc := s.Location(id); loc != nil && Matcher(loc.Name, ref) {
			return true
		}
	}
	for _, id := range p.Knowledge.NpcIDs {
		if Matcher(id, ref) {
			return true
		}
		if npc := s.NPC(id); npc != nil && Matcher(npc.Name, ref) {
			return true
		}
	}
	for _, lore := range p.Knowledge.Lore {
		if Matcher(lore, ref) {
			return true
		}
	}
	for _, recipe := range p.Knowledge.Recipes {
		if Matcher(recipe, ref) {
			return true
		}
	}
	for skill := range p.Knowledge.Skills {
		if Matcher(skill, ref) {
			return true
		}
	}

	// What the player is holding.
	for _, it := range p.Inventory {
		if Matcher(it.Name, ref) || Matcher(it.ID, ref) {
			return true
		}
	}

	// Current perceptibility: everything at the player's location.
	if loc := s.Location(p.CurrentLocationID); loc != nil {
		if Matcher(loc.ID, ref) || Matcher(loc.Name, ref) {
			return true
		}
		for _, it := range loc.Items {
			if Matcher(it.Name, ref) || Matcher(it.ID, ref) {
				return true
			}
		}
		for _, st := range loc.Structures {
			if Matcher(st.Name, ref) {
				return true
			}
		}
		for _, id := range loc.PresentNpcIDs {
			npc := s.NPC(id)
			if npc == nil || !npc.IsAlive {
				continue
			}
			if Matcher(npc.ID, ref) || Matcher(npc.Name, ref) {
				return true
			}
		}
	}

	// Companions are always known, wherever they are.
	for _, id := range p.CompanionIDs {
		if Matcher(id, ref) {
			return true
		}
		if npc := s.NPC(id); npc != nil && Matcher(npc.Name, ref) {
			return true
		}
	}

	return false
}
