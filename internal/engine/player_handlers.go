package engine

import (
	"fmt"
	"strings"

	"github.com/mythforge/server/internal/world"
)

func (e *Engine) applyMovePlayer(s *world.State, d payload, res *Result) *world.State {
	locID, ok := d.str("locationId")
	if !ok {
		res.warn(KindMovePlayer, "locationId", "required")
		return s
	}
	loc := s.Location(locID)
	if loc == nil {
		res.warnf(KindMovePlayer, "locationId", "unknown location %q", locID)
		return s
	}
	if s.Player.CurrentLocationID == locID {
		return s
	}

	firstVisit := loc.LastVisitedAtAction == 0

	p := s.Player.Clone()
	p.CurrentLocationID = locID
	if !world.ContainsString(p.Knowledge.LocationIDs, locID) {
		k := p.Knowledge
		k.LocationIDs = append(world.Capped(k.LocationIDs), locID)
		p.Knowledge = k
	}

	l := loc.Clone()
	l.LastVisitedAtAction = s.ActionCounter

	out := s.WithPlayer(p).WithLocation(l)
	if firstVisit {
		out = out.WithEvent(e.event(s, world.EventDiscovery,
			fmt.Sprintf("Arrived at %s for the first time", loc.Name), true))
	}
	return out
}

func (e *Engine) applyDamagePlayer(s *world.State, d payload, res *Result) *world.State {
	amount, ok := d.integer("amount")
	if !ok || amount < 0 {
		res.warn(KindDamagePlayer, "amount", "required non-negative number")
		return s
	}
	p := s.Player.Clone()
	p.Health = world.Clamp(p.Health-amount, 0, p.MaxHealth)
	return s.WithPlayer(p)
}

func (e *Engine) applyHealPlayer(s *world.State, d payload, res *Result) *world.State {
	amount, ok := d.integer("amount")
	if !ok || amount < 0 {
		res.warn(KindHealPlayer, "amount", "required non-negative number")
		return s
	}
	p := s.Player.Clone()
	p.Health = world.Clamp(p.Health+amount, 0, p.MaxHealth)
	return s.WithPlayer(p)
}

func (e *Engine) applyUpdateGold(s *world.State, d payload, res *Result) *world.State {
	amount, ok := d.integer("amount")
	if !ok {
		res.warn(KindUpdateGold, "amount", "required number")
		return s
	}
	p := s.Player.Clone()
	p.Gold += amount
	if p.Gold < 0 {
		p.Gold = 0
	}
	return s.WithPlayer(p)
}

// applyAddKnowledge records an explicit fact in the player's memory.
// Adds are deduplicated by exact value.
func (e *Engine) applyAddKnowledge(s *world.State, d payload, res *Result) *world.State {
	category, ok := d.str("category")
	if !ok {
		res.warn(KindAddKnowledge, "category", "required")
		return s
	}
	value, ok := d.str("value")
	if !ok {
		res.warn(KindAddKnowledge, "value", "required")
		return s
	}

	p := s.Player.Clone()
	k := p.Knowledge
	switch strings.ToLower(category) {
	case "location", "locations":
		if world.ContainsString(k.LocationIDs, value) {
			return s
		}
		k.LocationIDs = append(world.Capped(k.LocationIDs), value)
	case "npc", "npcs":
		if world.ContainsString(k.NpcIDs, value) {
			return s
		}
		k.NpcIDs = append(world.Capped(k.NpcIDs), value)
	case "lore":
		if world.ContainsString(k.Lore, value) {
			return s
		}
		k.Lore = append(world.Capped(k.Lore), value)
	case "recipe", "recipes":
		if world.ContainsString(k.Recipes, value) {
			return s
		}
		k.Recipes = append(world.Capped(k.Recipes), value)
	default:
		res.warnf(KindAddKnowledge, "category", "unknown category %q", category)
		return s
	}
	p.Knowledge = k
	return s.WithPlayer(p)
}
