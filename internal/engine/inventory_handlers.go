package engine

import (
	"strings"

	"github.com/mythforge/server/internal/world"
)

// resolveInventoryTarget picks the inventory a transfer acts on. Defaults to
// the player when no target is specified; "location" without an id means the
// player's current location.
func resolveInventoryTarget(s *world.State, d payload) (kind, id string, ok bool) {
	target, has := d.str("target")
	if !has {
		return "player", "", true
	}
	switch strings.ToLower(target) {
	case "player":
		return "player", "", true
	case "location":
		id, has := d.str("targetId")
		if !has {
			id = s.Player.CurrentLocationID
		}
		return "location", id, true
	case "npc":
		id, has := d.str("targetId")
		if !has {
			return "", "", false
		}
		return "npc", id, true
	}
	return "", "", false
}

func (e *Engine) applyAddItem(s *world.State, d payload, res *Result) *world.State {
	item, ok := d.item("item", s.ActionCounter)
	if !ok {
		res.warn(KindAddItem, "item", "required object with name")
		return s
	}
	kind, id, ok := resolveInventoryTarget(s, d)
	if !ok {
		res.warn(KindAddItem, "target", "must be player, location, or npc (npc needs targetId)")
		return s
	}

	switch kind {
	case "player":
		p := s.Player.Clone()
		p.Inventory = append(world.Capped(p.Inventory), item)
		return s.WithPlayer(p)
	case "location":
		loc := s.Location(id)
		if loc == nil {
			res.warnf(KindAddItem, "targetId", "unknown location %q", id)
			return s
		}
		l := loc.Clone()
		l.Items = append(world.Capped(l.Items), item)
		return s.WithLocation(l)
	case "npc":
		npc := s.NPC(id)
		if npc == nil {
			res.warnf(KindAddItem, "targetId", "unknown npc %q", id)
			return s
		}
		n := npc.Clone()
		n.Inventory = append(world.Capped(n.Inventory), item)
		return s.WithNPC(n)
	}
	return s
}

// applyRemoveItem drops an item from the targeted inventory. An absent item
// id is a silent no-op, not an error: the narrative layer frequently asks to
// consume things that were already consumed.
func (e *Engine) applyRemoveItem(s *world.State, d payload, res *Result) *world.State {
	itemID, ok := d.str("itemId")
	if !ok {
		res.warn(KindRemoveItem, "itemId", "required")
		return s
	}
	kind, id, ok := resolveInventoryTarget(s, d)
	if !ok {
		res.warn(KindRemoveItem, "target", "must be player, location, or npc (npc needs targetId)")
		return s
	}

	switch kind {
	case "player":
		i := s.Player.FindItem(itemID)
		if i < 0 {
			return s
		}
		p := s.Player.Clone()
		p.Inventory = world.RemoveItemAt(p.Inventory, i)
		return s.WithPlayer(p)
	case "location":
		loc := s.Location(id)
		if loc == nil {
			res.warnf(KindRemoveItem, "targetId", "unknown location %q", id)
			return s
		}
		i := loc.FindItem(itemID)
		if i < 0 {
			return s
		}
		l := loc.Clone()
		l.Items = world.RemoveItemAt(l.Items, i)
		return s.WithLocation(l)
	case "npc":
		npc := s.NPC(id)
		if npc == nil {
			res.warnf(KindRemoveItem, "targetId", "unknown npc %q", id)
			return s
		}
		i := -1
		for j, it := range npc.Inventory {
			if it.ID == itemID {
				i = j
				break
			}
		}
		if i < 0 {
			return s
		}
		n := npc.Clone()
		n.Inventory = world.RemoveItemAt(n.Inventory, i)
		return s.WithNPC(n)
	}
	return s
}
