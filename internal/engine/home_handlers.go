package engine

import (
	"fmt"

	"github.com/mythforge/server/internal/world"
)

func (e *Engine) applyClaimHome(s *world.State, d payload, res *Result) *world.State {
	locID, ok := d.str("locationId")
	if !ok {
		locID = s.Player.CurrentLocationID
	}
	loc := s.Location(locID)
	if loc == nil {
		res.warnf(KindClaimHome, "locationId", "unknown location %q", locID)
		return s
	}
	if s.Player.HomeLocationID == locID {
		return s
	}

	p := s.Player.Clone()
	p.HomeLocationID = locID
	return s.WithPlayer(p).
		WithEvent(e.event(s, world.EventWorld,
			fmt.Sprintf("Claimed %s as home", loc.Name), false))
}

// applyStoreItemHome moves an item from the player's pack to their home.
// Requires only possession of a home and the item; the player need not be
// standing there.
func (e *Engine) applyStoreItemHome(s *world.State, d payload, res *Result) *world.State {
	itemID, ok := d.str("itemId")
	if !ok {
		res.warn(KindStoreItemHome, "itemId", "required")
		return s
	}
	if s.Player.HomeLocationID == "" {
		res.warn(KindStoreItemHome, "itemId", "player has no home")
		return s
	}
	home := s.Location(s.Player.HomeLocationID)
	if home == nil {
		res.warnf(KindStoreItemHome, "itemId", "home location %q missing", s.Player.HomeLocationID)
		return s
	}
	i := s.Player.FindItem(itemID)
	if i < 0 {
		res.warnf(KindStoreItemHome, "itemId", "item %q not carried", itemID)
		return s
	}

	item := s.Player.Inventory[i]
	p := s.Player.Clone()
	p.Inventory = world.RemoveItemAt(p.Inventory, i)
	h := home.Clone()
	h.Items = append(world.Capped(h.Items), item)
	return s.WithPlayer(p).WithLocation(h)
}

// applyRetrieveItemHome is the inverse transfer and requires the player to
// be physically at home.
func (e *Engine) applyRetrieveItemHome(s *world.State, d payload, res *Result) *world.State {
	itemID, ok := d.str("itemId")
	if !ok {
		res.warn(KindRetrieveItemHome, "itemId", "required")
		return s
	}
	if s.Player.HomeLocationID == "" {
		res.warn(KindRetrieveItemHome, "itemId", "player has no home")
		return s
	}
	if s.Player.CurrentLocationID != s.Player.HomeLocationID {
		res.warn(KindRetrieveItemHome, "itemId", "player is not at home")
		return s
	}
	home := s.Location(s.Player.HomeLocationID)
	if home == nil {
		res.warnf(KindRetrieveItemHome, "itemId", "home location %q missing", s.Player.HomeLocationID)
		return s
	}
	i := home.FindItem(itemID)
	if i < 0 {
		res.warnf(KindRetrieveItemHome, "itemId", "item %q not stored at home", itemID)
		return s
	}

	item := home.Items[i]
	h := home.Clone()
	h.Items = world.RemoveItemAt(h.Items, i)
	p := s.Player.Clone()
	p.Inventory = append(world.Capped(p.Inventory), item)
	return s.WithPlayer(p).WithLocation(h)
}
