package engine

import (
	"fmt"

	"github.com/mythforge/server/internal/world"
)

// Companion status is double-tracked: npc.IsCompanion and
// player.CompanionIDs always flip together, never one without the other.

func (e *Engine) applyAddCompanion(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindAddCompanion, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindAddCompanion, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsAlive {
		res.warnf(KindAddCompanion, "npcId", "npc %q is dead", npcID)
		return s
	}
	if npc.IsCompanion || s.Player.HasCompanion(npcID) {
		res.warnf(KindAddCompanion, "npcId", "npc %q is already a companion", npcID)
		return s
	}

	out := s
	// A new companion starts traveling with the player.
	if here := s.Location(s.Player.CurrentLocationID); here != nil && npc.CurrentLocationID != here.ID {
		out = moveNPC(out, npc, here)
	}

	n := out.NPC(npcID).Clone()
	n.IsCompanion = true
	p := out.Player.Clone()
	p.CompanionIDs = append(world.Capped(p.CompanionIDs), npcID)

	return out.WithNPC(n).WithPlayer(p).
		WithEvent(e.event(s, world.EventRelationship,
			fmt.Sprintf("%s joined as a companion", npc.Name), true))
}

func (e *Engine) applyRemoveCompanion(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindRemoveCompanion, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindRemoveCompanion, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsCompanion {
		res.warnf(KindRemoveCompanion, "npcId", "npc %q is not a companion", npcID)
		return s
	}

	n := npc.Clone()
	n.IsCompanion = false
	p := s.Player.Clone()
	p.CompanionIDs = world.RemoveString(p.CompanionIDs, npcID)

	return s.WithNPC(n).WithPlayer(p).
		WithEvent(e.event(s, world.EventRelationship,
			fmt.Sprintf("%s parted ways with the party", npc.Name), false))
}

// applyCompanionWaitHome sends a companion to the player's home without
// altering companion status.
func (e *Engine) applyCompanionWaitHome(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindCompanionWaitHome, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindCompanionWaitHome, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsCompanion {
		res.warnf(KindCompanionWaitHome, "npcId", "npc %q is not a companion", npcID)
		return s
	}
	if s.Player.HomeLocationID == "" {
		res.warn(KindCompanionWaitHome, "npcId", "player has no home")
		return s
	}
	home := s.Location(s.Player.HomeLocationID)
	if home == nil {
		res.warnf(KindCompanionWaitHome, "npcId", "home location %q missing", s.Player.HomeLocationID)
		return s
	}
	if npc.CurrentLocationID == home.ID {
		return s
	}
	return moveNPC(s, npc, home)
}

// applyCompanionRejoin brings a waiting companion back to the player's
// current location.
func (e *Engine) applyCompanionRejoin(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindCompanionRejoin, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindCompanionRejoin, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsCompanion {
		res.warnf(KindCompanionRejoin, "npcId", "npc %q is not a companion", npcID)
		return s
	}
	here := s.Location(s.Player.CurrentLocationID)
	if here == nil {
		res.warnf(KindCompanionRejoin, "npcId", "player location %q missing", s.Player.CurrentLocationID)
		return s
	}
	if npc.CurrentLocationID == here.ID {
		return s
	}
	return moveNPC(s, npc, here)
}
