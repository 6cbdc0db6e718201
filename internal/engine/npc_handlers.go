package engine

import (
	"fmt"

	"github.com/mythforge/server/internal/world"
)

func (e *Engine) applyCreateNPC(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(KindCreateNPC, "name", "required")
		return s
	}
	locID, ok := d.str("locationId")
	if !ok {
		locID = s.Player.CurrentLocationID
	}
	loc := s.Location(locID)
	if loc == nil {
		res.warnf(KindCreateNPC, "locationId", "unknown location %q", locID)
		return s
	}

	id, ok := d.str("id")
	if !ok {
		id = world.SlugID("npc", name, s.ActionCounter)
	}
	if s.NPC(id) != nil {
		res.warnf(KindCreateNPC, "id", "npc %q already exists", id)
		return s
	}

	npc := &world.NPC{
		ID:                id,
		Name:              name,
		CurrentLocationID: locID,
		IsAlive:           true,
		Stats:             world.NPCStats{Health: 10, MaxHealth: 10, Strength: 3, Defense: 1},
	}
	if desc, ok := d.str("description"); ok {
		npc.Description = desc
	}
	if att, ok := d.integer("attitude"); ok {
		npc.Attitude = world.Clamp(att, -100, 100)
	}
	if home, ok := d.str("homeLocationId"); ok {
		npc.HomeLocationID = home
	}
	if stats, ok := d.sub("stats"); ok {
		if hp, ok := stats.integer("maxHealth"); ok && hp > 0 {
			npc.Stats.MaxHealth = hp
			npc.Stats.Health = hp
		}
		if hp, ok := stats.integer("health"); ok && hp >= 0 {
			npc.Stats.Health = world.Clamp(hp, 0, npc.Stats.MaxHealth)
		}
		if str, ok := stats.integer("strength"); ok && str >= 0 {
			npc.Stats.Strength = str
		}
		if def, ok := stats.integer("defense"); ok && def >= 0 {
			npc.Stats.Defense = def
		}
	}
	npc.FactionIDs = d.strs("factionIds")

	l := loc.Clone()
	l.PresentNpcIDs = append(world.Capped(l.PresentNpcIDs), id)

	return s.WithNPC(npc).WithLocation(l).
		WithEvent(e.event(s, world.EventWorld,
			fmt.Sprintf("%s appeared at %s", name, loc.Name), false))
}

// applyMoveNPC relocates an NPC, keeping the two location rosters and the
// NPC's own pointer in agreement.
func (e *Engine) applyMoveNPC(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindMoveNPC, "npcId", "required")
		return s
	}
	toID, ok := d.str("toLocationId")
	if !ok {
		res.warn(KindMoveNPC, "toLocationId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindMoveNPC, "npcId", "unknown npc %q", npcID)
		return s
	}
	dest := s.Location(toID)
	if dest == nil {
		res.warnf(KindMoveNPC, "toLocationId", "unknown location %q", toID)
		return s
	}
	if npc.CurrentLocationID == toID {
		return s
	}
	return moveNPC(s, npc, dest)
}

// moveNPC is the shared roster-atomic relocation primitive. The NPC leaves
// its old location's roster and appears exactly once in the new one.
func moveNPC(s *world.State, npc *world.NPC, dest *world.Location) *world.State {
	out := s
	if old := s.Location(npc.CurrentLocationID); old != nil {
		o := old.Clone()
		o.PresentNpcIDs = world.RemoveString(o.PresentNpcIDs, npc.ID)
		out = out.WithLocation(o)
	}

	dst := out.Location(dest.ID).Clone()
	if !world.ContainsString(dst.PresentNpcIDs, npc.ID) {
		dst.PresentNpcIDs = append(world.Capped(dst.PresentNpcIDs), npc.ID)
	}

	n := npc.Clone()
	n.CurrentLocationID = dest.ID
	return out.WithLocation(dst).WithNPC(n)
}

// applyUpdateNPCAttitude accepts either an absolute "value" or a relative
// "delta", always clamped to [-100, 100].
func (e *Engine) applyUpdateNPCAttitude(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindUpdateNPCAttitude, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindUpdateNPCAttitude, "npcId", "unknown npc %q", npcID)
		return s
	}

	next, ok := resolveAbsoluteOrDelta(d, npc.Attitude)
	if !ok {
		res.warn(KindUpdateNPCAttitude, "value", "either value or delta required")
		return s
	}
	if next == npc.Attitude {
		return s
	}
	n := npc.Clone()
	n.Attitude = next
	return s.WithNPC(n)
}

// resolveAbsoluteOrDelta implements the shared absolute-or-relative update
// pattern for clamped scores (NPC attitude, faction reputation).
func resolveAbsoluteOrDelta(d payload, current int) (int, bool) {
	if v, ok := d.integer("value"); ok {
		return world.Clamp(v, -100, 100), true
	}
	if dv, ok := d.integer("delta"); ok {
		return world.Clamp(current+dv, -100, 100), true
	}
	return 0, false
}

func (e *Engine) applyNPCDeath(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindNPCDeath, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindNPCDeath, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsAlive {
		res.warnf(KindNPCDeath, "npcId", "npc %q is already dead", npcID)
		return s
	}
	cause, _ := d.str("cause")
	return killNPC(e, s, npc, cause)
}

// killNPC marks an NPC dead and untangles every cross-reference that depends
// on it being alive: companion tracking and any combat bound to it.
func killNPC(e *Engine, s *world.State, npc *world.NPC, cause string) *world.State {
	n := npc.Clone()
	n.IsAlive = false
	n.Stats.Health = 0
	wasCompanion := n.IsCompanion
	n.IsCompanion = false

	out := s.WithNPC(n)
	if wasCompanion {
		p := out.Player.Clone()
		p.CompanionIDs = world.RemoveString(p.CompanionIDs, npc.ID)
		out = out.WithPlayer(p)
	}
	if out.Combat != nil && out.Combat.EnemyNpcID == npc.ID {
		out = out.WithCombat(nil)
	}

	desc := fmt.Sprintf("%s died", npc.Name)
	if cause != "" {
		desc = fmt.Sprintf("%s died: %s", npc.Name, cause)
	}
	return out.WithEvent(e.event(s, world.EventDeath, desc, true))
}
