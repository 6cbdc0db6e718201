package engine

import (
	"fmt"
	"strings"

	"github.com/mythforge/server/internal/world"
)

// applyUpdateRelationship handles marriage, children, and plain attitude
// shifts. Every transition but a pure attitude adjustment logs an event.
func (e *Engine) applyUpdateRelationship(s *world.State, d payload, res *Result) *world.State {
	relType, ok := d.str("type")
	if !ok {
		res.warn(KindUpdateRelationship, "type", "required")
		return s
	}
	switch strings.ToLower(relType) {
	case "marry":
		return e.applyMarry(s, d, res)
	case "divorce":
		return e.applyDivorce(s, d, res)
	case "have_child":
		return e.applyHaveChild(s, d, res)
	case "adopt_child":
		return e.applyAdoptChild(s, d, res)
	case "disown_child":
		return e.applyDisownChild(s, d, res)
	case "attitude":
		return e.applyUpdateNPCAttitude(s, d, res)
	}
	res.warnf(KindUpdateRelationship, "type", "unknown relationship type %q", relType)
	return s
}

func (e *Engine) applyMarry(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindUpdateRelationship, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindUpdateRelationship, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsAlive {
		res.warnf(KindUpdateRelationship, "npcId", "npc %q is dead", npcID)
		return s
	}
	if s.Player.MarriedToNpcID != "" {
		res.warn(KindUpdateRelationship, "npcId", "player is already married")
		return s
	}

	p := s.Player.Clone()
	p.MarriedToNpcID = npcID
	out := s.WithPlayer(p)
	if delta, ok := d.integer("attitudeDelta"); ok {
		n := npc.Clone()
		n.Attitude = world.Clamp(n.Attitude+delta, -100, 100)
		out = out.WithNPC(n)
	}
	return out.WithEvent(e.event(s, world.EventRelationship,
		fmt.Sprintf("Married %s", npc.Name), true))
}

func (e *Engine) applyDivorce(s *world.State, d payload, res *Result) *world.State {
	if s.Player.MarriedToNpcID == "" {
		res.warn(KindUpdateRelationship, "npcId", "player is not married")
		return s
	}
	spouseID := s.Player.MarriedToNpcID
	if npcID, ok := d.str("npcId"); ok && npcID != spouseID {
		res.warnf(KindUpdateRelationship, "npcId", "player is not married to %q", npcID)
		return s
	}

	p := s.Player.Clone()
	p.MarriedToNpcID = ""
	out := s.WithPlayer(p)

	spouseName := spouseID
	if spouse := s.NPC(spouseID); spouse != nil {
		spouseName = spouse.Name
		if delta, ok := d.integer("attitudeDelta"); ok {
			n := spouse.Clone()
			n.Attitude = world.Clamp(n.Attitude+delta, -100, 100)
			out = out.WithNPC(n)
		}
	}
	return out.WithEvent(e.event(s, world.EventRelationship,
		fmt.Sprintf("Divorced %s", spouseName), true))
}

// applyHaveChild materializes a new child NPC at the player's location and
// cross-references it on the player.
func (e *Engine) applyHaveChild(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("childName")
	if !ok {
		res.warn(KindUpdateRelationship, "childName", "required")
		return s
	}
	loc := s.Location(s.Player.CurrentLocationID)
	if loc == nil {
		res.warnf(KindUpdateRelationship, "childName", "player location %q missing", s.Player.CurrentLocationID)
		return s
	}

	id := world.SlugID("npc", name, s.ActionCounter)
	child := &world.NPC{
		ID:                id,
		Name:              name,
		Description:       fmt.Sprintf("Child of %s", s.Player.Name),
		CurrentLocationID: loc.ID,
		Attitude:          80,
		IsAlive:           true,
		Stats:             world.NPCStats{Health: 5, MaxHealth: 5, Strength: 1, Defense: 0},
	}

	l := loc.Clone()
	l.PresentNpcIDs = append(world.Capped(l.PresentNpcIDs), id)
	p := s.Player.Clone()
	p.ChildrenNpcIDs = append(world.Capped(p.ChildrenNpcIDs), id)

	return s.WithNPC(child).WithLocation(l).WithPlayer(p).
		WithEvent(e.event(s, world.EventRelationship,
			fmt.Sprintf("A child was born: %s", name), true))
}

func (e *Engine) applyAdoptChild(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindUpdateRelationship, "npcId", "required")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindUpdateRelationship, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsAlive {
		res.warnf(KindUpdateRelationship, "npcId", "npc %q is dead", npcID)
		return s
	}
	if world.ContainsString(s.Player.ChildrenNpcIDs, npcID) {
		res.warnf(KindUpdateRelationship, "npcId", "npc %q is already a child of the player", npcID)
		return s
	}

	p := s.Player.Clone()
	p.ChildrenNpcIDs = append(world.Capped(p.ChildrenNpcIDs), npcID)
	return s.WithPlayer(p).
		WithEvent(e.event(s, world.EventRelationship,
			fmt.Sprintf("Adopted %s", npc.Name), true))
}

func (e *Engine) applyDisownChild(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindUpdateRelationship, "npcId", "required")
		return s
	}
	if !world.ContainsString(s.Player.ChildrenNpcIDs, npcID) {
		res.warnf(KindUpdateRelationship, "npcId", "npc %q is not a child of the player", npcID)
		return s
	}

	name := npcID
	if npc := s.NPC(npcID); npc != nil {
		name = npc.Name
	}
	p := s.Player.Clone()
	p.ChildrenNpcIDs = world.RemoveString(p.ChildrenNpcIDs, npcID)
	return s.WithPlayer(p).
		WithEvent(e.event(s, world.EventRelationship,
			fmt.Sprintf("Disowned %s", name), true))
}
