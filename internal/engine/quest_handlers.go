package engine

import (
	"fmt"

	"github.com/mythforge/server/internal/world"
)

func (e *Engine) applyAddQuest(s *world.State, d payload, res *Result) *world.State {
	title, ok := d.str("title")
	if !ok {
		res.warn(KindAddQuest, "title", "required")
		return s
	}
	giverID, ok := d.str("giverNpcId")
	if !ok {
		res.warn(KindAddQuest, "giverNpcId", "required")
		return s
	}
	if s.NPC(giverID) == nil {
		res.warnf(KindAddQuest, "giverNpcId", "unknown npc %q", giverID)
		return s
	}
	objectives := d.strs("objectives")
	if len(objectives) == 0 {
		res.warn(KindAddQuest, "objectives", "at least one objective required")
		return s
	}

	id, ok := d.str("id")
	if !ok {
		id = world.SlugID("quest", title, s.ActionCounter)
	}
	if s.Quest(id) != nil {
		res.warnf(KindAddQuest, "id", "quest %q already exists", id)
		return s
	}

	q := &world.Quest{
		ID:         id,
		Title:      title,
		GiverNpcID: giverID,
		Status:     world.QuestActive,
		Objectives: objectives,
	}
	if desc, ok := d.str("description"); ok {
		q.Description = desc
	}
	if rw, ok := d.sub("rewards"); ok {
		reward := &world.QuestReward{}
		if g, ok := rw.integer("gold"); ok && g > 0 {
			reward.Gold = g
		}
		if x, ok := rw.integer("experience"); ok && x > 0 {
			reward.Experience = x
		}
		if reward.Gold > 0 || reward.Experience > 0 {
			q.Rewards = reward
		}
	}

	return s.WithQuest(q).
		WithEvent(e.event(s, world.EventQuest,
			fmt.Sprintf("New quest accepted: %s", title), true))
}

// applyUpdateQuest merges a status transition and/or newly completed
// objectives. A quest auto-promotes to completed exactly when its completed
// set covers all objectives while still active, and never regresses away
// from completed.
func (e *Engine) applyUpdateQuest(s *world.State, d payload, res *Result) *world.State {
	questID, ok := d.str("questId")
	if !ok {
		res.warn(KindUpdateQuest, "questId", "required")
		return s
	}
	quest := s.Quest(questID)
	if quest == nil {
		res.warnf(KindUpdateQuest, "questId", "unknown quest %q", questID)
		return s
	}

	q := quest.Clone()
	changed := false

	if raw, ok := d.str("status"); ok {
		status := world.QuestStatus(raw)
		if !world.ValidQuestStatus(status) {
			res.warnf(KindUpdateQuest, "status", "invalid status %q", raw)
		} else if q.Status == world.QuestCompleted && status != world.QuestCompleted {
			res.warn(KindUpdateQuest, "status", "completed quests cannot change status")
		} else if status != q.Status {
			q.Status = status
			changed = true
		}
	}

	for _, obj := range d.strs("completedObjectives") {
		if !world.ContainsString(q.Objectives, obj) {
			res.warnf(KindUpdateQuest, "completedObjectives", "not an objective of %q: %q", questID, obj)
			continue
		}
		if world.ContainsString(q.CompletedObjectives, obj) {
			continue
		}
		q.CompletedObjectives = append(world.Capped(q.CompletedObjectives), obj)
		changed = true
	}

	if !changed {
		return s
	}

	out := s.WithQuest(q)
	if q.Status == world.QuestActive && len(q.CompletedObjectives) == len(q.Objectives) {
		done := q.Clone()
		done.Status = world.QuestCompleted
		out = out.WithQuest(done).
			WithEvent(e.event(s, world.EventQuest,
				fmt.Sprintf("Quest completed: %s", q.Title), true))
	} else if q.Status != quest.Status {
		out = out.WithEvent(e.event(s, world.EventQuest,
			fmt.Sprintf("Quest %s is now %s", q.Title, q.Status), q.Status != world.QuestActive))
	}
	return out
}

// applyUpdateFactionReputation mirrors the NPC attitude pattern:
// absolute-or-relative, clamped.
func (e *Engine) applyUpdateFactionReputation(s *world.State, d payload, res *Result) *world.State {
	factionID, ok := d.str("factionId")
	if !ok {
		res.warn(KindUpdateFactionReputation, "factionId", "required")
		return s
	}
	faction := s.Faction(factionID)
	if faction == nil {
		res.warnf(KindUpdateFactionReputation, "factionId", "unknown faction %q", factionID)
		return s
	}

	next, ok := resolveAbsoluteOrDelta(d, faction.PlayerReputation)
	if !ok {
		res.warn(KindUpdateFactionReputation, "value", "either value or delta required")
		return s
	}
	if next == faction.PlayerReputation {
		return s
	}
	f := faction.Clone()
	f.PlayerReputation = next
	return s.WithFaction(f)
}
