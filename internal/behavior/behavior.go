// Package behavior scores resolved actions against six behavioral axes and
// maintains the per-player running counters those scores feed. The scoring
// pass is stateless; the counters live on the player record.
package behavior

import (
	"sort"
	"strings"

	"github.com/mythforge/server/internal/engine"
	"github.com/mythforge/server/internal/world"
)

const (
	keywordWeight = 1
	kindWeight    = 2

	// dominantFloor keeps small samples from producing a dominant label.
	dominantFloor      = 3
	dominantMultiplier = 1.5
)

// Axis names, used as the stable identifiers in dominant-pattern output.
const (
	AxisCombat      = "combat"
	AxisDiplomacy   = "diplomacy"
	AxisExploration = "exploration"
	AxisSocial      = "social"
	AxisStealth     = "stealth"
	AxisMagic       = "magic"
)

type rule struct {
	keywords []string
	kinds    []engine.Kind
}

var rules = map[string]rule{
	AxisCombat: {
		keywords: []string{"attack", "fight", "strike", "slay", "battle", "duel", "kill"},
		kinds:    []engine.Kind{engine.KindStartCombat, engine.KindDamagePlayer, engine.KindNPCDeath},
	},
	AxisDiplomacy: {
		keywords: []string{"negotiate", "persuade", "convince", "mediate", "barter", "apologize", "treaty"},
		kinds:    []engine.Kind{engine.KindUpdateFactionReputation, engine.KindUpdateNPCAttitude},
	},
	AxisExploration: {
		keywords: []string{"explore", "travel", "journey", "search", "discover", "wander", "scout"},
		kinds:    []engine.Kind{engine.KindMovePlayer, engine.KindCreateLocation},
	},
	AxisSocial: {
		keywords: []string{"talk", "chat", "greet", "befriend", "celebrate", "feast", "story"},
		kinds:    []engine.Kind{engine.KindUpdateRelationship, engine.KindAddCompanion},
	},
	AxisStealth: {
		keywords: []string{"sneak", "hide", "steal", "pickpocket", "lurk", "disguise", "eavesdrop"},
		kinds:    []engine.Kind{engine.KindRecordCrime},
	},
	AxisMagic: {
		keywords: []string{"cast", "spell", "enchant", "ritual", "summon", "arcane", "incantation"},
		kinds:    []engine.Kind{engine.KindAddCurse, engine.KindAddBlessing, engine.KindAddTransformation},
	},
}

// Score classifies one resolved action. The description is matched
// case-insensitively; each keyword hit scores 1, each matching change kind
// scores 2, and several axes may fire on the same action.
func Score(description string, changes []engine.Change) world.BehaviorPatterns {
	lowered := strings.ToLower(description)
	kinds := map[engine.Kind]int{}
	for _, c := range changes {
		kinds[c.Kind]++
	}

	var bp world.BehaviorPatterns
	for axis, r := range rules {
		score := 0
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				score += keywordWeight
			}
		}
		for _, k := range r.kinds {
			score += kindWeight * kinds[k]
		}
		setAxis(&bp, axis, score)
	}
	return bp
}

// Accumulate scores the action and folds the result onto the player's
// running counters, returning the new snapshot. A zero score returns the
// input snapshot unchanged.
func Accumulate(s *world.State, description string, changes []engine.Change) *world.State {
	delta := Score(description, changes)
	if delta == (world.BehaviorPatterns{}) {
		return s
	}
	p := s.Player.Clone()
	p.BehaviorPatterns = world.BehaviorPatterns{
		Combat:      p.BehaviorPatterns.Combat + delta.Combat,
		Diplomacy:   p.BehaviorPatterns.Diplomacy + delta.Diplomacy,
		Exploration: p.BehaviorPatterns.Exploration + delta.Exploration,
		Social:      p.BehaviorPatterns.Social + delta.Social,
		Stealth:     p.BehaviorPatterns.Stealth + delta.Stealth,
		Magic:       p.BehaviorPatterns.Magic + delta.Magic,
	}
	return s.WithPlayer(p)
}

// Dominant reports every axis whose counter exceeds both 1.5x the mean of
// all six counters and an absolute floor of 3, sorted by counter descending
// (ties break alphabetically). Early sessions report nothing.
func Dominant(bp world.BehaviorPatterns) []string {
	counters := map[string]int{
		AxisCombat:      bp.Combat,
		AxisDiplomacy:   bp.Diplomacy,
		AxisExploration: bp.Exploration,
		AxisSocial:      bp.Social,
		AxisStealth:     bp.Stealth,
		AxisMagic:       bp.Magic,
	}
	total := 0
	for _, v := range counters {
		total += v
	}
	threshold := float64(total) / 6.0 * dominantMultiplier

	var dominant []string
	for axis, v := range counters {
		if v >= dominantFloor && float64(v) > threshold {
			dominant = append(dominant, axis)
		}
	}
	sort.Slice(dominant, func(i, j int) bool {
		a, b := counters[dominant[i]], counters[dominant[j]]
		if a != b {
			return a > b
		}
		return dominant[i] < dominant[j]
	})
	return dominant
}

func setAxis(bp *world.BehaviorPatterns, axis string, score int) {
	switch axis {
	case AxisCombat:
		bp.Combat = score
	case AxisDiplomacy:
		bp.Diplomacy = score
	case AxisExploration:
		bp.Exploration = score
	case AxisSocial:
		bp.Social = score
	case AxisStealth:
		bp.Stealth = score
	case AxisMagic:
		bp.Magic = score
	}
}
