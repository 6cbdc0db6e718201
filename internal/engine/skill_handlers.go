package engine

import (
	"strings"

	"github.com/mythforge/server/internal/world"
)

// skillLadder is the fixed qualitative progression for skills.
var skillLadder = []string{"novice", "apprentice", "journeyman", "adept", "expert", "master"}

// teacherGateIndex is the first ladder index that may require a teacher to
// advance into: rungs past journeyman. Gating below this rung is ignored.
const teacherGateIndex = 3 // adept

// ladderIndex parses a stored skill level back to its ladder rung,
// tolerating the reinforcement annotation appended by ungated practice.
func ladderIndex(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	for i, rung := range skillLadder {
		if level == rung || strings.HasPrefix(level, rung+" ") {
			return i
		}
	}
	return -1
}

// applyPracticeSkill advances a skill one rung, initializes an unknown skill
// at novice, or reinforces the current rung when advancement is
// teacher-gated and no teacher is present. An explicit targetLevel overrides
// the ladder entirely.
func (e *Engine) applyPracticeSkill(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("skill")
	if !ok {
		res.warn(KindPracticeSkill, "skill", "required")
		return s
	}
	skill := strings.ToLower(name)

	if target, ok := d.str("targetLevel"); ok {
		target = strings.ToLower(target)
		if ladderIndex(target) < 0 {
			res.warnf(KindPracticeSkill, "targetLevel", "invalid level %q", target)
			return s
		}
		return s.WithPlayer(setSkill(s.Player, skill, target))
	}

	current, known := s.Player.Knowledge.Skills[skill]
	if !known {
		return s.WithPlayer(setSkill(s.Player, skill, skillLadder[0]))
	}

	idx := ladderIndex(current)
	if idx < 0 {
		// Unparseable stored level; restart the ladder rather than guess.
		return s.WithPlayer(setSkill(s.Player, skill, skillLadder[0]))
	}
	if idx == len(skillLadder)-1 {
		return s // already master
	}

	next := idx + 1
	gated, _ := d.boolean("requiresTeacher")
	_, hasTeacher := d.str("teacher")
	if next >= teacherGateIndex && gated && !hasTeacher {
		// Reinforce instead of advancing.
		return s.WithPlayer(setSkill(s.Player, skill, skillLadder[idx]+" (well practiced)"))
	}
	return s.WithPlayer(setSkill(s.Player, skill, skillLadder[next]))
}

func setSkill(player *world.Player, skill, level string) *world.Player {
	p := player.Clone()
	skills := make(map[string]string, len(p.Knowledge.Skills)+1)
	for k, v := range p.Knowledge.Skills {
		skills[k] = v
	}
	skills[skill] = level
	k := p.Knowledge
	k.Skills = skills
	p.Knowledge = k
	return p
}

// applyRevealBackstory appends a backstory fragment (deduplicated by exact
// text) and optionally materializes a skill entry the fragment explains.
func (e *Engine) applyRevealBackstory(s *world.State, d payload, res *Result) *world.State {
	text, ok := d.str("text")
	if !ok {
		res.warn(KindRevealBackstory, "text", "required")
		return s
	}
	if world.ContainsString(s.Player.RevealedBackstory, text) {
		return s
	}

	p := s.Player.Clone()
	p.RevealedBackstory = append(world.Capped(p.RevealedBackstory), text)

	if skill, ok := d.str("skill"); ok {
		skill = strings.ToLower(skill)
		if _, known := p.Knowledge.Skills[skill]; !known {
			level := skillLadder[0]
			if lv, ok := d.str("skillLevel"); ok && ladderIndex(strings.ToLower(lv)) >= 0 {
				level = strings.ToLower(lv)
			}
			p = setSkill(p, skill, level)
		}
	}
	return s.WithPlayer(p)
}
