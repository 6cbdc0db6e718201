package engine

import (
	"fmt"
	"strings"

	"github.com/mythforge/server/internal/world"
)

// Transformations, curses, and blessings are independent idempotent sets
// keyed by normalized lowercase name. Curses and blessings may carry a
// "(from source)" annotation baked into the stored string; removal matches
// by substring containment against that annotated string. Adding an entry
// that is already present, or removing one that is absent, is a quiet no-op.

func (e *Engine) applyAddTransformation(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(KindAddTransformation, "name", "required")
		return s
	}
	entry := strings.ToLower(name)
	if world.ContainsString(s.Player.Transformations, entry) {
		return s
	}
	p := s.Player.Clone()
	p.Transformations = append(world.Capped(p.Transformations), entry)
	return s.WithPlayer(p).
		WithEvent(e.event(s, world.EventWorld,
			fmt.Sprintf("The player was transformed: %s", entry), true))
}

func (e *Engine) applyRemoveTransformation(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(KindRemoveTransformation, "name", "required")
		return s
	}
	entry := strings.ToLower(name)
	if !world.ContainsString(s.Player.Transformations, entry) {
		return s
	}
	p := s.Player.Clone()
	p.Transformations = world.RemoveString(p.Transformations, entry)
	return s.WithPlayer(p)
}

// afflictionSet picks the curse or blessing list for the given kind.
func afflictionSet(p *world.Player, kind Kind) []string {
	switch kind {
	case KindAddCurse, KindRemoveCurse:
		return p.Curses
	default:
		return p.Blessings
	}
}

func (e *Engine) applyAddAffliction(s *world.State, d payload, res *Result, kind Kind) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(kind, "name", "required")
		return s
	}
	entry := strings.ToLower(name)
	if source, ok := d.str("source"); ok {
		entry = fmt.Sprintf("%s (from %s)", entry, strings.ToLower(source))
	}

	set := afflictionSet(s.Player, kind)
	for _, existing := range set {
		if world.LooseMatch(existing, strings.ToLower(name)) {
			return s
		}
	}

	p := s.Player.Clone()
	var desc string
	if kind == KindAddCurse {
		p.Curses = append(world.Capped(p.Curses), entry)
		desc = fmt.Sprintf("Cursed: %s", entry)
	} else {
		p.Blessings = append(world.Capped(p.Blessings), entry)
		desc = fmt.Sprintf("Blessed: %s", entry)
	}
	return s.WithPlayer(p).
		WithEvent(e.event(s, world.EventWorld, desc, kind == KindAddCurse))
}

func (e *Engine) applyRemoveAffliction(s *world.State, d payload, res *Result, kind Kind) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(kind, "name", "required")
		return s
	}
	needle := strings.ToLower(name)

	set := afflictionSet(s.Player, kind)
	idx := -1
	for i, existing := range set {
		if world.LooseMatch(existing, needle) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	out := make([]string, 0, len(set)-1)
	out = append(out, set[:idx]...)
	out = append(out, set[idx+1:]...)

	p := s.Player.Clone()
	if kind == KindRemoveCurse {
		p.Curses = out
	} else {
		p.Blessings = out
	}
	return s.WithPlayer(p)
}
