package world

import (
	"fmt"
	"strings"
)

// Copy-on-write helpers. Every mutation clones only the State shell, the one
// top-level map being touched, and the single entity being replaced. All
// other entities are shared by pointer between snapshots, so callers must
// never write through a pointer obtained from an existing snapshot.

// Clone returns a shallow copy of the state shell. Maps and slices are
// shared; use the With* helpers to replace entries.
func (s *State) Clone() *State {
	out := *s
	return &out
}

// WithPlayer returns a new snapshot with the player replaced.
func (s *State) WithPlayer(p *Player) *State {
	out := *s
	out.Player = p
	return &out
}

// WithNPC returns a new snapshot with one NPC replaced or inserted.
func (s *State) WithNPC(n *NPC) *State {
	out := *s
	out.NPCs = CloneMap(s.NPCs)
	out.NPCs[n.ID] = n
	return &out
}

// WithLocation returns a new snapshot with one location replaced or inserted.
func (s *State) WithLocation(l *Location) *State {
	out := *s
	out.Locations = CloneMap(s.Locations)
	out.Locations[l.ID] = l
	return &out
}

// WithFaction returns a new snapshot with one faction replaced or inserted.
func (s *State) WithFaction(f *Faction) *State {
	out := *s
	out.Factions = CloneMap(s.Factions)
	out.Factions[f.ID] = f
	return &out
}

// WithQuest returns a new snapshot with one quest replaced or inserted.
func (s *State) WithQuest(q *Quest) *State {
	out := *s
	out.Quests = CloneMap(s.Quests)
	out.Quests[q.ID] = q
	return &out
}

// WithCombat returns a new snapshot with the combat state replaced
// (nil clears it).
func (s *State) WithCombat(c *CombatState) *State {
	out := *s
	out.Combat = c
	return &out
}

// WithEvent returns a new snapshot with an event appended to the history.
func (s *State) WithEvent(e Event) *State {
	out := *s
	out.EventHistory = append(Capped(s.EventHistory), e)
	return &out
}

// WithMessage returns a new snapshot with a line appended to the message log.
func (s *State) WithMessage(msg string) *State {
	out := *s
	out.MessageLog = append(Capped(s.MessageLog), msg)
	return &out
}

// Clone returns a copy of the player. Slices and maps are shared with the
// original; replace them (never append in place) when mutating.
func (p *Player) Clone() *Player {
	out := *p
	return &out
}

// Clone returns a copy of the NPC with shared slices.
func (n *NPC) Clone() *NPC {
	out := *n
	return &out
}

// Clone returns a copy of the location with shared slices.
func (l *Location) Clone() *Location {
	out := *l
	return &out
}

// Clone returns a copy of the faction with shared slices.
func (f *Faction) Clone() *Faction {
	out := *f
	return &out
}

// Clone returns a copy of the quest with shared slices.
func (q *Quest) Clone() *Quest {
	out := *q
	return &out
}

// CloneMap returns a shallow copy of a map.
func CloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Capped reslices s so that any append allocates a fresh backing array
// instead of writing into storage shared with an older snapshot.
func Capped[T any](s []T) []T {
	return s[:len(s):len(s)]
}

// RemoveString returns a copy of s without the first occurrence of v.
// Returns s unchanged (same backing array) when v is absent.
func RemoveString(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			out := make([]string, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// RemoveItemAt returns a copy of items without the element at index i.
func RemoveItemAt(items []Item, i int) []Item {
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// ContainsString reports whether v is an element of s (exact match).
func ContainsString(s []string, v string) bool { return containsString(s, v) }

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LooseMatch reports whether a and b match under the lenient identity used
// for curses, blessings and structures: case-insensitive substring
// containment either way. Deliberately permissive for generator-fed names;
// tighten here, not at call sites.
func LooseMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// SlugID derives a stable entity id from a prefix, a display name, and the
// action counter at creation time. Used when the narrative layer creates an
// entity without supplying an explicit id.
func SlugID(prefix, name string, action int) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '_'
		}
		return -1
	}, slug)
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "unnamed"
	}
	return fmt.Sprintf("%s_%s_%d", prefix, slug, action)
}
