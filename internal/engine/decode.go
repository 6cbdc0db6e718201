package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mythforge/server/internal/world"
)

// payload wraps a change's raw data map with lenient typed extraction.
// Numbers may arrive as float64 (JSON), int, json.Number, or digit strings;
// single values where lists are expected are promoted to one-element lists.
type payload map[string]any

func (d payload) str(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (d payload) num(key string) (float64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func (d payload) integer(key string) (int, bool) {
	f, ok := d.num(key)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func (d payload) boolean(key string) (bool, bool) {
	v, ok := d[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// strs returns a list of non-empty strings. A bare string value is promoted
// to a one-element list.
func (d payload) strs(key string) []string {
	v, ok := d[key]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case string:
		if s := strings.TrimSpace(list); s != "" {
			return []string{s}
		}
	case []string:
		return cleanStrings(list)
	case []any:
		out := make([]string, 0, len(list))
		for _, x := range list {
			if s, ok := x.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (d payload) sub(key string) (payload, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case map[string]any:
		return payload(m), true
	case payload:
		return m, true
	}
	return nil, false
}

// numMap returns a map of string keys to integer deltas, tolerating any
// lenient numeric encoding in the values. Non-numeric entries are dropped.
func (d payload) numMap(key string) map[string]int {
	m, ok := d.sub(key)
	if !ok {
		return nil
	}
	out := make(map[string]int, len(m))
	for k := range m {
		if n, ok := m.integer(k); ok {
			out[k] = n
		}
	}
	return out
}

// item decodes an item description from a nested map under key. Name is the
// only required field; a missing id is derived from the name.
func (d payload) item(key string, action int) (world.Item, bool) {
	m, ok := d.sub(key)
	if !ok {
		return world.Item{}, false
	}
	name, ok := m.str("name")
	if !ok {
		return world.Item{}, false
	}
	it := world.Item{Name: name}
	if id, ok := m.str("id"); ok {
		it.ID = id
	} else {
		it.ID = world.SlugID("item", name, action)
	}
	if kind, ok := m.str("kind"); ok {
		it.Kind = strings.ToLower(kind)
	}
	if desc, ok := m.str("description"); ok {
		it.Description = desc
	}
	if eff, ok := m.integer("effect"); ok {
		it.Effect = eff
	}
	return it, true
}
