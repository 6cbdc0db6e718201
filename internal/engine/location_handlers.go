package engine

import (
	"fmt"
	"strings"

	"github.com/mythforge/server/internal/world"
)

// compassStep maps the 8-way compass to a unit grid step. North is +Y.
var compassStep = map[string]world.Coordinates{
	"north":     {X: 0, Y: 1},
	"south":     {X: 0, Y: -1},
	"east":      {X: 1, Y: 0},
	"west":      {X: -1, Y: 0},
	"northeast": {X: 1, Y: 1},
	"northwest": {X: -1, Y: 1},
	"southeast": {X: 1, Y: -1},
	"southwest": {X: -1, Y: -1},
}

func (e *Engine) applyCreateLocation(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(KindCreateLocation, "name", "required")
		return s
	}
	id, ok := d.str("id")
	if !ok {
		id = world.SlugID("loc", name, s.ActionCounter)
	}
	if s.Location(id) != nil {
		res.warnf(KindCreateLocation, "id", "location %q already exists", id)
		return s
	}

	coords, ok := resolveCoordinates(s, d)
	if !ok {
		res.warn(KindCreateLocation, "coordinates", "need explicit x/y or a compass direction from a known location")
		return s
	}

	loc := &world.Location{
		ID:          id,
		Name:        name,
		Coordinates: coords,
	}
	if desc, ok := d.str("description"); ok {
		loc.Description = desc
	}
	if terrain, ok := d.str("terrain"); ok {
		loc.Terrain = strings.ToLower(terrain)
	}
	if danger, ok := d.integer("dangerLevel"); ok && danger >= 0 {
		loc.DangerLevel = danger
	}
	for _, name := range d.strs("structures") {
		loc.Structures = append(loc.Structures, world.Structure{Name: name})
	}

	return s.WithLocation(loc).
		WithEvent(e.event(s, world.EventWorld,
			fmt.Sprintf("A new place emerged: %s", name), false))
}

// resolveCoordinates prefers explicit x/y; otherwise derives a grid cell one
// step along a named compass direction from an anchor location (defaulting
// to the player's current one).
func resolveCoordinates(s *world.State, d payload) (world.Coordinates, bool) {
	if c, ok := d.sub("coordinates"); ok {
		x, okX := c.integer("x")
		y, okY := c.integer("y")
		if okX && okY {
			return world.Coordinates{X: x, Y: y}, true
		}
	}

	dir, ok := d.str("direction")
	if !ok {
		return world.Coordinates{}, false
	}
	step, ok := compassStep[strings.ToLower(dir)]
	if !ok {
		return world.Coordinates{}, false
	}

	fromID, ok := d.str("fromLocationId")
	if !ok {
		fromID = s.Player.CurrentLocationID
	}
	from := s.Location(fromID)
	if from == nil {
		return world.Coordinates{}, false
	}
	return world.Coordinates{
		X: from.Coordinates.X + step.X,
		Y: from.Coordinates.Y + step.Y,
	}, true
}

func (e *Engine) applyCreateStructure(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(KindCreateStructure, "name", "required")
		return s
	}
	locID, ok := d.str("locationId")
	if !ok {
		locID = s.Player.CurrentLocationID
	}
	loc := s.Location(locID)
	if loc == nil {
		res.warnf(KindCreateStructure, "locationId", "unknown location %q", locID)
		return s
	}
	if loc.FindStructure(name) >= 0 {
		res.warnf(KindCreateStructure, "name", "structure %q already present at %s", name, loc.Name)
		return s
	}

	st := world.Structure{Name: name}
	if desc, ok := d.str("description"); ok {
		st.Description = desc
	}
	l := loc.Clone()
	l.Structures = append(world.Capped(l.Structures), st)
	return s.WithLocation(l).
		WithEvent(e.event(s, world.EventWorld,
			fmt.Sprintf("%s was built at %s", name, loc.Name), false))
}

func (e *Engine) applyDestroyStructure(s *world.State, d payload, res *Result) *world.State {
	name, ok := d.str("name")
	if !ok {
		res.warn(KindDestroyStructure, "name", "required")
		return s
	}
	locID, ok := d.str("locationId")
	if !ok {
		locID = s.Player.CurrentLocationID
	}
	loc := s.Location(locID)
	if loc == nil {
		res.warnf(KindDestroyStructure, "locationId", "unknown location %q", locID)
		return s
	}
	i := loc.FindStructure(name)
	if i < 0 {
		res.warnf(KindDestroyStructure, "name", "no structure matching %q at %s", name, loc.Name)
		return s
	}

	destroyed := loc.Structures[i]
	l := loc.Clone()
	out := make([]world.Structure, 0, len(l.Structures)-1)
	out = append(out, l.Structures[:i]...)
	l.Structures = append(out, l.Structures[i+1:]...)
	return s.WithLocation(l).
		WithEvent(e.event(s, world.EventWorld,
			fmt.Sprintf("%s at %s was destroyed", destroyed.Name, loc.Name), true))
}

// applyUpdateLocation merges mutable descriptive fields. Identity fields
// (id, coordinates) cannot be rewritten through this path.
func (e *Engine) applyUpdateLocation(s *world.State, d payload, res *Result) *world.State {
	locID, ok := d.str("locationId")
	if !ok {
		res.warn(KindUpdateLocation, "locationId", "required")
		return s
	}
	loc := s.Location(locID)
	if loc == nil {
		res.warnf(KindUpdateLocation, "locationId", "unknown location %q", locID)
		return s
	}
	updates, ok := d.sub("updates")
	if !ok {
		res.warn(KindUpdateLocation, "updates", "required object")
		return s
	}

	l := loc.Clone()
	changed := false
	for key := range updates {
		switch key {
		case "id", "coordinates":
			res.warnf(KindUpdateLocation, key, "field is immutable")
		case "name":
			if v, ok := updates.str(key); ok {
				l.Name = v
				changed = true
			}
		case "description":
			if v, ok := updates.str(key); ok {
				l.Description = v
				changed = true
			}
		case "terrain":
			if v, ok := updates.str(key); ok {
				l.Terrain = strings.ToLower(v)
				changed = true
			}
		case "dangerLevel":
			if v, ok := updates.integer(key); ok && v >= 0 {
				l.DangerLevel = v
				changed = true
			}
		}
	}
	if !changed {
		return s
	}
	return s.WithLocation(l)
}
