package engine

import (
	"github.com/mythforge/server/internal/legacy"
	"github.com/mythforge/server/internal/world"
)

// applyPlayerDeath retires the character permanently via the legacy archive.
// Only the player aggregate is reset; the rest of the world carries on.
func (e *Engine) applyPlayerDeath(s *world.State, d payload, res *Result) *world.State {
	narrative, _ := d.str("narrative")
	return legacy.Archive(s, narrative, e.StartLocationID, e.timeNow())
}
