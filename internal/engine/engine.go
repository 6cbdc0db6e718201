package engine

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mythforge/server/internal/config"
	"github.com/mythforge/server/internal/scripting"
	"github.com/mythforge/server/internal/world"
)

// Roller is the engine's only source of non-determinism. Tests inject fixed
// rolls; production uses a seeded math/rand.
type Roller interface {
	// Noise returns a uniform integer in [-3, 3] (combat damage jitter).
	Noise() int
	// Chance returns true with probability p.
	Chance(p float64) bool
}

type randRoller struct {
	r *rand.Rand
}

// NewRoller returns a Roller seeded with the given value (0 seeds from the
// clock).
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randRoller{r: rand.New(rand.NewSource(seed))}
}

func (rr *randRoller) Noise() int { return rr.r.Intn(7) - 3 }

func (rr *randRoller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rr.r.Float64() < p
}

// Engine applies change batches and resolves combat rounds. It holds no
// world state of its own: every call takes a snapshot and returns a new one.
type Engine struct {
	Log     *zap.Logger
	Roll    Roller
	Scripts *scripting.Engine // optional tuning hooks, may be nil
	Rates   config.RatesConfig

	// StartLocationID is where a fresh character appears after permanent
	// death. Empty selects the first canonical location.
	StartLocationID string

	now func() time.Time
}

// New creates an engine with production defaults.
func New(log *zap.Logger, roll Roller) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if roll == nil {
		roll = NewRoller(0)
	}
	return &Engine{
		Log:   log,
		Roll:  roll,
		Rates: config.RatesConfig{ExpRate: 1.0, GoldRate: 1.0},
		now:   time.Now,
	}
}

func (e *Engine) timeNow() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func (e *Engine) expRate() float64 {
	if e.Rates.ExpRate <= 0 {
		return 1.0
	}
	return e.Rates.ExpRate
}

func (e *Engine) goldRate() float64 {
	if e.Rates.GoldRate <= 0 {
		return 1.0
	}
	return e.Rates.GoldRate
}

// event builds a log entry stamped with the snapshot's action counter.
func (e *Engine) event(s *world.State, typ world.EventType, desc string, significant bool) world.Event {
	return world.Event{
		Type:        typ,
		Description: desc,
		ActionIndex: s.ActionCounter,
		Timestamp:   e.timeNow(),
		Significant: significant,
	}
}
