// Command worldd runs a single narrative world session. It loads (or seeds)
// the session snapshot, then serves a line-oriented JSON protocol on stdin:
// one request object per line, one response object per line on stdout. The
// narrative generator upstream is the only intended client.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mythforge/server/internal/behavior"
	"github.com/mythforge/server/internal/config"
	"github.com/mythforge/server/internal/data"
	"github.com/mythforge/server/internal/engine"
	"github.com/mythforge/server/internal/knowledge"
	"github.com/mythforge/server/internal/ledger"
	"github.com/mythforge/server/internal/persist"
	"github.com/mythforge/server/internal/scripting"
	"github.com/mythforge/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// request is one line of the stdin protocol.
type request struct {
	Action      string          `json:"action"`
	Description string          `json:"description,omitempty"`
	Changes     []engine.Change `json:"changes,omitempty"`
	Combat      string          `json:"combat,omitempty"`
	Query       string          `json:"query,omitempty"`
	Ref         string          `json:"ref,omitempty"`
	NpcID       string          `json:"npcId,omitempty"`
}

// response is one line of the stdout protocol.
type response struct {
	OK            bool                 `json:"ok"`
	Error         string               `json:"error,omitempty"`
	ActionCounter int                  `json:"actionCounter"`
	Warnings      []engine.Warning     `json:"warnings,omitempty"`
	Messages      []string             `json:"messages,omitempty"`
	Knows         *bool                `json:"knows,omitempty"`
	Refusal       string               `json:"refusal,omitempty"`
	Wanted        *ledger.WantedStatus `json:"wanted,omitempty"`
	Dominant      []string             `json:"dominant,omitempty"`
	Combat        *engine.RoundResult  `json:"combat,omitempty"`
	State         *world.State         `json:"state,omitempty"`
}

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("MYTHFORGE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Defaults()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect to PostgreSQL and run migrations
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(dbCtx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := persist.RunMigrations(dbCtx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("database ready")

	snapshots := persist.NewSnapshotRepo(db)
	journal := persist.NewJournalRepo(db)

	// 4. Load the session snapshot, seeding a fresh world if none exists
	state, err := snapshots.Load(ctx, cfg.Session.ID)
	if errors.Is(err, persist.ErrNoSnapshot) {
		state, err = data.LoadWorld(cfg.Paths.SeedWorld)
		if err != nil {
			return fmt.Errorf("seed world: %w", err)
		}
		if err := snapshots.Save(ctx, cfg.Session.ID, state, 0); err != nil {
			return fmt.Errorf("save seed snapshot: %w", err)
		}
		log.Info("seeded new session",
			zap.String("session", cfg.Session.ID),
			zap.Int("locations", len(state.Locations)),
			zap.Int("npcs", len(state.NPCs)))
	} else if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	} else {
		log.Info("resumed session",
			zap.String("session", cfg.Session.ID),
			zap.Int("actionCounter", state.ActionCounter))
	}

	// 5. Lua tuning hooks
	luaEngine, err := scripting.NewEngine(cfg.Paths.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	// 6. Build the engine
	eng := engine.New(log, engine.NewRoller(cfg.Session.RandomSeed))
	eng.Scripts = luaEngine
	eng.Rates = cfg.Rates
	eng.StartLocationID = cfg.Session.StartLocation

	log.Info("session ready", zap.String("player", state.Player.Name))
	return serve(ctx, log, eng, snapshots, journal, cfg.Session.ID, state)
}

// serve drives the stdin/stdout protocol loop until EOF or signal.
func serve(ctx context.Context, log *zap.Logger, eng *engine.Engine,
	snapshots *persist.SnapshotRepo, journal *persist.JournalRepo,
	sessionID string, state *world.State) error {

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 1<<20), 1<<24)
	out := json.NewEncoder(os.Stdout)

	for in.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			out.Encode(response{Error: "malformed request: " + err.Error(), ActionCounter: state.ActionCounter})
			continue
		}

		resp := response{OK: true}
		next := state

		switch req.Action {
		case "apply":
			res := eng.Apply(state, req.Changes)
			next = behavior.Accumulate(res.State, req.Description, req.Changes)
			resp.Warnings = res.Warnings
			resp.Messages = diffStrings(state.MessageLog, next.MessageLog)

		case "combat":
			rr, err := eng.ResolveRound(state, engine.CombatAction(req.Combat))
			if err != nil {
				resp = response{Error: err.Error()}
				break
			}
			next = rr.State
			resp.Combat = rr
			resp.Messages = rr.Messages

		case "query":
			switch req.Query {
			case "knows":
				known := knowledge.Knows(state, req.Ref)
				resp.Knows = &known
			case "wanted":
				ws := ledger.Wanted(state)
				resp.Wanted = &ws
			case "refusal":
				resp.Refusal = ledger.Refusal(state, req.NpcID, eng.Roll)
			case "dominant":
				resp.Dominant = behavior.Dominant(state.Player.BehaviorPatterns)
			default:
				resp = response{Error: fmt.Sprintf("unknown query %q", req.Query)}
			}

		case "state":
			resp.State = state

		default:
			resp = response{Error: fmt.Sprintf("unknown action %q", req.Action)}
		}

		if next != state {
			if err := persistStep(ctx, snapshots, journal, sessionID, state, next); err != nil {
				log.Error("persist step", zap.Error(err))
				resp = response{Error: "persist: " + err.Error()}
				next = state
			}
		}
		state = next
		resp.ActionCounter = state.ActionCounter
		if resp.Error != "" {
			resp.OK = false
		}
		if err := out.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := in.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	log.Info("session closed", zap.Int("actionCounter", state.ActionCounter))
	return nil
}

// persistStep saves the new snapshot guarded by the previous action counter
// and mirrors any new events into the journal.
func persistStep(ctx context.Context, snapshots *persist.SnapshotRepo, journal *persist.JournalRepo,
	sessionID string, prev, next *world.State) error {
	if err := snapshots.Save(ctx, sessionID, next, prev.ActionCounter); err != nil {
		return err
	}
	if added := next.EventHistory[len(prev.EventHistory):]; len(added) > 0 {
		if err := journal.Append(ctx, sessionID, added); err != nil {
			return err
		}
	}
	return nil
}

func diffStrings(prev, next []string) []string {
	if len(next) <= len(prev) {
		return nil
	}
	return next[len(prev):]
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	// Logs go to stderr; stdout carries the response protocol.
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
