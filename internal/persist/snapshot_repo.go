package persist

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/blake2b"

	"github.com/mythforge/server/internal/world"
)

var (
	// ErrVersionConflict means the stored snapshot advanced past the caller's
	// expected action counter. The caller should reload and rebase.
	ErrVersionConflict = errors.New("snapshot version conflict")
	// ErrSnapshotCorrupt means the stored payload no longer matches its digest.
	ErrSnapshotCorrupt = errors.New("snapshot digest mismatch")
	// ErrNoSnapshot means the session has never been saved.
	ErrNoSnapshot = errors.New("no snapshot for session")
)

// SnapshotRepo stores one full world snapshot per session, guarded by the
// snapshot's action counter as an optimistic-concurrency stamp.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

func digest(payload []byte) []byte {
	sum := blake2b.Sum256(payload)
	return sum[:]
}

// Save persists the snapshot. expectedCounter is the action counter of the
// snapshot the caller applied changes against; if the stored row has moved
// past it the save is rejected with ErrVersionConflict. A fresh session
// (expectedCounter 0, no row) inserts.
func (r *SnapshotRepo) Save(ctx context.Context, sessionID string, s *world.State, expectedCounter int) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx,
		`INSERT INTO world_snapshots (session_id, action_counter, schema_version, payload, digest, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (session_id) DO UPDATE
		 SET action_counter = EXCLUDED.action_counter,
		     schema_version = EXCLUDED.schema_version,
		     payload        = EXCLUDED.payload,
		     digest         = EXCLUDED.digest,
		     updated_at     = now()
		 WHERE world_snapshots.action_counter = $6`,
		sessionID, s.ActionCounter, s.Version, payload, digest(payload), expectedCounter,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Load fetches the session's snapshot, verifying the stored digest and the
// schema version before decoding.
func (r *SnapshotRepo) Load(ctx context.Context, sessionID string) (*world.State, error) {
	var (
		payload       []byte
		storedDigest  []byte
		schemaVersion string
	)
	err := r.db.Pool.QueryRow(ctx,
		`SELECT payload, digest, schema_version
		 FROM world_snapshots
		 WHERE session_id = $1`, sessionID,
	).Scan(&payload, &storedDigest, &schemaVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if subtle.ConstantTimeCompare(digest(payload), storedDigest) != 1 {
		return nil, ErrSnapshotCorrupt
	}
	if schemaVersion != world.SchemaVersion {
		return nil, fmt.Errorf("unsupported snapshot schema %q (want %q)", schemaVersion, world.SchemaVersion)
	}

	var s world.State
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// Counter returns the stored action counter for the session, or ErrNoSnapshot.
func (r *SnapshotRepo) Counter(ctx context.Context, sessionID string) (int, error) {
	var counter int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT action_counter FROM world_snapshots WHERE session_id = $1`, sessionID,
	).Scan(&counter)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoSnapshot
	}
	return counter, err
}
