package persist

import (
	"context"
	"fmt"

	"github.com/mythforge/server/internal/world"
)

// JournalRepo mirrors the snapshot's event history into a queryable table.
// The snapshot stays authoritative; the journal exists for narrative tooling.
type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Append atomically writes a batch of events in a single transaction.
// Returns nil on success. If it fails, the caller should retry the batch.
func (r *JournalRepo) Append(ctx context.Context, sessionID string, events []world.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, ev := range events {
		if _, err := tx.Exec(ctx,
			`INSERT INTO event_journal (session_id, action_index, event_type, description, is_significant, occurred_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			sessionID, ev.ActionIndex, string(ev.Type), ev.Description, ev.Significant, ev.Timestamp,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Significant returns the most recent significant events for the session,
// newest first.
func (r *JournalRepo) Significant(ctx context.Context, sessionID string, limit int) ([]world.Event, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_type, description, action_index, occurred_at, is_significant
		 FROM event_journal
		 WHERE session_id = $1 AND is_significant
		 ORDER BY action_index DESC, id DESC
		 LIMIT $2`, sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []world.Event
	for rows.Next() {
		var (
			ev  world.Event
			typ string
		)
		if err := rows.Scan(&typ, &ev.Description, &ev.ActionIndex, &ev.Timestamp, &ev.Significant); err != nil {
			return nil, err
		}
		ev.Type = world.EventType(typ)
		events = append(events, ev)
	}
	return events, rows.Err()
}
