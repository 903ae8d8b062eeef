package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"personalcalendar/internal/domain"
)

type snapshotRepository struct {
	DB *sql.DB
}

// NewSnapshotRepository returns a SnapshotRepository over the
// calendar_snapshots table: one row per storage key holding the serialized
// event list for that owner.
func NewSnapshotRepository(db *sql.DB) domain.SnapshotRepository {
	return &snapshotRepository{
		DB: db,
	}
}

func (r *snapshotRepository) Load(ctx context.Context, key string) ([]domain.Event, error) {
	query := `
		SELECT events
		FROM calendar_snapshots
		WHERE storage_key = $1
	`
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var events []domain.Event
	if err := json.Unmarshal(payload, &events); err != nil {
		// The stored row is left untouched so a later fix can recover it.
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return events, nil
}

func (r *snapshotRepository) Save(ctx context.Context, key string, events []domain.Event) error {
	if events == nil {
		events = []domain.Event{}
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	query := `
		INSERT INTO calendar_snapshots (storage_key, events, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_key) DO UPDATE
		SET events = EXCLUDED.events, updated_at = NOW()
	`
	_, err = r.DB.ExecContext(ctx, query, key, payload)
	return err
}
