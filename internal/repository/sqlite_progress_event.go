package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
)

// SQLiteProgressEventRepo appends raw progress reports as JSON payloads.
// Records come back in arrival order; interpretation is left to the curve normalizer.
type SQLiteProgressEventRepo struct {
	db db.DBTX
}

func NewSQLiteProgressEventRepo(conn db.DBTX) *SQLiteProgressEventRepo {
	return &SQLiteProgressEventRepo{db: conn}
}

func (r *SQLiteProgressEventRepo) Append(ctx context.Context, serviceID, eventID string, raw domain.RawEvent) (int64, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return 0, fmt.Errorf("encoding progress event: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO progress_events (service_id, event_id, payload, received_at) VALUES (?, ?, ?, ?)`,
		serviceID, nullableString(eventID), string(payload), nowUTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting progress event: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading progress event seq: %w", err)
	}
	return seq, nil
}

func (r *SQLiteProgressEventRepo) ListRaw(ctx context.Context, serviceID string) ([]domain.RawEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM progress_events WHERE service_id = ? ORDER BY seq`,
		serviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing progress events: %w", err)
	}
	defer rows.Close()

	var out []domain.RawEvent
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning progress event: %w", err)
		}
		var raw domain.RawEvent
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			return nil, fmt.Errorf("decoding progress event: %w", err)
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress events: %w", err)
	}
	return out, nil
}

func (r *SQLiteProgressEventRepo) CountByService(ctx context.Context, serviceID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM progress_events WHERE service_id = ?`, serviceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting progress events: %w", err)
	}
	return n, nil
}
