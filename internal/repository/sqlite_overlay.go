package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
)

// SQLiteOverlayRepo implements OverlayRepo using a SQLite database.
type SQLiteOverlayRepo struct {
	db db.DBTX
}

func NewSQLiteOverlayRepo(conn db.DBTX) *SQLiteOverlayRepo {
	return &SQLiteOverlayRepo{db: conn}
}

func (r *SQLiteOverlayRepo) Get(ctx context.Context, serviceID string) (*domain.ProgressOverlay, error) {
	var o domain.ProgressOverlay
	var source, recordedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT service_id, percent, source, recorded_at FROM progress_overlays WHERE service_id = ?`,
		serviceID,
	).Scan(&o.ServiceID, &o.Percent, &source, &recordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("progress overlay %s: %w", serviceID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning progress overlay: %w", err)
	}
	o.Source = domain.ProgressSource(source)
	if o.RecordedAt, err = parseRFC3339(recordedAt, "recorded_at"); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQLiteOverlayRepo) Upsert(ctx context.Context, o *domain.ProgressOverlay) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress_overlays (service_id, percent, source, recorded_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(service_id) DO UPDATE SET
			percent = excluded.percent,
			source = excluded.source,
			recorded_at = excluded.recorded_at`,
		o.ServiceID, o.Percent, string(o.Source), formatRFC3339(o.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting progress overlay: %w", err)
	}
	return nil
}

func (r *SQLiteOverlayRepo) Delete(ctx context.Context, serviceID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress_overlays WHERE service_id = ?`, serviceID); err != nil {
		return fmt.Errorf("deleting progress overlay: %w", err)
	}
	return nil
}
