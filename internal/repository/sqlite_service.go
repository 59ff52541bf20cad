package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
)

// SQLiteServiceRepo implements ServiceRepo using a SQLite database.
// Planned bounds are stored as calendar dates, the daily series as a JSON array.
type SQLiteServiceRepo struct {
	db db.DBTX
}

func NewSQLiteServiceRepo(conn db.DBTX) *SQLiteServiceRepo {
	return &SQLiteServiceRepo{db: conn}
}

const serviceColumns = `id, subpackage_id, code, name, total_hours, planned_start, planned_end,
	planned_daily_series, created_at, updated_at`

func (r *SQLiteServiceRepo) Create(ctx context.Context, s *domain.Service) error {
	series, err := seriesToValue(s.PlannedDailySeries)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO services (`+serviceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.SubpackageID,
		s.Code,
		s.Name,
		s.TotalHours,
		nullableTimeToString(s.PlannedStart, dateLayout),
		nullableTimeToString(s.PlannedEnd, dateLayout),
		series,
		formatRFC3339(s.CreatedAt),
		formatRFC3339(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting service: %w", err)
	}
	return nil
}

func (r *SQLiteServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteServiceRepo) ListBySubpackage(ctx context.Context, subpackageID string) ([]*domain.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE subpackage_id = ? ORDER BY code, name, id`,
		subpackageID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	var out []*domain.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating services: %w", err)
	}
	return out, nil
}

func (r *SQLiteServiceRepo) Update(ctx context.Context, s *domain.Service) error {
	series, err := seriesToValue(s.PlannedDailySeries)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE services SET code = ?, name = ?, total_hours = ?, planned_start = ?, planned_end = ?,
			planned_daily_series = ?, updated_at = ? WHERE id = ?`,
		s.Code,
		s.Name,
		s.TotalHours,
		nullableTimeToString(s.PlannedStart, dateLayout),
		nullableTimeToString(s.PlannedEnd, dateLayout),
		series,
		formatRFC3339(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("service %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func scanService(sc scanner) (*domain.Service, error) {
	var s domain.Service
	var start, end, series sql.NullString
	var createdAt, updatedAt string
	err := sc.Scan(
		&s.ID, &s.SubpackageID, &s.Code, &s.Name, &s.TotalHours,
		&start, &end, &series,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning service: %w", err)
	}

	s.PlannedStart = parseNullableTime(start, dateLayout)
	s.PlannedEnd = parseNullableTime(end, dateLayout)
	if s.PlannedDailySeries, err = parseSeries(series); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &s, nil
}
