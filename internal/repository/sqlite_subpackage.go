package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
)

// SQLiteSubpackageRepo implements SubpackageRepo using a SQLite database.
type SQLiteSubpackageRepo struct {
	db db.DBTX
}

func NewSQLiteSubpackageRepo(conn db.DBTX) *SQLiteSubpackageRepo {
	return &SQLiteSubpackageRepo{db: conn}
}

const subpackageColumns = `id, package_id, name, order_index, created_at`

func (r *SQLiteSubpackageRepo) Create(ctx context.Context, sp *domain.Subpackage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subpackages (`+subpackageColumns+`) VALUES (?, ?, ?, ?, ?)`,
		sp.ID, sp.PackageID, sp.Name, sp.OrderIndex, formatRFC3339(sp.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting subpackage: %w", err)
	}
	return nil
}

func (r *SQLiteSubpackageRepo) GetByID(ctx context.Context, id string) (*domain.Subpackage, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subpackageColumns+` FROM subpackages WHERE id = ?`, id)
	sp, err := scanSubpackage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subpackage %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return sp, nil
}

func (r *SQLiteSubpackageRepo) ListByPackage(ctx context.Context, packageID string) ([]*domain.Subpackage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subpackageColumns+` FROM subpackages WHERE package_id = ? ORDER BY order_index, name`,
		packageID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing subpackages: %w", err)
	}
	defer rows.Close()

	var out []*domain.Subpackage
	for rows.Next() {
		sp, err := scanSubpackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subpackages: %w", err)
	}
	return out, nil
}

func scanSubpackage(s scanner) (*domain.Subpackage, error) {
	var sp domain.Subpackage
	var createdAt string
	if err := s.Scan(&sp.ID, &sp.PackageID, &sp.Name, &sp.OrderIndex, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subpackage: %w", err)
	}
	var err error
	if sp.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &sp, nil
}
