package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
)

// SQLitePackageRepo implements PackageRepo using a SQLite database.
type SQLitePackageRepo struct {
	db db.DBTX
}

// NewSQLitePackageRepo creates a new SQLitePackageRepo.
func NewSQLitePackageRepo(conn db.DBTX) *SQLitePackageRepo {
	return &SQLitePackageRepo{db: conn}
}

func (r *SQLitePackageRepo) Create(ctx context.Context, p *domain.Package) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO packages (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, formatRFC3339(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting package: %w", err)
	}
	return nil
}

func (r *SQLitePackageRepo) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM packages WHERE id = ?`, id)
	p, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("package %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLitePackageRepo) List(ctx context.Context) ([]*domain.Package, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM packages ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	var out []*domain.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating packages: %w", err)
	}
	return out, nil
}

func (r *SQLitePackageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting package: %w", err)
	}
	return nil
}

func scanPackage(s scanner) (*domain.Package, error) {
	var p domain.Package
	var createdAt string
	if err := s.Scan(&p.ID, &p.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning package: %w", err)
	}
	var err error
	if p.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
