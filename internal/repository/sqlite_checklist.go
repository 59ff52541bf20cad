package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
)

// SQLiteChecklistRepo implements ChecklistRepo using a SQLite database.
type SQLiteChecklistRepo struct {
	db db.DBTX
}

func NewSQLiteChecklistRepo(conn db.DBTX) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{db: conn}
}

const checklistColumns = `id, service_id, title, weight, progress, order_index, updated_at`

func (r *SQLiteChecklistRepo) Upsert(ctx context.Context, item *domain.ChecklistItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO checklist_items (`+checklistColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(service_id, id) DO UPDATE SET
			title = excluded.title,
			weight = excluded.weight,
			progress = excluded.progress,
			order_index = excluded.order_index,
			updated_at = excluded.updated_at`,
		item.ID,
		item.ServiceID,
		item.Title,
		item.Weight,
		item.Progress,
		item.OrderIndex,
		formatRFC3339(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) Get(ctx context.Context, serviceID, itemID string) (*domain.ChecklistItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+checklistColumns+` FROM checklist_items WHERE service_id = ? AND id = ?`,
		serviceID, itemID,
	)
	item, err := scanChecklistItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("checklist item %s/%s: %w", serviceID, itemID, ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteChecklistRepo) ListByService(ctx context.Context, serviceID string) ([]domain.ChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+checklistColumns+` FROM checklist_items WHERE service_id = ? ORDER BY order_index, id`,
		serviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	var out []domain.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return out, nil
}

func scanChecklistItem(s scanner) (domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	var updatedAt string
	err := s.Scan(&item.ID, &item.ServiceID, &item.Title, &item.Weight, &item.Progress, &item.OrderIndex, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("scanning checklist item: %w", err)
	}
	item.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	return item, err
}
