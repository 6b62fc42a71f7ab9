package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itemhub/internal/models"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

var _ Items = (*ItemRepository)(nil)

const (
	insertItemSQL      = `INSERT INTO items (name, owner_id) VALUES (?, ?)`
	selectItemByIDSQL  = `SELECT id, name, owner_id FROM items WHERE id = ?`
	selectItemsByOwner = `SELECT id, name, owner_id FROM items WHERE owner_id = ?`
	updateItemNameSQL  = `UPDATE items SET name = ? WHERE id = ?`
	deleteItemByIDSQL  = `DELETE FROM items WHERE id = ?`
)

// Create inserts a new item for the given owner and returns it with its assigned ID.
func (r *ItemRepository) Create(ctx context.Context, name string, ownerID int) (models.Item, error) {
	res, err := r.db.ExecContext(ctx, insertItemSQL, name, ownerID)
	if err != nil {
		return models.Item{}, fmt.Errorf("insert item for owner %d: %w", ownerID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Item{}, fmt.Errorf("get last insert id for item: %w", err)
	}
	return models.Item{ID: int(lastID), Name: name, OwnerID: ownerID}, nil
}

// GetByID fetches an item by id. Returns (nil, nil) if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	var it models.Item
	err := r.db.QueryRowContext(ctx, selectItemByIDSQL, id).Scan(&it.ID, &it.Name, &it.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select item %d: %w", id, err)
	}
	return &it, nil
}

// ListByOwner returns all items belonging to ownerID. Never returns nil on success.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, selectItemsByOwner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select items for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Item, 0, 16)
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.OwnerID); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}
	return out, nil
}

// UpdateName sets a new name on an existing item.
func (r *ItemRepository) UpdateName(ctx context.Context, id int, name string) error {
	res, err := r.db.ExecContext(ctx, updateItemNameSQL, name, id)
	if err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for item %d update: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an item by id.
func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteItemByIDSQL, id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for item %d delete: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
