package repository

import (
	"context"
	"database/sql"
	"time"

	"itemhub/internal/models"
	"itemhub/internal/repository/db"
)

type Users interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type Items interface {
	Create(ctx context.Context, name string, ownerID int) (models.Item, error)
	GetByID(ctx context.Context, id int) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error)
	UpdateName(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
}

type Activity interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	ListByUser(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

type Repository struct {
	Users    Users
	Items    Items
	Activity Activity
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(sqlDB),
		Items:    NewItemRepository(sqlDB),
		Activity: NewActivityRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
