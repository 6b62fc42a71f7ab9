package service

import (
	"context"
	"time"

	"itemhub/internal/models"
	"itemhub/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
	Authenticate(accessToken string) (*models.User, error)
}

// Items exposes owner-scoped CRUD. Get/Update/Delete enforce that the
// requester is the item's owner.
type Items interface {
	List(ctx context.Context, ownerID int) ([]models.Item, error)
	Create(ctx context.Context, ownerID int, name string) (models.Item, error)
	Get(ctx context.Context, id, requesterID int) (models.Item, error)
	Update(ctx context.Context, id, requesterID int, name string) (models.Item, error)
	Delete(ctx context.Context, id, requesterID int) error
}

// Activity exposes a user's own event history with filtering access.
type Activity interface {
	List(ctx context.Context, userID int, f ActivityFilter) ([]models.ActivityEvent, error)
}

// Retention runs the background loop that ages out old activity events.
// Stop via context cancellation in main() for graceful shutdown.
type Retention interface {
	Run(ctx context.Context, tick time.Duration)
}

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "REGISTER", "LOGIN", "ITEM_CREATE", "ITEM_UPDATE", "ITEM_DELETE"
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Items
	Activity
	Retention
}

// Config carries the tunables the services need from the process config.
type Config struct {
	SigningKey        string
	ActivityRetention time.Duration
}

func NewService(repos *repository.Repository, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Activity, cfg.SigningKey),
		Items:         NewItemService(repos.Items, repos.Activity),
		Activity:      NewActivityService(repos.Activity),
		Retention:     NewRetentionService(repos.Activity, cfg.ActivityRetention),
	}
}
