package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"itemhub/internal/models"
	"itemhub/internal/repository"
)

// Domain errors for item flows.
var (
	ErrNameRequired = errors.New("name is required")
	ErrItemNotFound = errors.New("item not found")
	ErrNotOwner     = errors.New("not the item owner")
)

// ItemService enforces ownership on every per-item operation: the item is
// resolved first, then the requester is compared against the recorded owner.
type ItemService struct {
	items    repository.Items
	activity repository.Activity
}

func NewItemService(items repository.Items, activity repository.Activity) *ItemService {
	return &ItemService{items: items, activity: activity}
}

// List returns all items belonging to the owner.
func (s *ItemService) List(ctx context.Context, ownerID int) ([]models.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}

// Create validates the name and stores a new item owned by ownerID.
func (s *ItemService) Create(ctx context.Context, ownerID int, name string) (models.Item, error) {
	if strings.TrimSpace(name) == "" {
		return models.Item{}, ErrNameRequired
	}

	it, err := s.items.Create(ctx, name, ownerID)
	if err != nil {
		return models.Item{}, err
	}

	s.record(ctx, ownerID, models.ActivityItemCreate, fmt.Sprintf("created item %d", it.ID), it)
	return it, nil
}

// Get returns a single item if it exists and belongs to the requester.
func (s *ItemService) Get(ctx context.Context, id, requesterID int) (models.Item, error) {
	it, err := s.resolveOwned(ctx, id, requesterID)
	if err != nil {
		return models.Item{}, err
	}
	return *it, nil
}

// Update renames an item after the ownership check.
func (s *ItemService) Update(ctx context.Context, id, requesterID int, name string) (models.Item, error) {
	if strings.TrimSpace(name) == "" {
		return models.Item{}, ErrNameRequired
	}

	it, err := s.resolveOwned(ctx, id, requesterID)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.items.UpdateName(ctx, id, name); err != nil {
		return models.Item{}, err
	}
	it.Name = name

	s.record(ctx, requesterID, models.ActivityItemUpdate, fmt.Sprintf("updated item %d", id), it)
	return *it, nil
}

// Delete removes an item after the ownership check.
func (s *ItemService) Delete(ctx context.Context, id, requesterID int) error {
	it, err := s.resolveOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, requesterID, models.ActivityItemDelete, fmt.Sprintf("deleted item %d", id), it)
	return nil
}

// resolveOwned fetches the item and verifies ownership.
// Absent item wins over ownership: a requester probing foreign ids still
// sees ErrItemNotFound for ids that don't exist.
func (s *ItemService) resolveOwned(ctx context.Context, id, requesterID int) (*models.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	if it.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return it, nil
}

// record appends an activity event; best-effort, never fails the operation.
func (s *ItemService) record(ctx context.Context, userID int, typ, msg string, meta any) {
	_ = s.activity.Append(ctx, models.ActivityEvent{
		UserID:      userID,
		Type:        typ,
		Description: msg,
		Metadata:    meta,
	})
}
