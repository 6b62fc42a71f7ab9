package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"itemhub/internal/models"
	"itemhub/internal/repository"
)

type ActivityService struct {
	activity repository.Activity
}

func NewActivityService(activity repository.Activity) *ActivityService {
	return &ActivityService{activity: activity}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeEventType(f.Type), nil
}

// List returns the user's own activity events matching the filter.
func (s *ActivityService) List(ctx context.Context, userID int, f ActivityFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.activity.ListByUser(ctx, userID, from, to, typ)
}
