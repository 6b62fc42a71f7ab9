package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"itemhub/internal/models"
)

func TestActivityService_List_NormalizesFilter(t *testing.T) {
	repo := &mockActivityRepo{
		listResp: []models.ActivityEvent{{EventID: "ev-1", UserID: 3, Type: models.ActivityLogin}},
	}
	svc := NewActivityService(repo)

	loc := time.FixedZone("UTC+5", 5*3600)
	from := time.Date(2026, 8, 1, 12, 0, 0, 0, loc)
	to := time.Date(2026, 8, 31, 12, 0, 0, 0, loc)

	events, err := svc.List(context.Background(), 3, ActivityFilter{
		From: from,
		To:   to,
		Type: " login ",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if repo.lastFrom.Location() != time.UTC || repo.lastTo.Location() != time.UTC {
		t.Fatalf("expected UTC-normalized bounds, got %v / %v", repo.lastFrom, repo.lastTo)
	}
	if repo.lastType != "LOGIN" {
		t.Fatalf("expected normalized type LOGIN, got %q", repo.lastType)
	}
}

func TestActivityService_List_InvalidRange(t *testing.T) {
	svc := NewActivityService(&mockActivityRepo{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), 3, ActivityFilter{From: from, To: to})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
}

func TestRetentionService_RunPrunesImmediatelyAndStopsOnCancel(t *testing.T) {
	repo := &mockActivityRepo{}
	svc := NewRetentionService(repo, 24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(ctx, time.Minute)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	if len(repo.prunedBefore) != 1 {
		t.Fatalf("expected exactly one startup prune, got %d", len(repo.prunedBefore))
	}
	cutoff := repo.prunedBefore[0]
	if age := time.Since(cutoff); age < 23*time.Hour || age > 25*time.Hour {
		t.Fatalf("cutoff %v not ~24h in the past", cutoff)
	}
}

func TestNewRetentionService_DefaultWindow(t *testing.T) {
	svc := NewRetentionService(&mockActivityRepo{}, 0)
	if svc.retention != DefaultActivityRetention {
		t.Fatalf("expected default retention %v, got %v", DefaultActivityRetention, svc.retention)
	}
}
