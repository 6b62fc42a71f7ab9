package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"itemhub/internal/models"

	"github.com/google/uuid"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var _ Activity = (*ActivityRepository)(nil)

const sqliteTimestampLayout = "2006-01-02 15:04:05"

// Append inserts a new activity event. If EventID or OccurredAt are empty, they're set.
func (r *ActivityRepository) Append(ctx context.Context, e models.ActivityEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	// marshal metadata if present
	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_events (id, user_id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.UserID,
		e.OccurredAt.Format(sqliteTimestampLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		metaPtr,
	)

	return err
}

// ListByUser returns the user's events filtered by [from, to] (inclusive)
// and/or type, ordered ASC by occurrence time.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	// Bounds must use the same layout Append stores, or the TEXT
	// comparison silently drops boundary rows.
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestampLayout))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, user_id, occurred_at, type, message, meta FROM activity_events WHERE ` +
		strings.Join(conds, " AND ") + " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ActivityEvent, 0, 64)
	for rows.Next() {
		var ev models.ActivityEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.UserID, &ev.OccurredAt, &ev.Type, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Prune deletes events that occurred strictly before the cutoff and
// reports how many rows were removed.
func (r *ActivityRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_events WHERE occurred_at < ?`,
		before.UTC().Format(sqliteTimestampLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
