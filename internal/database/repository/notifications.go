package repository

import (
	"context"
	"database/sql"
)

// NotificationRepo handles the notification inbox.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Insert(ctx context.Context, n Notification) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO notifications(id, session_id, title, body, created_at)
	VALUES (?, ?, ?, ?, ?);
	`, n.ID, n.SessionID, n.Title, n.Body, n.CreatedAt)
	return err
}

// List returns the newest notifications first. limit <= 0 means no limit.
func (r *NotificationRepo) List(ctx context.Context, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, title, body, created_at
	FROM notifications
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.SessionID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Clear deletes every notification and returns how many were removed.
func (r *NotificationRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	_, _ = r.db.ExecContext(ctx, "VACUUM")
	return n, nil
}

// CountBySession returns how many notifications a session has received.
func (r *NotificationRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}
