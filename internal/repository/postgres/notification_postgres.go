package postgres

import (
	"context"
	"database/sql"

	"coursedocs/internal/model"
	"coursedocs/internal/repository"
)

// NotificationPostgres stores audience notifications; delivery is someone else's job.
type NotificationPostgres struct {
	db *sql.DB
}

func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.Notifier = (*NotificationPostgres)(nil)

func (r *NotificationPostgres) Notify(ctx context.Context, audience model.Audience, message string) error {
	const q = `INSERT INTO notifications (audience, message) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, q, string(audience), message)
	return err
}
