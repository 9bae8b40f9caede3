package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vecino/internal/domain"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO alerts (id, user_id, title, content, is_read, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, n := range notifications {
		batch.Queue(query, n.ID, n.UserID, n.Title, n.Content, n.IsRead, n.ReferenceID, n.CreatedAt)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *NotificationRepo) UpdateByReference(ctx context.Context, referenceID uuid.UUID, content string) error {
	_, err := r.pool.Exec(ctx, `UPDATE alerts SET content = $1 WHERE reference_id = $2`, content, referenceID)
	return err
}

func (r *NotificationRepo) DeleteByReference(ctx context.Context, referenceID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM alerts WHERE reference_id = $1`, referenceID)
	return err
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	query := `SELECT id, user_id, title, content, is_read, reference_id, created_at
		FROM alerts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.IsRead, &n.ReferenceID, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := `SELECT id, user_id, title, content, is_read, reference_id, created_at
		FROM alerts WHERE id = $1`
	var n domain.Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.IsRead, &n.ReferenceID, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &n, err
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE alerts SET is_read = true WHERE id = $1`, id)
	return err
}
