package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vecino/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

const messageSelect = `
	SELECT m.id, m.channel_id, m.sender_id, m.content, m.is_edited, m.updated_at, m.created_at,
		u.username, u.avatar_url, u.created_at
	FROM messages m
	JOIN profiles u ON m.sender_id = u.id`

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, channel_id, sender_id, content, is_edited, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.ChannelID, msg.SenderID, msg.Content, msg.IsEdited, msg.CreatedAt,
	)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return r.scanMessage(ctx, messageSelect+` WHERE m.id = $1`, id)
}

func (r *MessageRepo) GetInChannel(ctx context.Context, id, channelID uuid.UUID) (*domain.Message, error) {
	return r.scanMessage(ctx, messageSelect+` WHERE m.id = $1 AND m.channel_id = $2`, id, channelID)
}

func (r *MessageRepo) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]domain.Message, error) {
	query := messageSelect + ` WHERE m.channel_id = $1 ORDER BY m.created_at`

	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.ChannelID, &msg.SenderID, &msg.Content, &msg.IsEdited,
			&msg.UpdatedAt, &msg.CreatedAt,
			&msg.SenderUsername, &msg.SenderAvatarURL, &msg.SenderJoinedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepo) Update(ctx context.Context, msg *domain.Message) error {
	query := `UPDATE messages SET content = $1, is_edited = $2, updated_at = $3 WHERE id = $4`
	_, err := r.pool.Exec(ctx, query, msg.Content, msg.IsEdited, msg.UpdatedAt, msg.ID)
	return err
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

func (r *MessageRepo) scanMessage(ctx context.Context, query string, args ...any) (*domain.Message, error) {
	var msg domain.Message
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&msg.ID, &msg.ChannelID, &msg.SenderID, &msg.Content, &msg.IsEdited,
		&msg.UpdatedAt, &msg.CreatedAt,
		&msg.SenderUsername, &msg.SenderAvatarURL, &msg.SenderJoinedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &msg, err
}
