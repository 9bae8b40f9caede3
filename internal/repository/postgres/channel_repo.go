package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vecino/internal/domain"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

const channelColumns = "id, community_id, name, is_direct_message, is_blocked, blocked_by, created_at"

func (r *ChannelRepo) Create(ctx context.Context, ch *domain.Channel) error {
	query := `
		INSERT INTO chat_channels (id, community_id, name, is_direct_message, is_blocked, blocked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		ch.ID, ch.CommunityID, ch.Name, ch.IsDirectMessage, ch.IsBlocked, ch.BlockedBy, ch.CreatedAt,
	)
	return err
}

func (r *ChannelRepo) CreateWithParticipants(ctx context.Context, ch *domain.Channel, userIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO chat_channels (id, community_id, name, is_direct_message, is_blocked, blocked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.Exec(ctx, query,
		ch.ID, ch.CommunityID, ch.Name, ch.IsDirectMessage, ch.IsBlocked, ch.BlockedBy, ch.CreatedAt,
	); err != nil {
		return err
	}

	for _, userID := range userIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO channel_participants (channel_id, user_id, joined_at) VALUES ($1, $2, $3)`,
			ch.ID, userID, ch.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ChannelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM chat_channels WHERE id = $1`
	var ch domain.Channel
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ch.ID, &ch.CommunityID, &ch.Name, &ch.IsDirectMessage, &ch.IsBlocked, &ch.BlockedBy, &ch.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &ch, err
}

// GetDefaultChannel returns the oldest non-DM channel of a community, the one
// provisioned at community creation.
func (r *ChannelRepo) GetDefaultChannel(ctx context.Context, communityID uuid.UUID) (*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM chat_channels
		WHERE community_id = $1 AND is_direct_message = false
		ORDER BY created_at LIMIT 1`
	var ch domain.Channel
	err := r.pool.QueryRow(ctx, query, communityID).Scan(
		&ch.ID, &ch.CommunityID, &ch.Name, &ch.IsDirectMessage, &ch.IsBlocked, &ch.BlockedBy, &ch.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &ch, err
}

func (r *ChannelRepo) Update(ctx context.Context, ch *domain.Channel) error {
	query := `UPDATE chat_channels SET name = $1, is_blocked = $2, blocked_by = $3 WHERE id = $4`
	_, err := r.pool.Exec(ctx, query, ch.Name, ch.IsBlocked, ch.BlockedBy, ch.ID)
	return err
}

func (r *ChannelRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Channel, error) {
	if len(ids) == 0 {
		return []domain.Channel{}, nil
	}

	query := `SELECT ` + channelColumns + ` FROM chat_channels WHERE id = ANY($1) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []domain.Channel
	for rows.Next() {
		var ch domain.Channel
		if err := rows.Scan(&ch.ID, &ch.CommunityID, &ch.Name, &ch.IsDirectMessage,
			&ch.IsBlocked, &ch.BlockedBy, &ch.CreatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

func (r *ChannelRepo) ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT channel_id FROM channel_participants WHERE user_id = $1 ORDER BY joined_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ChannelRepo) AddParticipant(ctx context.Context, p *domain.ChannelParticipant) error {
	query := `INSERT INTO channel_participants (channel_id, user_id, joined_at) VALUES ($1, $2, $3)
		ON CONFLICT (channel_id, user_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, p.ChannelID, p.UserID, p.JoinedAt)
	return err
}

func (r *ChannelRepo) GetParticipant(ctx context.Context, channelID, userID uuid.UUID) (*domain.ChannelParticipant, error) {
	query := `SELECT channel_id, user_id, joined_at FROM channel_participants
		WHERE channel_id = $1 AND user_id = $2`
	var p domain.ChannelParticipant
	err := r.pool.QueryRow(ctx, query, channelID, userID).Scan(&p.ChannelID, &p.UserID, &p.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &p, err
}

func (r *ChannelRepo) ListParticipants(ctx context.Context, channelID uuid.UUID) ([]domain.ChannelParticipant, error) {
	query := `SELECT channel_id, user_id, joined_at FROM channel_participants
		WHERE channel_id = $1 ORDER BY joined_at`
	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []domain.ChannelParticipant
	for rows.Next() {
		var p domain.ChannelParticipant
		if err := rows.Scan(&p.ChannelID, &p.UserID, &p.JoinedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
