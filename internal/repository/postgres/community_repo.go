package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vecino/internal/domain"
)

type CommunityRepo struct {
	pool *pgxpool.Pool
}

func NewCommunityRepo(pool *pgxpool.Pool) *CommunityRepo {
	return &CommunityRepo{pool: pool}
}

func (r *CommunityRepo) Create(ctx context.Context, c *domain.Community) error {
	query := `INSERT INTO communities (id, name, address, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Name, c.Address, c.CreatedAt)
	return err
}

func (r *CommunityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Community, error) {
	query := `SELECT id, name, address, created_at FROM communities WHERE id = $1`
	var c domain.Community
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &c, err
}

func (r *CommunityRepo) AddMember(ctx context.Context, m *domain.CommunityMember) error {
	query := `INSERT INTO community_members (community_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, m.CommunityID, m.UserID, m.Role, m.JoinedAt)
	return err
}

func (r *CommunityRepo) GetMember(ctx context.Context, communityID, userID uuid.UUID) (*domain.CommunityMember, error) {
	query := `SELECT community_id, user_id, role, joined_at FROM community_members
		WHERE community_id = $1 AND user_id = $2`
	var m domain.CommunityMember
	err := r.pool.QueryRow(ctx, query, communityID, userID).Scan(&m.CommunityID, &m.UserID, &m.Role, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &m, err
}
