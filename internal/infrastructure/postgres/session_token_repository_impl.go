package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/commercekit/auth-service/internal/domain/entity"
	"github.com/commercekit/auth-service/internal/domain/repository"
)

type SessionTokenRepository struct {
	pool *pgxpool.Pool
}

func NewSessionTokenRepository(pool *pgxpool.Pool) *SessionTokenRepository {
	return &SessionTokenRepository{pool: pool}
}

func (r *SessionTokenRepository) Create(ctx context.Context, t *entity.SessionToken) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO session_tokens (user_id, refresh_token, ip, user_agent, is_valid)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.RefreshToken, t.IP, t.UserAgent, t.IsValid)

	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

const sessionColumns = `
	id, user_id, refresh_token, ip, user_agent, is_valid, created_at, updated_at`

func scanSession(row pgx.Row) (*entity.SessionToken, error) {
	t := &entity.SessionToken{}
	if err := row.Scan(&t.ID, &t.UserID, &t.RefreshToken, &t.IP, &t.UserAgent,
		&t.IsValid, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *SessionTokenRepository) GetByUserID(ctx context.Context, userID string) (*entity.SessionToken, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+sessionColumns+` FROM session_tokens WHERE user_id = $1`, userID)
	return scanSession(row)
}

func (r *SessionTokenRepository) GetByUserAndToken(ctx context.Context, userID, refreshToken string) (*entity.SessionToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+sessionColumns+`
		FROM session_tokens
		WHERE user_id = $1 AND refresh_token = $2
	`, userID, refreshToken)
	return scanSession(row)
}

func (r *SessionTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM session_tokens WHERE user_id = $1`, userID)
	return err
}

var _ repository.SessionTokenRepository = (*SessionTokenRepository)(nil)
