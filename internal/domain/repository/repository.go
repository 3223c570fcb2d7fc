package repository

import (
	"context"
	"errors"
	"time"

	"github.com/commercekit/auth-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned by point lookups that match no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	// (users.email, session_tokens.user_id, session_tokens.refresh_token).
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the persistence contract for the credential store.
type UserRepository interface {
	// Create inserts the user and assigns role inside the same transaction:
	// the first user ever created becomes admin, everyone after is a user.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// MarkVerified sets is_verified, stamps verified_at and clears the
	// verification token in one update.
	MarkVerified(ctx context.Context, id string) error
	// SetResetToken stores the hash of a freshly minted reset token together
	// with its expiry, superseding any previous token.
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	// UpdatePassword sets a new password hash and clears the reset token
	// state in one update.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SessionTokenRepository defines the persistence contract for refresh
// sessions. All operations are point lookups keyed by user id.
type SessionTokenRepository interface {
	Create(ctx context.Context, t *entity.SessionToken) error
	GetByUserID(ctx context.Context, userID string) (*entity.SessionToken, error)
	GetByUserAndToken(ctx context.Context, userID, refreshToken string) (*entity.SessionToken, error)
	// DeleteByUserID removes the session for the user. Deleting a missing
	// session is not an error (logout is idempotent).
	DeleteByUserID(ctx context.Context, userID string) error
}
