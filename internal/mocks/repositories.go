// Package mocks provides in-memory repository implementations for tests.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/commercekit/auth-service/internal/domain/entity"
	"github.com/commercekit/auth-service/internal/domain/repository"
)

// MemoryUserRepository is a thread-safe in-memory credential store.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by id
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]*entity.User{}}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	role := entity.RoleUser
	if len(r.users) == 0 {
		role = entity.RoleAdmin
	}
	u.ID = uuid.NewString()
	u.Role = role
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemoryUserRepository) MarkVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	u.IsVerified = true
	u.VerifiedAt = &now
	u.VerificationToken = ""
	u.UpdatedAt = now
	return nil
}

func (r *MemoryUserRepository) SetResetToken(_ context.Context, id, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordTokenHash = tokenHash
	u.PasswordTokenExpiresAt = &expiresAt
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = passwordHash
	u.PasswordTokenHash = ""
	u.PasswordTokenExpiresAt = nil
	u.UpdatedAt = time.Now()
	return nil
}

// Count returns the number of stored users.
func (r *MemoryUserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

var _ repository.UserRepository = (*MemoryUserRepository)(nil)

// MemorySessionTokenRepository is a thread-safe in-memory session token
// store with the same single-session-per-user constraint as the SQL schema.
type MemorySessionTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*entity.SessionToken // keyed by user id
}

func NewMemorySessionTokenRepository() *MemorySessionTokenRepository {
	return &MemorySessionTokenRepository{tokens: map[string]*entity.SessionToken{}}
}

func (r *MemorySessionTokenRepository) Create(_ context.Context, t *entity.SessionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[t.UserID]; exists {
		return repository.ErrDuplicate
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.tokens[t.UserID] = &cp
	return nil
}

func (r *MemorySessionTokenRepository) GetByUserID(_ context.Context, userID string) (*entity.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MemorySessionTokenRepository) GetByUserAndToken(_ context.Context, userID, refreshToken string) (*entity.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[userID]
	if !ok || t.RefreshToken != refreshToken {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MemorySessionTokenRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, userID)
	return nil
}

// Revoke flips IsValid to false for the user's session, if any.
func (r *MemorySessionTokenRepository) Revoke(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[userID]; ok {
		t.IsValid = false
	}
}

// Count returns the number of stored sessions.
func (r *MemorySessionTokenRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

var _ repository.SessionTokenRepository = (*MemorySessionTokenRepository)(nil)
