package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/commercekit/auth-service/internal/domain/entity"
	"github.com/commercekit/auth-service/internal/domain/repository"
)

// newTestPool applies the real migrations and returns a clean pool, so any
// drift between the repository SQL and db/migrations fails here instead of
// in production. Set TEST_DATABASE_URL to run these.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../db/migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE session_tokens, users`)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_ = db.Close()
	})
	return pool
}

func mustCreateUser(t *testing.T, repo *UserRepository, email string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:              "Alice",
		Email:             email,
		Password:          "bcrypt-hash",
		VerificationToken: "verify-token",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	first := mustCreateUser(t, repo, "alice@example.com")
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, entity.RoleAdmin, first.Role)

	second := mustCreateUser(t, repo, "bob@example.com")
	assert.Equal(t, entity.RoleUser, second.Role)

	dup := &entity.User{Name: "Mallory", Email: "alice@example.com", Password: "x"}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "bcrypt-hash", got.Password)
	assert.Equal(t, "verify-token", got.VerificationToken)
	assert.False(t, got.IsVerified)

	byID, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, byID.Email)
}

func TestUserRepositoryVerifyAndReset(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	u := mustCreateUser(t, repo, "alice@example.com")

	require.NoError(t, repo.MarkVerified(ctx, u.ID))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Empty(t, got.VerificationToken)
	assert.NotNil(t, got.VerifiedAt)

	expiry := time.Now().Add(10 * time.Minute).UTC()
	require.NoError(t, repo.SetResetToken(ctx, u.ID, "reset-hash", expiry))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "reset-hash", got.PasswordTokenHash)
	require.NotNil(t, got.PasswordTokenExpiresAt)
	assert.WithinDuration(t, expiry, *got.PasswordTokenExpiresAt, time.Second)

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-bcrypt-hash"))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-bcrypt-hash", got.Password)
	assert.Empty(t, got.PasswordTokenHash)
	assert.Nil(t, got.PasswordTokenExpiresAt)
}

func TestUserRepositoryNotFound(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()
	missing := "00000000-0000-0000-0000-000000000000"

	_, err := repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.MarkVerified(ctx, missing), repository.ErrNotFound)
	assert.ErrorIs(t, repo.SetResetToken(ctx, missing, "h", time.Now()), repository.ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, missing, "h"), repository.ErrNotFound)
}

func TestSessionTokenRepositoryRoundTrip(t *testing.T) {
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	sessions := NewSessionTokenRepository(pool)
	ctx := context.Background()

	u := mustCreateUser(t, users, "alice@example.com")

	s := &entity.SessionToken{
		UserID:       u.ID,
		RefreshToken: "opaque-refresh-token",
		IP:           "203.0.113.9",
		UserAgent:    "integration-test",
		IsValid:      true,
	}
	require.NoError(t, sessions.Create(ctx, s))
	assert.NotEmpty(t, s.ID)

	got, err := sessions.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "opaque-refresh-token", got.RefreshToken)
	assert.Equal(t, "203.0.113.9", got.IP)
	assert.True(t, got.IsValid)

	got, err = sessions.GetByUserAndToken(ctx, u.ID, "opaque-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	_, err = sessions.GetByUserAndToken(ctx, u.ID, "wrong-token")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// user_id is unique: a second session for the same user must not slip in
	dup := &entity.SessionToken{UserID: u.ID, RefreshToken: "another-token", IsValid: true}
	assert.ErrorIs(t, sessions.Create(ctx, dup), repository.ErrDuplicate)

	require.NoError(t, sessions.DeleteByUserID(ctx, u.ID))
	_, err = sessions.GetByUserID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// delete stays idempotent
	require.NoError(t, sessions.DeleteByUserID(ctx, u.ID))
}
