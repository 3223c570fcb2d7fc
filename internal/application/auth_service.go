package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/commercekit/auth-service/config"
	"github.com/commercekit/auth-service/internal/domain/entity"
	"github.com/commercekit/auth-service/internal/domain/repository"
	"github.com/commercekit/auth-service/pkg/helpers"
	"github.com/commercekit/auth-service/pkg/mailer"
	tpl "github.com/commercekit/auth-service/pkg/mailer/templates"
)

// Sentinel errors let callers pick a status code while keeping user-facing
// messages generic. Handlers must never surface which check failed.
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrVerificationFailed = errors.New("email verification failed")
	ErrResetFailed        = errors.New("reset password failed")
)

// Service orchestrates the authentication lifecycle:
// register -> verify-email -> login -> refresh -> logout -> forgot/reset.
type Service struct {
	Users    repository.UserRepository
	Sessions repository.SessionTokenRepository
	JWT      *helpers.JWTManager
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	Cfg      *config.Config
}

func NewService(users repository.UserRepository, sessions repository.SessionTokenRepository,
	jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, cfg *config.Config) *Service {
	return &Service{Users: users, Sessions: sessions, JWT: jwt, Pub: pub, Logger: logger, Cfg: cfg}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
}

// NormalizeEmail lowercases and trims an email address; every lookup and
// insert goes through this so the unique index sees one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified user and enqueues a verification email.
// The first user ever created gets the admin role (decided atomically in the
// repository). Email delivery is fire-and-forget: a publish failure is logged
// and never rolls back the created user.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	email := NormalizeEmail(in.Email)

	verificationToken, err := helpers.GenerateToken()
	if err != nil {
		return err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}

	u := &entity.User{
		Name:              in.Name,
		Email:             email,
		Password:          hash,
		VerificationToken: verificationToken,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailAlreadyExists
		}
		return err
	}

	verifyURL := s.Cfg.FrontendURL + "/user/verify-email?token=" + verificationToken +
		"&email=" + url.QueryEscape(email)
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       email,
		Template: tpl.VerifyEmail,
		Data: map[string]any{
			"Name":      u.Name,
			"VerifyURL": verifyURL,
		},
	})

	return nil
}

// VerifyEmail flips the user to verified when the supplied token matches the
// stored one exactly. A second call after success fails: the stored token is
// already cleared and an empty token never matches.
func (s *Service) VerifyEmail(ctx context.Context, email, token string) error {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return ErrVerificationFailed
	}
	if token == "" || u.VerificationToken != token {
		return ErrVerificationFailed
	}
	return s.Users.MarkVerified(ctx, u.ID)
}

// Login validates credentials in a fixed order (existence, password,
// verified) so observable behavior stays uniform, then reuses the existing
// refresh session when one is still valid, or creates one on first login.
func (s *Service) Login(ctx context.Context, in LoginInput) (helpers.TokenUser, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return helpers.TokenUser{}, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.ComparePassword(u.Password, in.Password) {
		return helpers.TokenUser{}, TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return helpers.TokenUser{}, TokenPair{}, ErrEmailNotVerified
	}

	refreshToken, err := s.resolveRefreshToken(ctx, u.ID, in)
	if err != nil {
		return helpers.TokenUser{}, TokenPair{}, err
	}

	tu := helpers.TokenUser{UserID: u.ID, Name: u.Name, Role: u.Role.String()}
	pair, err := s.mintPair(tu, refreshToken)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return helpers.TokenUser{}, TokenPair{}, err
	}
	return tu, pair, nil
}

// resolveRefreshToken returns the opaque refresh-token string for the user:
// the existing one when the session is still valid, a freshly minted one when
// no session exists. A revoked session fails the login outright and is never
// reactivated.
func (s *Service) resolveRefreshToken(ctx context.Context, userID string, in LoginInput) (string, error) {
	existing, err := s.Sessions.GetByUserID(ctx, userID)
	if err == nil {
		if !existing.IsValid {
			return "", ErrInvalidCredentials
		}
		return existing.RefreshToken, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	refreshToken, err := helpers.GenerateToken()
	if err != nil {
		return "", err
	}
	token := &entity.SessionToken{
		UserID:       userID,
		RefreshToken: refreshToken,
		IP:           in.IP,
		UserAgent:    in.UserAgent,
		IsValid:      true,
	}
	err = s.Sessions.Create(ctx, token)
	if errors.Is(err, repository.ErrDuplicate) {
		// Concurrent first logins race to insert; the unique constraint on
		// user_id picks a winner and the loser reuses the winner's session.
		existing, rerr := s.Sessions.GetByUserID(ctx, userID)
		if rerr != nil {
			return "", rerr
		}
		if !existing.IsValid {
			return "", ErrInvalidCredentials
		}
		return existing.RefreshToken, nil
	}
	if err != nil {
		return "", err
	}
	return refreshToken, nil
}

// MintPair generates a fresh access/refresh JWT pair for an authenticated
// user, wrapping the opaque refresh-token string. Used by login and by the
// sliding renewal in the authentication middleware.
func (s *Service) MintPair(u helpers.TokenUser, refreshToken string) (TokenPair, error) {
	return s.mintPair(u, refreshToken)
}

func (s *Service) mintPair(u helpers.TokenUser, refreshToken string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// Logout drops the user's refresh session. Calling it without an active
// session is not an error.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.Sessions.DeleteByUserID(ctx, userID)
}

// ForgetPassword mints a reset token for a known email and stores only its
// hash with a short expiry, superseding any previous token. Unknown emails
// return nil so the response is indistinguishable from the success path.
func (s *Service) ForgetPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	resetToken, err := helpers.GenerateToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.Cfg.ResetTokenTTL)
	if err := s.Users.SetResetToken(ctx, u.ID, helpers.HashToken(resetToken), expiresAt); err != nil {
		return err
	}

	resetURL := s.Cfg.FrontendURL + "/user/reset-password?token=" + resetToken +
		"&email=" + url.QueryEscape(email)
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       email,
		Template: tpl.ResetPassword,
		Data: map[string]any{
			"Name":      u.Name,
			"ResetURL":  resetURL,
			"ExpiresIn": s.Cfg.ResetTokenTTL.String(),
		},
	})

	return nil
}

// ResetPassword fails closed: missing user, wrong token and expired token all
// collapse into the same error so callers cannot distinguish them. On success
// the new password is hashed and the token state cleared, making the token
// non-replayable.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return ErrResetFailed
	}
	if u.PasswordTokenHash == "" || u.PasswordTokenHash != helpers.HashToken(token) {
		return ErrResetFailed
	}
	if u.PasswordTokenExpiresAt == nil || !u.PasswordTokenExpiresAt.After(time.Now()) {
		return ErrResetFailed
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, u.ID, hash)
}

// enqueueEmail hands the job to RabbitMQ best-effort. There is no retry and
// no compensating rollback; delivery is at-most-once.
func (s *Service) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to enqueue email job")
	}
}
