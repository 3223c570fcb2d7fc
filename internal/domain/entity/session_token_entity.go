package entity

import "time"

// SessionToken binds an opaque refresh-token string to a user together with
// the issuing client metadata. IsValid=false permanently revokes the session;
// a revoked token is never reissued or reactivated.
type SessionToken struct {
	ID           string
	UserID       string
	RefreshToken string
	IP           string
	UserAgent    string
	IsValid      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
