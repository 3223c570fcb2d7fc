package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in Password.
//
// Exactly one of {unverified + VerificationToken set} or
// {verified + VerificationToken empty} holds at any time. The password reset
// token is persisted only as a SHA-256 hash and is cleared once consumed or
// superseded.
type User struct {
	ID                     string
	Name                   string
	Email                  string
	Password               string
	Role                   Role
	IsVerified             bool
	VerificationToken      string
	VerifiedAt             *time.Time
	PasswordTokenHash      string
	PasswordTokenExpiresAt *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
