package model

import "time"

// User represents a campus account.  Authentication is mock-grade by
// design: accounts live in memory and are seeded from fixture data,
// but passwords are still stored as bcrypt hashes so the auth flow
// behaves like the real thing.
//
// Fields:
//  ID           – numeric identifier of the user.
//  Email        – unique email address (lower-cased).
//  PasswordHash – bcrypt hashed password.
//  Name         – display name.
//  Role         – STUDENT, FACULTY or ADMIN.
//  Interests    – category labels used for event recommendations.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Interests    []string  `json:"interests,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles recognised by the role middleware.
const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

// RefreshToken models a stored refresh token.  Only the SHA-256 hash
// of the raw token value is kept.
//
// Fields:
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
