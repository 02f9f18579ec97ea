package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/univents/campus-events/internal/model"
)

// ErrTokenInvalid is returned when a refresh token is unknown,
// revoked or expired. The three cases are deliberately collapsed so
// the auth handler leaks nothing about why a token was rejected.
var ErrTokenInvalid = errors.New("invalid refresh token")

// TokenRepo stores refresh-token hashes in memory. Sessions therefore
// do not survive a restart, which is acceptable for mock auth; the
// store still enforces expiry and single-use rotation like a real
// one.
type TokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken // keyed by token hash
}

// NewTokenRepo returns an empty token store.
func NewTokenRepo() *TokenRepo {
	return &TokenRepo{tokens: make(map[string]*model.RefreshToken)}
}

// StoreRefresh saves a refresh-token hash for a user.
func (r *TokenRepo) StoreRefresh(userID int64, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[tokenHash] = &model.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// Lookup returns the owning user of a live refresh token hash.
func (r *TokenRepo) Lookup(tokenHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok || t.RevokedAt != nil || time.Now().UTC().After(t.ExpiresAt) {
		return 0, ErrTokenInvalid
	}
	return t.UserID, nil
}

// Revoke marks a refresh token hash as revoked. Revoking an unknown
// or already-revoked hash returns ErrTokenInvalid.
func (r *TokenRepo) Revoke(tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok || t.RevokedAt != nil {
		return ErrTokenInvalid
	}
	now := time.Now().UTC()
	t.RevokedAt = &now
	return nil
}
