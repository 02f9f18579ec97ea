package repository

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/utils"
)

// ErrEmailExists is returned when a signup reuses an email address.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepo is the in-memory user directory. It backs the mock
// authentication flow: accounts are seeded from fixture data and new
// signups live only for the lifetime of the process, but passwords
// are bcrypt-hashed and verified the way a real directory would.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[int64]*model.User
	byEmail map[string]int64
	nextID  int64
}

// NewUserRepo returns an empty user directory.
func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[int64]*model.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

// Create registers a new account and returns its ID. The email is
// normalised to lower case and must be unique.
func (r *UserRepo) Create(email, password, name, role string, bcryptCost int) (int64, error) {
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return 0, ErrEmailExists
	}
	id := r.nextID
	r.nextID++
	r.byID[id] = &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	r.byEmail[email] = id
	return id, nil
}

// Restore inserts a pre-built user as-is. Used by the fixture loader,
// which carries its own IDs and already-hashed passwords.
func (r *UserRepo) Restore(u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return ErrEmailExists
	}
	stored := u
	stored.Email = email
	r.byID[u.ID] = &stored
	r.byEmail[email] = u.ID
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	return nil
}

// GetByEmail returns a copy of the user with the given email.
func (r *UserRepo) GetByEmail(email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

// GetByID returns a copy of the user with the given ID.
func (r *UserRepo) GetByID(id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
