// Package users keeps the in-memory list of registered accounts.
package users

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// User is a registered account. The stored credential never leaves the
// directory.
type User struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"userId"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Age        int       `json:"age,omitempty"`
	Gender     string    `json:"gender,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}

// RegisterInput carries the profile fields accepted at signup.
type RegisterInput struct {
	FullName string
	Email    string
	Age      int
	Gender   string
	Password string
}

type account struct {
	User
	credential string
}

// Directory is an append-only, process-local user list. It is safe for
// concurrent use.
type Directory struct {
	mu         sync.RWMutex
	accounts   []*account
	byEmail    map[string]*account
	hasher     CredentialHasher
	now        func() time.Time
	lastUserID int64
}

// NewDirectory creates an empty Directory that stores credentials through
// hasher.
func NewDirectory(hasher CredentialHasher) *Directory {
	return &Directory{
		byEmail: make(map[string]*account),
		hasher:  hasher,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register adds a new account. A second registration with the same email
// fails with ErrEmailTaken.
func (d *Directory) Register(in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return User{}, ErrMissingCredentials
	}

	credential, err := d.hasher.Hash(in.Password)
	if errors.Is(err, ErrPasswordTooLong) {
		return User{}, ErrPasswordTooLong
	}
	if err != nil {
		return User{}, fmt.Errorf("hash credential: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[email]; exists {
		return User{}, ErrEmailTaken
	}

	now := d.now().UTC()
	acc := &account{
		User: User{
			ID:         "user_" + uuid.NewString(),
			UserID:     d.nextUserID(now),
			FullName:   strings.TrimSpace(in.FullName),
			Email:      email,
			Age:        in.Age,
			Gender:     in.Gender,
			CreatedAt:  now,
			LastActive: now,
		},
		credential: credential,
	}
	d.accounts = append(d.accounts, acc)
	d.byEmail[email] = acc
	return acc.User, nil
}

// nextUserID hands out millisecond timestamps, bumped when two signups land
// in the same millisecond.
func (d *Directory) nextUserID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= d.lastUserID {
		id = d.lastUserID + 1
	}
	d.lastUserID = id
	return id
}

// Login checks the credential for email and refreshes LastActive on success.
func (d *Directory) Login(email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrMissingCredentials
	}

	d.mu.RLock()
	acc, ok := d.byEmail[email]
	d.mu.RUnlock()
	if !ok {
		return User{}, ErrUserNotFound
	}

	if err := d.hasher.Verify(acc.credential, password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return User{}, ErrInvalidPassword
		}
		return User{}, fmt.Errorf("verify credential: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if now := d.now().UTC(); now.After(acc.LastActive) {
		acc.LastActive = now
	}
	return acc.User, nil
}

// List returns every account in registration order.
func (d *Directory) List() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]User, 0, len(d.accounts))
	for _, acc := range d.accounts {
		out = append(out, acc.User)
	}
	return out
}

// Count returns the number of registered accounts.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}
