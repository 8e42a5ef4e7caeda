package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStorage            = errors.New("user storage failure")
)

const TokenTTL = 12 * time.Hour

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Store persists the user list. Load returns a nil slice when nothing has
// ever been saved.
type Store interface {
	LoadUsers(ctx context.Context) ([]User, error)
	SaveUsers(ctx context.Context, users []User) error
}

// Service answers login attempts against the persisted user list. This is
// the dashboard's demo login, not a hardened authentication system: a small
// fixed user set, bcrypt hashes, bearer tokens.
type Service struct {
	mu     sync.Mutex
	store  Store
	users  []User
	secret string
}

func NewService(ctx context.Context, store Store, secret string, seed []User) (*Service, error) {
	users, err := store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	if users == nil && len(seed) > 0 {
		users = make([]User, len(seed))
		copy(users, seed)
		if err := store.SaveUsers(ctx, users); err != nil {
			return nil, fmt.Errorf("%w: seed: %v", ErrStorage, err)
		}
	}
	return &Service{store: store, users: users, secret: secret}, nil
}

// Login checks credentials and returns a signed session token plus the
// public user fields.
func (s *Service) Login(email, password string) (string, User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email != email {
			continue
		}
		if err := CheckPassword(user.PasswordHash, password); err != nil {
			return "", User{}, ErrInvalidCredentials
		}
		token, err := GenerateToken(s.secret, Claims{
			UserID: user.ID,
			Name:   user.Name,
			Role:   user.Role,
		}, TokenTTL)
		if err != nil {
			return "", User{}, err
		}
		user.PasswordHash = ""
		return token, user, nil
	}
	return "", User{}, ErrInvalidCredentials
}

func (s *Service) Secret() string {
	return s.secret
}
