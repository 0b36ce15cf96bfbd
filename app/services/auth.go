package services

import (
	"errors"

	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/auth"
	"github.com/vendralabs/vendra/pkg/logger"
)

// ErrInvalidCredentials covers both unknown-user and wrong-password so the
// API never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService registers operators and issues JWTs.
type AuthService struct {
	store store.Store
}

func NewAuthService(s store.Store) *AuthService {
	return &AuthService{store: s}
}

// Register creates a user with a bcrypt-hashed password and returns a token.
// Returns store.ErrUsernameTaken when the username exists.
func (s *AuthService) Register(username, password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	u, err := s.store.CreateUser(username, hash)
	if err != nil {
		return "", err
	}

	logger.Info("auth: user registered", "id", u.ID, "username", u.Username)
	return auth.GenerateToken(u.ID, u.Username)
}

// Login verifies credentials and returns a token.
func (s *AuthService) Login(username, password string) (string, error) {
	u, err := s.store.FindUserByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(u.ID, u.Username)
}
