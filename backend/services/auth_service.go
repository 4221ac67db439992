package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/greenmind-app/greenmind/greenmind/database/models"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
)

// ErrInvalidCredentials covers both unknown email and wrong password,
// so a login probe cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles account registration and password verification
type AuthService struct {
	users repositories.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account with a bcrypt password hash.
// Returns repositories.ErrEmailTaken when the email is registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := generateUserID()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           id,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and records the login time.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateUserID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate user id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
