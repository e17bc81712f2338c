package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Common errors returned by the user service.
var (
	ErrNotFound           = errors.New("user not found")
	ErrExists             = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("account is disabled")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// minPasswordLen is the floor for new passwords.
const minPasswordLen = 8

// Service handles staff account management and credential checks.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a staff account with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, email, name, password, role string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a staff login and records the login time. It
// deliberately returns the same error for unknown users and wrong
// passwords; disabled accounts are rejected after the password check so
// the error does not leak whether the credentials were right.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactive
	}

	// Best effort; a failed stamp must not block the login.
	_ = s.repo.RecordLogin(ctx, u.ID)
	return u, nil
}

// ChangePassword re-verifies the current password before storing the new
// one.
func (s *Service) ChangePassword(ctx context.Context, email, current, next string) error {
	u, err := s.Authenticate(ctx, email, current)
	if err != nil {
		return err
	}
	if len(next) < minPasswordLen {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, u.ID, string(hash))
}
