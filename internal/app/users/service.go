// Package users coordinates account signup and login. Login issues a signed
// access token; everything after that flows through the auth middleware.
package users

import (
	"context"
	"errors"
	"strings"

	"tunecrate/internal/apperr"
	"tunecrate/internal/auth"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

const minPasswordLength = 8

// Store captures the persistence needs for account workflows.
type Store interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
}

// TokenIssuer signs access tokens for authenticated identities.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// Service captures the user-facing account operations.
type Service interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New constructs a user Service backed by the provided Store and issuer.
func New(st Store, tokens TokenIssuer) Service {
	return &service{store: st, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, username, password string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" {
		return nil, apperr.Validationf("username is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperr.Validationf("password must be at least %d characters", minPasswordLength)
	}

	user, err := s.store.CreateUser(ctx, username, password)
	if errors.Is(err, store.ErrUserExists) {
		return nil, apperr.Conflict("user", 0, "username already taken")
	}
	return user, err
}

func (s *service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	user, err := s.store.AuthenticateUser(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
