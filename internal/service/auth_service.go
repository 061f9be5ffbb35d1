package service

import (
	"context"
	"errors"
	"fmt"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
)

// ErrForbidden is returned when an authenticated user lacks a permission.
var ErrForbidden = errors.New("you do not have permission to access this resource")

// AuthService handles login and bearer token verification.
type AuthService interface {
	Login(ctx context.Context, username, password string) (AccessToken, error)
	Verify(ctx context.Context, token string) (*domain.User, error)
	Authorize(user *domain.User, perm domain.Permission) error
}

type authService struct {
	users  UserService
	tokens *TokenIssuer
}

func NewAuthService(users UserService, tokens *TokenIssuer) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (AccessToken, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return AccessToken{}, err
	}
	return s.tokens.Issue(user)
}

// Verify resolves a bearer token to a user. Every failure, including a
// subject that is no longer configured, is reported as ErrInvalidToken.
func (s *authService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	username, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Authorize(user *domain.User, perm domain.Permission) error {
	if !user.Can(perm) {
		return ErrForbidden
	}
	return nil
}
