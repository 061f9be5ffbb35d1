package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// Unknown usernames and wrong passwords both map to it.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRole is returned when seeding a user with an unknown role.
	ErrInvalidRole = errors.New("invalid role")
)

// UserSeed is one statically configured account.
type UserSeed struct {
	Username string
	Password string
	Role     domain.Role
}

// UserService describes user lookup and credential checks.
type UserService interface {
	Seed(ctx context.Context, seeds []UserSeed) error
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(users repository.UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		users: users,
		cost:  bcryptCost,
	}
}

// Seed makes the configured accounts the only stored users. Existing
// usernames get their hash and role replaced; accounts missing from seeds
// are removed.
func (s *userService) Seed(ctx context.Context, seeds []UserSeed) error {
	users := make([]*domain.User, 0, len(seeds))
	seen := make(map[string]struct{}, len(seeds))
	for _, seed := range seeds {
		username := strings.TrimSpace(seed.Username)
		if username == "" {
			return errors.New("username is required")
		}
		if _, dup := seen[username]; dup {
			return fmt.Errorf("user %q is configured twice", username)
		}
		seen[username] = struct{}{}
		if seed.Password == "" {
			return fmt.Errorf("password for %q is required", username)
		}
		if !seed.Role.Valid() {
			return fmt.Errorf("user %q: %w %q", username, ErrInvalidRole, seed.Role)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), s.cost)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", username, err)
		}

		users = append(users, &domain.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         seed.Role,
		})
	}
	return s.users.ReplaceAll(ctx, users)
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// keep unknown users as slow as wrong passwords
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
