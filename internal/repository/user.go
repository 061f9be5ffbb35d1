package repository

import (
	"context"

	"book-catalog/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Upsert(ctx context.Context, user *domain.User) (int64, error)
	// ReplaceAll upserts users and deletes every other stored account in one transaction.
	ReplaceAll(ctx context.Context, users []*domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
