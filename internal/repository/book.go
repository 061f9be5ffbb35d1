package repository

import (
	"context"
	"errors"

	"book-catalog/internal/domain"
)

// ErrNotFound is returned when no row matches the requested id or key.
var ErrNotFound = errors.New("not found")

// ListOptions bounds a list query. Results are always in id order.
type ListOptions struct {
	Offset int
	Limit  int
}

// BookRepository exposes persistence operations for books.
type BookRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, book *domain.Book) (int64, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Book, error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	Update(ctx context.Context, id int64, update domain.BookUpdate) (*domain.Book, error)
	Delete(ctx context.Context, id int64) (*domain.Book, error)
}
