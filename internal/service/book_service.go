package service

import (
	"context"
	"fmt"

	"book-catalog/internal/domain"
	"book-catalog/internal/events"
	"book-catalog/internal/repository"
)

// BookService coordinates book operations and records each successful mutation.
type BookService interface {
	CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error)
	ListBooks(ctx context.Context, opts repository.ListOptions) ([]domain.Book, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, update domain.BookUpdate) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) (*domain.Book, error)
}

type bookService struct {
	books repository.BookRepository
	feed  *events.Feed
}

func NewBookService(books repository.BookRepository, feed *events.Feed) BookService {
	return &bookService{
		books: books,
		feed:  feed,
	}
}

func (s *bookService) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := book.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	s.feed.Record(domain.EventCreated, book.Title)
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context, opts repository.ListOptions) ([]domain.Book, error) {
	return s.books.List(ctx, opts)
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.Get(ctx, id)
}

// UpdateBook applies a partial update. An update with no fields is a read.
func (s *bookService) UpdateBook(ctx context.Context, id int64, update domain.BookUpdate) (*domain.Book, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if update.Empty() {
		return s.books.Get(ctx, id)
	}
	book, err := s.books.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.feed.Record(domain.EventUpdated, book.Title)
	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.books.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.feed.Record(domain.EventDeleted, book.Title)
	return book, nil
}

// allBooks pages through the whole table in id order.
func allBooks(ctx context.Context, books repository.BookRepository, pageSize int) ([]domain.Book, error) {
	var out []domain.Book
	for offset := 0; ; offset += pageSize {
		page, err := books.List(ctx, repository.ListOptions{Offset: offset, Limit: pageSize})
		if err != nil {
			return nil, fmt.Errorf("list books at offset %d: %w", offset, err)
		}
		out = append(out, page...)
		if len(page) < pageSize {
			return out, nil
		}
	}
}
