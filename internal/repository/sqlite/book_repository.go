package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
)

const (
	createBooksTable = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	published_date TEXT NOT NULL,
	summary TEXT NULL,
	genre TEXT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`
	createBooksTitleIndex = `CREATE INDEX IF NOT EXISTS idx_books_title ON books (title);`

	selectBookColumns = `SELECT id, title, author, published_date, summary, genre, created_at, updated_at FROM books`
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBooksTable); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createBooksTitleIndex); err != nil {
		return fmt.Errorf("create books title index: %w", err)
	}
	return nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (int64, error) {
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO books (title, author, published_date, summary, genre, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		book.Title,
		book.Author,
		book.PublishedDate.String(),
		nullString(book.Summary),
		nullString(book.Genre),
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	book.ID = id
	return id, nil
}

func (r *BookRepository) List(ctx context.Context, opts repository.ListOptions) ([]domain.Book, error) {
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := r.db.QueryContext(ctx, selectBookColumns+` ORDER BY id LIMIT ? OFFSET ?`, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *BookRepository) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return getBook(ctx, r.db, id)
}

func (r *BookRepository) Update(ctx context.Context, id int64, update domain.BookUpdate) (*domain.Book, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update book: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	book, err := getBook(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	book.Apply(update)
	book.UpdatedAt = time.Now().UTC()

	sets, args := updateAssignments(update)
	sets = append(sets, "updated_at=?")
	args = append(args, book.UpdatedAt, id)

	if _, err := tx.ExecContext(ctx, `UPDATE books SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update book: %w", err)
	}
	return book, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) (*domain.Book, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete book: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	book, err := getBook(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id=?`, id); err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete book: %w", err)
	}
	return book, nil
}

// updateAssignments only names columns present in the update.
func updateAssignments(update domain.BookUpdate) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	if update.Title.Set {
		sets = append(sets, "title=?")
		args = append(args, update.Title.Value)
	}
	if update.Author.Set {
		sets = append(sets, "author=?")
		args = append(args, update.Author.Value)
	}
	if update.PublishedDate.Set {
		sets = append(sets, "published_date=?")
		args = append(args, update.PublishedDate.Value.String())
	}
	if update.Summary.Set {
		sets = append(sets, "summary=?")
		args = append(args, nullString(update.Summary.Ptr()))
	}
	if update.Genre.Set {
		sets = append(sets, "genre=?")
		args = append(args, nullString(update.Genre.Ptr()))
	}
	return sets, args
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getBook(ctx context.Context, q rowQueryer, id int64) (*domain.Book, error) {
	row := q.QueryRowContext(ctx, selectBookColumns+` WHERE id = ?`, id)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book %d: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	return book, nil
}

func scanBook(row interface {
	Scan(dest ...any) error
}) (*domain.Book, error) {
	var (
		book      domain.Book
		published string
		summary   sql.NullString
		genre     sql.NullString
	)
	if err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&published,
		&summary,
		&genre,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}

	date, err := domain.ParseDate(published)
	if err != nil {
		return nil, fmt.Errorf("book %d published_date: %w", book.ID, err)
	}
	book.PublishedDate = date
	if summary.Valid {
		book.Summary = &summary.String
	}
	if genre.Valid {
		book.Genre = &genre.String
	}
	return &book, nil
}

func nullString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
