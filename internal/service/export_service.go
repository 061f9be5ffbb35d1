package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
	"book-catalog/internal/storage"
)

// ErrExportDisabled is returned when no object storage bucket is configured.
var ErrExportDisabled = errors.New("catalog export is not configured")

const exportPageSize = 200

// ExportResult describes an uploaded catalog snapshot.
type ExportResult struct {
	Location string
	Count    int
}

// ExportService uploads a JSON snapshot of the catalog to object storage.
type ExportService interface {
	Export(ctx context.Context) (*ExportResult, error)
}

type exportService struct {
	books   repository.BookRepository
	storage storage.Service
	opts    storage.UploadOptions
	now     func() time.Time
}

// NewExportService returns a service whose Export fails with ErrExportDisabled
// when store is nil or no bucket is set.
func NewExportService(books repository.BookRepository, store storage.Service, opts storage.UploadOptions) ExportService {
	return &exportService{
		books:   books,
		storage: store,
		opts:    opts,
		now:     time.Now,
	}
}

type exportedBook struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Author        string      `json:"author"`
	PublishedDate domain.Date `json:"published_date"`
	Summary       *string     `json:"summary"`
	Genre         *string     `json:"genre"`
}

type exportDocument struct {
	ExportedAt time.Time      `json:"exported_at"`
	Count      int            `json:"count"`
	Books      []exportedBook `json:"books"`
}

func (s *exportService) Export(ctx context.Context) (*ExportResult, error) {
	if s.storage == nil || s.opts.Bucket == "" {
		return nil, ErrExportDisabled
	}

	books, err := allBooks(ctx, s.books, exportPageSize)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	doc := exportDocument{
		ExportedAt: now,
		Count:      len(books),
		Books:      make([]exportedBook, len(books)),
	}
	for i, b := range books {
		doc.Books[i] = exportedBook{
			ID:            b.ID,
			Title:         b.Title,
			Author:        b.Author,
			PublishedDate: b.PublishedDate,
			Summary:       b.Summary,
			Genre:         b.Genre,
		}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}

	key := fmt.Sprintf("books-%s-%s.json", now.Format("20060102T150405Z"), uuid.NewString())
	if prefix := strings.Trim(s.opts.KeyPrefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}

	location, err := s.storage.PutObject(ctx, s.opts.Bucket, key, body, "application/json")
	if err != nil {
		return nil, fmt.Errorf("upload catalog: %w", err)
	}
	return &ExportResult{Location: location, Count: len(books)}, nil
}
