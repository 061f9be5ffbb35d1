package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domain"
	"book-catalog/internal/storage"
)

type fakeStorage struct {
	bucket      string
	key         string
	body        []byte
	contentType string
	err         error
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, body []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.bucket, f.key, f.body, f.contentType = bucket, key, body, contentType
	return "s3://" + bucket + "/" + key, nil
}

func TestExportService_UploadsCatalog(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	for _, title := range []string{"Dune", "Emma", "Ulysses"} {
		_, err := repos.books.Create(ctx, &domain.Book{Title: title, Author: "A", PublishedDate: mustDate(t, "1900-01-01")})
		require.NoError(t, err)
	}

	store := &fakeStorage{}
	svc := NewExportService(repos.books, store, storage.UploadOptions{Bucket: "catalog", KeyPrefix: "/exports/"})
	svc.(*exportService).now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	result, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, "catalog", store.bucket)
	assert.True(t, strings.HasPrefix(store.key, "exports/books-20250102T030405Z-"), store.key)
	assert.Equal(t, "s3://catalog/"+store.key, result.Location)
	assert.Equal(t, "application/json", store.contentType)

	var doc struct {
		Count int `json:"count"`
		Books []struct {
			Title         string `json:"title"`
			PublishedDate string `json:"published_date"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(store.body, &doc))
	assert.Equal(t, 3, doc.Count)
	require.Len(t, doc.Books, 3)
	assert.Equal(t, "Dune", doc.Books[0].Title)
	assert.Equal(t, "1900-01-01", doc.Books[0].PublishedDate)
}

func TestExportService_Disabled(t *testing.T) {
	repos := setupRepos(t)

	_, err := NewExportService(repos.books, nil, storage.UploadOptions{Bucket: "b"}).Export(context.Background())
	assert.ErrorIs(t, err, ErrExportDisabled)

	_, err = NewExportService(repos.books, &fakeStorage{}, storage.UploadOptions{}).Export(context.Background())
	assert.ErrorIs(t, err, ErrExportDisabled)
}

func TestExportService_UploadError(t *testing.T) {
	repos := setupRepos(t)
	boom := errors.New("boom")

	_, err := NewExportService(repos.books, &fakeStorage{err: boom}, storage.UploadOptions{Bucket: "b"}).Export(context.Background())
	assert.ErrorIs(t, err, boom)
}
