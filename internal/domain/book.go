package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a calendar date.
const DateLayout = "2006-01-02"

// ErrInvalidDate is wrapped by every date parsing failure.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, value)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("%w %s: expected a YYYY-MM-DD string", ErrInvalidDate, raw)
	}
	parsed, err := ParseDate(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Book is a catalog record owned by the books table.
type Book struct {
	ID            int64
	Title         string
	Author        string
	PublishedDate Date
	Summary       *string
	Genre         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the invariants every stored book must satisfy.
func (b *Book) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(b.Title) == "" {
		verr.Add("title", "must not be empty")
	}
	if strings.TrimSpace(b.Author) == "" {
		verr.Add("author", "must not be empty")
	}
	if b.PublishedDate.IsZero() {
		verr.Add("published_date", "is required")
	}
	return verr.OrNil()
}

// BookUpdate is a partial update. Only fields with Set are written.
type BookUpdate struct {
	Title         Optional[string]
	Author        Optional[string]
	PublishedDate Optional[Date]
	Summary       Optional[string]
	Genre         Optional[string]
}

// Empty reports whether the update carries no fields at all.
func (u BookUpdate) Empty() bool {
	return !u.Title.Set && !u.Author.Set && !u.PublishedDate.Set && !u.Summary.Set && !u.Genre.Set
}

// Validate rejects updates that would clear or blank a required field.
// Summary and genre may be cleared with an explicit null.
func (u BookUpdate) Validate() error {
	verr := &ValidationError{}
	if u.Title.Set && (u.Title.Null || strings.TrimSpace(u.Title.Value) == "") {
		verr.Add("title", "must not be empty")
	}
	if u.Author.Set && (u.Author.Null || strings.TrimSpace(u.Author.Value) == "") {
		verr.Add("author", "must not be empty")
	}
	if u.PublishedDate.Set && (u.PublishedDate.Null || u.PublishedDate.Value.IsZero()) {
		verr.Add("published_date", "must not be null")
	}
	return verr.OrNil()
}

// Apply copies the present fields of u onto b.
func (b *Book) Apply(u BookUpdate) {
	if u.Title.Set {
		b.Title = u.Title.Value
	}
	if u.Author.Set {
		b.Author = u.Author.Value
	}
	if u.PublishedDate.Set {
		b.PublishedDate = u.PublishedDate.Value
	}
	if u.Summary.Set {
		b.Summary = u.Summary.Ptr()
	}
	if u.Genre.Set {
		b.Genre = u.Genre.Ptr()
	}
}
