package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookStatus is the reading state of a book.
type BookStatus string

// Possible book status values.
const (
	BookStatusReading  BookStatus = "reading"
	BookStatusFinished BookStatus = "finished"
)

// ErrInvalidBookStatus is returned for a status outside the allowed set.
var ErrInvalidBookStatus = NewValidationError("status", "must be one of: reading, finished", nil)

// Valid reports whether s is a known status.
func (s BookStatus) Valid() bool {
	return s == BookStatusReading || s == BookStatusFinished
}

// Book is a work the user is reading.
type Book struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Title     string     `json:"title"`
	Author    *string    `json:"author"`
	Status    BookStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BookPatch is a partial update of a book.
type BookPatch struct {
	Title  *string
	Author *string
	Status *BookStatus
}

// NewBook creates a book in the reading state.
func NewBook(userID uuid.UUID, title string, author *string, now time.Time) (*Book, error) {
	book := &Book{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Author:    OptionalText(author),
		Status:    BookStatusReading,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrIDEmpty
	}
	if b.UserID == uuid.Nil {
		return ErrUserIDEmpty
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleEmpty
	}
	if !b.Status.Valid() {
		return ErrInvalidBookStatus
	}
	return nil
}

// ApplyPatch updates the book in place. The book is left untouched when
// the result would be invalid.
func (b *Book) ApplyPatch(p BookPatch, now time.Time) error {
	next := *b
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Author != nil {
		next.Author = OptionalText(p.Author)
	}
	if p.Status != nil {
		next.Status = *p.Status
	}

	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = now.UTC()
	*b = next
	return nil
}
