package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card errors.
var (
	ErrRetentionAnswerKeyEmpty = NewValidationError("retentionAnswers", "keys cannot be empty", nil)

	// ErrCardBookMismatch is returned when a card would be linked to a note
	// of a different book.
	ErrCardBookMismatch = NewValidationError("linkedNoteId", "must belong to the same book as the card", nil)
)

// Card is a curated, durable excerpt, usually promoted from a note.
// LinkedNoteID records provenance and is never changed after creation.
type Card struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	BookID uuid.UUID `json:"bookId"`
	Excerpt
	LinkedNoteID     *uuid.UUID        `json:"linkedNoteId"`
	RetentionAnswers map[string]string `json:"retentionAnswers"`
	Buckets          []*Bucket         `json:"buckets"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// CardPatch is a partial update of a card. A non-nil RetentionAnswers
// replaces the whole map.
type CardPatch struct {
	ExcerptPatch
	RetentionAnswers map[string]string
}

// NewCard creates a card. Buckets are attached separately.
func NewCard(
	userID, bookID uuid.UUID,
	excerpt Excerpt,
	linkedNoteID *uuid.UUID,
	answers map[string]string,
	now time.Time,
) (*Card, error) {
	card := &Card{
		ID:               uuid.New(),
		UserID:           userID,
		BookID:           bookID,
		Excerpt:          excerpt,
		LinkedNoteID:     linkedNoteID,
		RetentionAnswers: CopyAnswers(answers),
		Buckets:          []*Bucket{},
		CreatedAt:        now.UTC(),
		UpdatedAt:        now.UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrIDEmpty
	}
	if c.UserID == uuid.Nil {
		return ErrUserIDEmpty
	}
	if c.BookID == uuid.Nil {
		return ErrBookIDEmpty
	}
	if err := c.Excerpt.Validate(); err != nil {
		return err
	}
	for key := range c.RetentionAnswers {
		if strings.TrimSpace(key) == "" {
			return ErrRetentionAnswerKeyEmpty
		}
	}
	return nil
}

// ApplyPatch updates the card in place. The card is left untouched when
// the result would be invalid.
func (c *Card) ApplyPatch(p CardPatch, now time.Time) error {
	next := *c
	next.Excerpt = c.Excerpt.Apply(p.ExcerptPatch)
	if p.RetentionAnswers != nil {
		next.RetentionAnswers = CopyAnswers(p.RetentionAnswers)
	}

	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = now.UTC()
	*c = next
	return nil
}

// CopyAnswers returns a copy of m. The result is never nil.
func CopyAnswers(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
