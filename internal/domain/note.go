package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NoteStatus is the lifecycle state of a note. Inbox is the only
// non-terminal state.
type NoteStatus string

// Possible note status values.
const (
	NoteStatusInbox     NoteStatus = "inbox"
	NoteStatusProcessed NoteStatus = "processed"
	NoteStatusDiscarded NoteStatus = "discarded"
)

// Note errors.
var (
	ErrInvalidNoteStatus = NewValidationError("status", "must be one of: inbox, processed, discarded", nil)
	ErrNoteSelfLink      = NewValidationError("linkedNoteId", "cannot reference the note itself", nil)

	// ErrProcessRequiresPromotion is returned when a caller tries to set a
	// note to processed directly instead of promoting it.
	ErrProcessRequiresPromotion = NewValidationError("status", "can only become processed through promotion", nil)

	// ErrNoteNotInbox is returned when a transition requires an inbox note.
	ErrNoteNotInbox = fmt.Errorf("%w: note is not in the inbox", ErrConflict)

	// ErrNoteStatusFinal is returned when leaving a terminal status.
	ErrNoteStatusFinal = fmt.Errorf("%w: note status is final", ErrConflict)
)

// Valid reports whether s is a known status.
func (s NoteStatus) Valid() bool {
	switch s {
	case NoteStatusInbox, NoteStatusProcessed, NoteStatusDiscarded:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is allowed from s.
func (s NoteStatus) Terminal() bool {
	return s == NoteStatusProcessed || s == NoteStatusDiscarded
}

// Note is a raw capture made while reading a book.
type Note struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	BookID uuid.UUID `json:"bookId"`
	Excerpt
	LinkedNoteID *uuid.UUID `json:"linkedNoteId"`
	Status       NoteStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NotePatch is a partial update of a note's content and link. Status
// changes go through ChangeStatus.
type NotePatch struct {
	ExcerptPatch
	LinkedNote IDPatch
}

// NewNote creates a note in the inbox.
func NewNote(userID, bookID uuid.UUID, excerpt Excerpt, linkedNoteID *uuid.UUID, now time.Time) (*Note, error) {
	note := &Note{
		ID:           uuid.New(),
		UserID:       userID,
		BookID:       bookID,
		Excerpt:      excerpt,
		LinkedNoteID: linkedNoteID,
		Status:       NoteStatusInbox,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrIDEmpty
	}
	if n.UserID == uuid.Nil {
		return ErrUserIDEmpty
	}
	if n.BookID == uuid.Nil {
		return ErrBookIDEmpty
	}
	if err := n.Excerpt.Validate(); err != nil {
		return err
	}
	if n.LinkedNoteID != nil && *n.LinkedNoteID == n.ID {
		return ErrNoteSelfLink
	}
	if !n.Status.Valid() {
		return ErrInvalidNoteStatus
	}
	return nil
}

// ApplyPatch updates content and link in place. The note is left
// untouched when the result would be invalid.
func (n *Note) ApplyPatch(p NotePatch, now time.Time) error {
	next := *n
	next.Excerpt = n.Excerpt.Apply(p.ExcerptPatch)
	if p.LinkedNote.Set {
		next.LinkedNoteID = p.LinkedNote.ID
	}

	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = now.UTC()
	*n = next
	return nil
}

// ChangeStatus applies a caller-requested status change. Setting the
// current status is a no-op; inbox notes may be discarded; processed is
// reserved for promotion and terminal states are final.
func (n *Note) ChangeStatus(target NoteStatus, now time.Time) error {
	if !target.Valid() {
		return ErrInvalidNoteStatus
	}
	if target == n.Status {
		return nil
	}
	if n.Status.Terminal() {
		return ErrNoteStatusFinal
	}

	switch target {
	case NoteStatusDiscarded:
		return n.Discard(now)
	case NoteStatusProcessed:
		return ErrProcessRequiresPromotion
	default:
		return ErrNoteStatusFinal
	}
}

// MarkProcessed records the note's promotion to a card.
func (n *Note) MarkProcessed(now time.Time) error {
	return n.leaveInbox(NoteStatusProcessed, now)
}

// Discard marks an inbox note as discarded.
func (n *Note) Discard(now time.Time) error {
	return n.leaveInbox(NoteStatusDiscarded, now)
}

func (n *Note) leaveInbox(target NoteStatus, now time.Time) error {
	if n.Status != NoteStatusInbox {
		return ErrNoteNotInbox
	}
	n.Status = target
	n.UpdatedAt = now.UTC()
	return nil
}
