package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNewBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	book, err := NewBook(userID, "  Dune ", strPtr("Frank Herbert"), testNow)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, userID, book.UserID)
	assert.Equal(t, "Dune", book.Title)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Frank Herbert", *book.Author)
	assert.Equal(t, BookStatusReading, book.Status)
	assert.Equal(t, testNow, book.CreatedAt)
	assert.Equal(t, testNow, book.UpdatedAt)

	book, err = NewBook(userID, "Dune", strPtr("   "), testNow)
	require.NoError(t, err)
	assert.Nil(t, book.Author, "blank author is stored as absent")

	_, err = NewBook(uuid.Nil, "Dune", nil, testNow)
	assert.ErrorIs(t, err, ErrUserIDEmpty)

	_, err = NewBook(userID, "   ", nil, testNow)
	assert.ErrorIs(t, err, ErrTitleEmpty)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookApplyPatch(t *testing.T) {
	t.Parallel()

	later := testNow.Add(time.Hour)

	t.Run("nil fields leave values unchanged", func(t *testing.T) {
		t.Parallel()
		book, err := NewBook(uuid.New(), "Dune", strPtr("Herbert"), testNow)
		require.NoError(t, err)

		status := BookStatusFinished
		require.NoError(t, book.ApplyPatch(BookPatch{Status: &status}, later))

		assert.Equal(t, "Dune", book.Title)
		require.NotNil(t, book.Author)
		assert.Equal(t, "Herbert", *book.Author)
		assert.Equal(t, BookStatusFinished, book.Status)
		assert.Equal(t, later, book.UpdatedAt)
		assert.Equal(t, testNow, book.CreatedAt)
	})

	t.Run("empty author clears it", func(t *testing.T) {
		t.Parallel()
		book, err := NewBook(uuid.New(), "Dune", strPtr("Herbert"), testNow)
		require.NoError(t, err)

		require.NoError(t, book.ApplyPatch(BookPatch{Author: strPtr("")}, later))
		assert.Nil(t, book.Author)
	})

	t.Run("invalid patch leaves book untouched", func(t *testing.T) {
		t.Parallel()
		book, err := NewBook(uuid.New(), "Dune", nil, testNow)
		require.NoError(t, err)
		before := *book

		status := BookStatus("abandoned")
		err = book.ApplyPatch(BookPatch{Title: strPtr("Other"), Status: &status}, later)
		assert.ErrorIs(t, err, ErrInvalidBookStatus)
		assert.Equal(t, before, *book)

		err = book.ApplyPatch(BookPatch{Title: strPtr(" ")}, later)
		assert.ErrorIs(t, err, ErrTitleEmpty)
		assert.Equal(t, before, *book)
	})
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "cannot be empty", nil)
	assert.Equal(t, "title cannot be empty", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))

	cause := errors.New("bad uuid")
	err = NewValidationError("bookId", "must be a valid id", cause)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, cause))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "bookId", ve.Field)

	assert.Equal(t, "no field", NewValidationError("", "no field", nil).Error())
}
