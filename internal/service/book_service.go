package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
)

// BookService provides book-related operations.
type BookService interface {
	CreateBook(ctx context.Context, userID uuid.UUID, req schema.CreateBookRequest) (*domain.Book, error)
	GetBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error)
	ListBooks(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, userID, bookID uuid.UUID, req schema.UpdateBookRequest) (*domain.Book, error)

	// DeleteBook removes the book with its notes, cards and their bucket
	// memberships. Buckets survive.
	DeleteBook(ctx context.Context, userID, bookID uuid.UUID) error
}

type bookServiceImpl struct {
	base
}

var _ BookService = (*bookServiceImpl)(nil)

// NewBookService creates a BookService.
func NewBookService(
	st store.Store,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (BookService, error) {
	b, err := newBase("book_service", st, emitter, logger, opts)
	if err != nil {
		return nil, err
	}
	return &bookServiceImpl{base: b}, nil
}

func (s *bookServiceImpl) CreateBook(
	ctx context.Context,
	userID uuid.UUID,
	req schema.CreateBookRequest,
) (*domain.Book, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	book, err := domain.NewBook(userID, req.Title, req.Author, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.store.Books().Create(ctx, book); err != nil {
		s.log(ctx).Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("create_book", "failed to save book", err)
	}

	s.emit(ctx, events.BookCreated, userID, book.ID)
	return book, nil
}

func (s *bookServiceImpl) GetBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
	book, err := s.store.Books().Get(ctx, userID, bookID)
	if err != nil {
		return nil, NewServiceError("get_book", "failed to load book", err)
	}
	return book, nil
}

func (s *bookServiceImpl) ListBooks(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error) {
	books, err := s.store.Books().List(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_books", "failed to list books", err)
	}
	return books, nil
}

func (s *bookServiceImpl) UpdateBook(
	ctx context.Context,
	userID, bookID uuid.UUID,
	req schema.UpdateBookRequest,
) (*domain.Book, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := domain.BookPatch{Title: req.Title, Author: req.Author}
	if req.Status != nil {
		status := domain.BookStatus(strings.TrimSpace(*req.Status))
		if !status.Valid() {
			return nil, domain.ErrInvalidBookStatus
		}
		patch.Status = &status
	}

	var book *domain.Book
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		current, err := tx.Books().Get(ctx, userID, bookID)
		if err != nil {
			return err
		}
		if err := current.ApplyPatch(patch, s.now()); err != nil {
			return err
		}
		if err := tx.Books().Update(ctx, current); err != nil {
			return err
		}
		book = current
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_book", "failed to update book", err)
	}

	s.emit(ctx, events.BookUpdated, userID, book.ID)
	return book, nil
}

func (s *bookServiceImpl) DeleteBook(ctx context.Context, userID, bookID uuid.UUID) error {
	if err := s.store.Books().Delete(ctx, userID, bookID); err != nil {
		return NewServiceError("delete_book", "failed to delete book", err)
	}

	s.log(ctx).Debug("book deleted", slog.String("book_id", bookID.String()))
	s.emit(ctx, events.BookDeleted, userID, bookID)
	return nil
}
