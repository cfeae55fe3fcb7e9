package api

import (
	"log/slog"
	"net/http"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/service"
	"github.com/donmarco3/Book-Brain/pkg/schema"
)

// BookHandler handles book requests.
type BookHandler struct {
	books  service.BookService
	logger *slog.Logger
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(books service.BookService, logger *slog.Logger) *BookHandler {
	if books == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("book service cannot be nil for BookHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookHandler{
		books:  books,
		logger: logger.With(slog.String("component", "book_handler")),
	}
}

// CreateBook handles POST /api/books.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req schema.CreateBookRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.books.CreateBook(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create book")
		return
	}

	log.Debug("book created", slog.String("book_id", book.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, book)
}

// ListBooks handles GET /api/books.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	books, err := h.books.ListBooks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list books")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, books)
}

// GetBook handles GET /api/books/{id}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	book, err := h.books.GetBook(r.Context(), userID, bookID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get book")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// UpdateBook handles PATCH /api/books/{id}.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req schema.UpdateBookRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.books.UpdateBook(r.Context(), userID, bookID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update book")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/{id}. Notes and cards of the book
// are deleted with it.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.books.DeleteBook(r.Context(), userID, bookID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete book")
		return
	}

	log.Debug("book deleted", slog.String("book_id", bookID.String()))
	shared.RespondNoContent(w)
}
