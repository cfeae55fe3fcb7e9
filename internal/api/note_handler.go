package api

import (
	"log/slog"
	"net/http"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/service"
	"github.com/donmarco3/Book-Brain/pkg/schema"
)

// NoteHandler handles note requests, including promotion to cards.
type NoteHandler struct {
	notes      service.NoteService
	promotions service.PromotionService
	logger     *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(
	notes service.NoteService,
	promotions service.PromotionService,
	logger *slog.Logger,
) *NoteHandler {
	if notes == nil || promotions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("note and promotion services cannot be nil for NoteHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteHandler{
		notes:      notes,
		promotions: promotions,
		logger:     logger.With(slog.String("component", "note_handler")),
	}
}

// CreateNote handles POST /api/notes.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req schema.CreateNoteRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	note, err := h.notes.CreateNote(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create note")
		return
	}

	log.Debug("note created",
		slog.String("note_id", note.ID.String()),
		slog.String("book_id", note.BookID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, note)
}

// ListNotes handles GET /api/notes?bookId=&status=.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	filters := schema.NoteFilters{
		BookID: optionalQuery(r, "bookId"),
		Status: optionalQuery(r, "status"),
	}

	notes, err := h.notes.ListNotes(r.Context(), userID, filters)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list notes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, notes)
}

// GetNote handles GET /api/notes/{id}.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, noteID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	note, err := h.notes.GetNote(r.Context(), userID, noteID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get note")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, note)
}

// UpdateNote handles PATCH /api/notes/{id}.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, noteID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req schema.UpdateNoteRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	note, err := h.notes.UpdateNote(r.Context(), userID, noteID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update note")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, noteID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.notes.DeleteNote(r.Context(), userID, noteID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete note")
		return
	}
	shared.RespondNoContent(w)
}

// PromoteNote handles POST /api/notes/{id}/promote. The body is optional;
// omitted fields are copied from the note.
func (h *NoteHandler) PromoteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, noteID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req schema.PromoteNoteRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.promotions.PromoteNote(r.Context(), userID, noteID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to promote note")
		return
	}

	log.Info("note promoted",
		slog.String("note_id", noteID.String()),
		slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// DiscardNote handles POST /api/notes/{id}/discard.
func (h *NoteHandler) DiscardNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, noteID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	note, err := h.promotions.DiscardNote(r.Context(), userID, noteID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to discard note")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, note)
}
