package api

import (
	"log/slog"
	"net/http"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/service"
	"github.com/donmarco3/Book-Brain/pkg/schema"
)

// CardHandler handles card requests and card bucket membership.
type CardHandler struct {
	cards   service.CardService
	buckets service.BucketService
	logger  *slog.Logger
}

// NewCardHandler creates a CardHandler.
func NewCardHandler(cards service.CardService, buckets service.BucketService, logger *slog.Logger) *CardHandler {
	if cards == nil || buckets == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("card and bucket services cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cards:   cards,
		buckets: buckets,
		logger:  logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /api/cards.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req schema.CreateCardRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cards.CreateCard(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	log.Debug("card created", slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// ListCards handles GET /api/cards?search=&bookId=&bucketId=&limit=&offset=.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	filters, err := cardFiltersFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.cards.ListCards(r.Context(), userID, filters)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

func cardFiltersFromQuery(r *http.Request) (schema.CardFilters, error) {
	limit, err := optionalIntQuery(r, "limit")
	if err != nil {
		return schema.CardFilters{}, err
	}
	offset, err := optionalIntQuery(r, "offset")
	if err != nil {
		return schema.CardFilters{}, err
	}
	return schema.CardFilters{
		Search:   searchQuery(r, "search"),
		BucketID: optionalQuery(r, "bucketId"),
		BookID:   optionalQuery(r, "bookId"),
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// GetCard handles GET /api/cards/{id}.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	card, err := h.cards.GetCard(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// UpdateCard handles PATCH /api/cards/{id}.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req schema.UpdateCardRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), userID, cardID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}
	shared.RespondNoContent(w)
}

// ListCardBuckets handles GET /api/cards/{id}/buckets.
func (h *CardHandler) ListCardBuckets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	buckets, err := h.buckets.ListBucketsForCard(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list card buckets")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, buckets)
}

// AttachBucket handles PUT /api/cards/{id}/buckets/{bucketId}. Repeating
// the request is a no-op.
func (h *CardHandler) AttachBucket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}
	bucketID, ok := pathUUID(w, r, "bucketId", log)
	if !ok {
		return
	}

	if err := h.buckets.AttachCard(r.Context(), userID, cardID, bucketID); err != nil {
		HandleAPIError(w, r, err, "Failed to attach card to bucket")
		return
	}
	shared.RespondNoContent(w)
}

// DetachBucket handles DELETE /api/cards/{id}/buckets/{bucketId}.
func (h *CardHandler) DetachBucket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}
	bucketID, ok := pathUUID(w, r, "bucketId", log)
	if !ok {
		return
	}

	if err := h.buckets.DetachCard(r.Context(), userID, cardID, bucketID); err != nil {
		HandleAPIError(w, r, err, "Failed to detach card from bucket")
		return
	}
	shared.RespondNoContent(w)
}
