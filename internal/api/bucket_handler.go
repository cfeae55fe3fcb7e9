package api

import (
	"log/slog"
	"net/http"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/service"
	"github.com/donmarco3/Book-Brain/pkg/schema"
)

// BucketHandler handles bucket requests.
type BucketHandler struct {
	buckets service.BucketService
	logger  *slog.Logger
}

// NewBucketHandler creates a BucketHandler.
func NewBucketHandler(buckets service.BucketService, logger *slog.Logger) *BucketHandler {
	if buckets == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("bucket service cannot be nil for BucketHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BucketHandler{
		buckets: buckets,
		logger:  logger.With(slog.String("component", "bucket_handler")),
	}
}

// CreateBucket handles POST /api/buckets.
func (h *BucketHandler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req schema.CreateBucketRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	bucket, err := h.buckets.CreateBucket(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create bucket")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, bucket)
}

// ListBuckets handles GET /api/buckets.
func (h *BucketHandler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	buckets, err := h.buckets.ListBuckets(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list buckets")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, buckets)
}

// GetBucket handles GET /api/buckets/{id}.
func (h *BucketHandler) GetBucket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, bucketID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	bucket, err := h.buckets.GetBucket(r.Context(), userID, bucketID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get bucket")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, bucket)
}

// RenameBucket handles PATCH /api/buckets/{id}.
func (h *BucketHandler) RenameBucket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, bucketID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req schema.UpdateBucketRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	bucket, err := h.buckets.RenameBucket(r.Context(), userID, bucketID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rename bucket")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, bucket)
}

// DeleteBucket handles DELETE /api/buckets/{id}. Member cards are kept.
func (h *BucketHandler) DeleteBucket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, bucketID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.buckets.DeleteBucket(r.Context(), userID, bucketID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete bucket")
		return
	}
	shared.RespondNoContent(w)
}

// ListBucketCards handles GET /api/buckets/{id}/cards.
func (h *BucketHandler) ListBucketCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, bucketID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	cards, err := h.buckets.ListCardsInBucket(r.Context(), userID, bucketID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list bucket cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}
