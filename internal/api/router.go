package api

import (
	"log/slog"
	"net/http"

	apiMiddleware "github.com/donmarco3/Book-Brain/internal/api/middleware"
	"github.com/donmarco3/Book-Brain/internal/config"
	"github.com/donmarco3/Book-Brain/internal/platform/auth"
	"github.com/donmarco3/Book-Brain/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services groups the application services the router exposes.
type Services struct {
	Books      service.BookService
	Notes      service.NoteService
	Promotions service.PromotionService
	Cards      service.CardService
	Buckets    service.BucketService
	Settings   service.SettingsService
	Stats      service.StatsService
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(
	svc Services,
	tokens auth.TokenService,
	cfg config.ServerConfig,
	logger *slog.Logger,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	authMiddleware := apiMiddleware.NewAuthMiddleware(tokens)
	limiter := apiMiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	books := NewBookHandler(svc.Books, logger)
	notes := NewNoteHandler(svc.Notes, svc.Promotions, logger)
	cards := NewCardHandler(svc.Cards, svc.Buckets, logger)
	buckets := NewBucketHandler(svc.Buckets, logger)
	settings := NewSettingsHandler(svc.Settings, svc.Stats, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(limiter.Middleware)

			r.Route("/books", func(r chi.Router) {
				r.Post("/", books.CreateBook)
				r.Get("/", books.ListBooks)
				r.Get("/{id}", books.GetBook)
				r.Patch("/{id}", books.UpdateBook)
				r.Delete("/{id}", books.DeleteBook)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", notes.CreateNote)
				r.Get("/", notes.ListNotes)
				r.Get("/{id}", notes.GetNote)
				r.Patch("/{id}", notes.UpdateNote)
				r.Delete("/{id}", notes.DeleteNote)
				r.Post("/{id}/promote", notes.PromoteNote)
				r.Post("/{id}/discard", notes.DiscardNote)
			})

			r.Route("/cards", func(r chi.Router) {
				r.Post("/", cards.CreateCard)
				r.Get("/", cards.ListCards)
				r.Get("/{id}", cards.GetCard)
				r.Patch("/{id}", cards.UpdateCard)
				r.Delete("/{id}", cards.DeleteCard)
				r.Get("/{id}/buckets", cards.ListCardBuckets)
				r.Put("/{id}/buckets/{bucketId}", cards.AttachBucket)
				r.Delete("/{id}/buckets/{bucketId}", cards.DetachBucket)
			})

			r.Route("/buckets", func(r chi.Router) {
				r.Post("/", buckets.CreateBucket)
				r.Get("/", buckets.ListBuckets)
				r.Get("/{id}", buckets.GetBucket)
				r.Patch("/{id}", buckets.RenameBucket)
				r.Delete("/{id}", buckets.DeleteBucket)
				r.Get("/{id}/cards", buckets.ListBucketCards)
			})

			r.Get("/settings", settings.GetSettings)
			r.Put("/settings", settings.UpdateSettings)
			r.Get("/stats", settings.GetStats)
		})
	})

	return r
}
