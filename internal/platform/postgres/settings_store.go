package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

// PostgresSettingsStore implements the store.SettingsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the SettingsStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get
func (s *PostgresSettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings := domain.UserSettings{UserID: userID}
	var questions []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT retention_questions, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1`,
		userID).Scan(&questions, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSettingsNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	settings.RetentionQuestions = []string{}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &settings.RetentionQuestions); err != nil {
			return nil, store.NewStoreError("user settings", "get", "invalid retention questions", err)
		}
	}
	settings.CreatedAt = settings.CreatedAt.UTC()
	settings.UpdatedAt = settings.UpdatedAt.UTC()
	return &settings, nil
}

// Upsert implements store.SettingsStore.Upsert
// The original creation time is kept on conflict.
func (s *PostgresSettingsStore) Upsert(ctx context.Context, settings *domain.UserSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	questions := settings.RetentionQuestions
	if questions == nil {
		questions = []string{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return store.NewStoreError("user settings", "upsert", "invalid retention questions", err)
	}

	createdAt := settings.CreatedAt
	if createdAt.IsZero() {
		createdAt = settings.UpdatedAt
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, retention_questions, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET retention_questions = EXCLUDED.retention_questions,
			updated_at = EXCLUDED.updated_at`,
		settings.UserID,
		string(data),
		createdAt,
		settings.UpdatedAt,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to upsert user settings",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return MapError(err)
	}

	return nil
}
