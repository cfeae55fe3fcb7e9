package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
)

// SettingsService reads and replaces per-user settings.
type SettingsService interface {
	// GetSettings returns the stored settings, or the defaults (no
	// retention questions) for a user who never saved any.
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// UpdateSettings replaces the retention question list. Existing card
	// answers are not touched.
	UpdateSettings(ctx context.Context, userID uuid.UUID, req schema.UpdateSettingsRequest) (*domain.UserSettings, error)
}

type settingsServiceImpl struct {
	base
}

var _ SettingsService = (*settingsServiceImpl)(nil)

// NewSettingsService creates a SettingsService.
func NewSettingsService(
	st store.Store,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (SettingsService, error) {
	b, err := newBase("settings_service", st, emitter, logger, opts)
	if err != nil {
		return nil, err
	}
	return &settingsServiceImpl{base: b}, nil
}

func (s *settingsServiceImpl) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := getSettings(ctx, s.store, userID)
	if err != nil {
		return nil, NewServiceError("get_settings", "failed to load settings", err)
	}
	return settings, nil
}

func (s *settingsServiceImpl) UpdateSettings(
	ctx context.Context,
	userID uuid.UUID,
	req schema.UpdateSettingsRequest,
) (*domain.UserSettings, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var settings *domain.UserSettings
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		current, err := getSettings(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := current.SetRetentionQuestions(req.RetentionQuestions, s.now()); err != nil {
			return err
		}
		if err := tx.Settings().Upsert(ctx, current); err != nil {
			return err
		}
		settings = current
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_settings", "failed to save settings", err)
	}
	return settings, nil
}

func getSettings(ctx context.Context, st store.Store, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := st.Settings().Get(ctx, userID)
	if errors.Is(err, store.ErrSettingsNotFound) {
		return domain.DefaultUserSettings(userID), nil
	}
	return settings, err
}
