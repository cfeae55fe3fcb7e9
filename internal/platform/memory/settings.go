package memory

import (
	"context"
	"fmt"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

type settingsStore struct{ s *Store }

func (st settingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	var out *domain.UserSettings
	err := st.s.read(ctx, func(d *dataset) error {
		v, ok := d.settings[userID]
		if !ok {
			return store.ErrSettingsNotFound
		}
		out = copySettings(v)
		return nil
	})
	return out, err
}

func (st settingsStore) Upsert(ctx context.Context, settings *domain.UserSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return st.s.write(ctx, func(d *dataset) error {
		next := *copySettings(*settings)
		if prev, ok := d.settings[settings.UserID]; ok && !prev.CreatedAt.IsZero() {
			next.CreatedAt = prev.CreatedAt
		}
		d.settings[settings.UserID] = next
		return nil
	})
}
