package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRetentionQuestionEmpty is returned for a blank retention question.
var ErrRetentionQuestionEmpty = NewValidationError("retentionQuestions", "cannot contain empty questions", nil)

// UserSettings holds per-user preferences. A user without stored settings
// behaves as if RetentionQuestions were empty.
type UserSettings struct {
	UserID             uuid.UUID `json:"userId"`
	RetentionQuestions []string  `json:"retentionQuestions"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultUserSettings returns the settings of a user who never saved any.
func DefaultUserSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{UserID: userID, RetentionQuestions: []string{}}
}

// SetRetentionQuestions replaces the question list, preserving order.
func (s *UserSettings) SetRetentionQuestions(questions []string, now time.Time) error {
	next := make([]string, 0, len(questions))
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" {
			return ErrRetentionQuestionEmpty
		}
		next = append(next, q)
	}

	s.RetentionQuestions = next
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now.UTC()
	}
	s.UpdatedAt = now.UTC()
	return nil
}

// Validate checks if the UserSettings has valid data.
func (s *UserSettings) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrUserIDEmpty
	}
	for _, q := range s.RetentionQuestions {
		if strings.TrimSpace(q) == "" {
			return ErrRetentionQuestionEmpty
		}
	}
	return nil
}
