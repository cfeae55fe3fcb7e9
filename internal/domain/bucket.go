package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrBucketNameEmpty is returned for a blank bucket name.
var ErrBucketNameEmpty = NewValidationError("name", "cannot be empty", nil)

// Bucket is a user-defined label grouping cards. Names are unique per
// user, compared case-insensitively.
type Bucket struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBucket creates a bucket.
func NewBucket(userID uuid.UUID, name string, now time.Time) (*Bucket, error) {
	bucket := &Bucket{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	return bucket, nil
}

// Validate checks if the Bucket has valid data.
func (b *Bucket) Validate() error {
	if b.ID == uuid.Nil {
		return ErrIDEmpty
	}
	if b.UserID == uuid.Nil {
		return ErrUserIDEmpty
	}
	if strings.TrimSpace(b.Name) == "" {
		return ErrBucketNameEmpty
	}
	return nil
}

// Rename changes the bucket name.
func (b *Bucket) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBucketNameEmpty
	}
	b.Name = name
	b.UpdatedAt = now.UTC()
	return nil
}

// NameKey is the form used for the per-user uniqueness check.
func (b *Bucket) NameKey() string {
	return BucketNameKey(b.Name)
}

// BucketNameKey normalizes a bucket name for comparison.
func BucketNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
