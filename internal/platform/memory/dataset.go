package memory

import (
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/google/uuid"
)

type membershipKey struct {
	cardID   uuid.UUID
	bucketID uuid.UUID
}

type membership struct {
	userID    uuid.UUID
	createdAt time.Time
}

// record pairs an entity with its insertion sequence, the tiebreak for
// entities created at the same instant.
type record[T any] struct {
	value T
	seq   uint64
}

type dataset struct {
	seq         uint64
	books       map[uuid.UUID]record[domain.Book]
	notes       map[uuid.UUID]record[domain.Note]
	cards       map[uuid.UUID]record[domain.Card]
	buckets     map[uuid.UUID]record[domain.Bucket]
	memberships map[membershipKey]membership
	settings    map[uuid.UUID]domain.UserSettings
}

func newDataset() *dataset {
	return &dataset{
		books:       make(map[uuid.UUID]record[domain.Book]),
		notes:       make(map[uuid.UUID]record[domain.Note]),
		cards:       make(map[uuid.UUID]record[domain.Card]),
		buckets:     make(map[uuid.UUID]record[domain.Bucket]),
		memberships: make(map[membershipKey]membership),
		settings:    make(map[uuid.UUID]domain.UserSettings),
	}
}

// clone copies the maps. Stored values are never mutated in place, so the
// values themselves can be shared between generations.
func (d *dataset) clone() *dataset {
	return &dataset{
		seq:         d.seq,
		books:       cloneMap(d.books),
		notes:       cloneMap(d.notes),
		cards:       cloneMap(d.cards),
		buckets:     cloneMap(d.buckets),
		memberships: cloneMap(d.memberships),
		settings:    cloneMap(d.settings),
	}
}

func (d *dataset) next() uint64 {
	d.seq++
	return d.seq
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// copyCard detaches the mutable parts of a card from the stored value.
func copyCard(c domain.Card) *domain.Card {
	c.RetentionAnswers = domain.CopyAnswers(c.RetentionAnswers)
	c.Buckets = []*domain.Bucket{}
	return &c
}

func copySettings(s domain.UserSettings) *domain.UserSettings {
	s.RetentionQuestions = append([]string{}, s.RetentionQuestions...)
	return &s
}

func sortedValues[T any](m map[uuid.UUID]record[T], keep func(T) bool, less func(a, b T) bool) []T {
	recs := make([]record[T], 0, len(m))
	for _, r := range m {
		if keep(r.value) {
			recs = append(recs, r)
		}
	}
	sortRecords(recs, less)

	out := make([]T, len(recs))
	for i, r := range recs {
		out[i] = r.value
	}
	return out
}
