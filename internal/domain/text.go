package domain

import (
	"strings"

	"github.com/google/uuid"
)

// OptionalText normalizes an optional free-text value. Nil and blank
// values become nil so that "no value" has a single representation.
func OptionalText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

// IDPatch is a patch of an optional reference. When Set is false the field
// is left alone; a Set patch with a nil ID clears it.
type IDPatch struct {
	Set bool
	ID  *uuid.UUID
}

// Excerpt is the captured passage shared by notes and the cards promoted
// from them.
type Excerpt struct {
	Title   string  `json:"title"`
	Page    string  `json:"page"`
	Context *string `json:"context"`
	Capture *string `json:"capture"`
	Spark   *string `json:"spark"`
}

// ExcerptPatch is a partial update of an Excerpt. Nil fields are left
// unchanged; blank optional fields are cleared.
type ExcerptPatch struct {
	Title   *string
	Page    *string
	Context *string
	Capture *string
	Spark   *string
}

// NewExcerpt builds a normalized excerpt.
func NewExcerpt(title, page string, context, capture, spark *string) Excerpt {
	return Excerpt{
		Title:   strings.TrimSpace(title),
		Page:    strings.TrimSpace(page),
		Context: OptionalText(context),
		Capture: OptionalText(capture),
		Spark:   OptionalText(spark),
	}
}

// Validate checks the required excerpt fields.
func (e Excerpt) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleEmpty
	}
	if strings.TrimSpace(e.Page) == "" {
		return ErrPageEmpty
	}
	return nil
}

// Apply returns a copy of e with the patch applied.
func (e Excerpt) Apply(p ExcerptPatch) Excerpt {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Page != nil {
		e.Page = strings.TrimSpace(*p.Page)
	}
	if p.Context != nil {
		e.Context = OptionalText(p.Context)
	}
	if p.Capture != nil {
		e.Capture = OptionalText(p.Capture)
	}
	if p.Spark != nil {
		e.Spark = OptionalText(p.Spark)
	}
	return e
}
