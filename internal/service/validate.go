package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validateRequest checks a request's struct tags and reports the first
// failing field as a *domain.ValidationError.
func validateRequest(req any) error {
	err := schema.Validate(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fieldPath(fe), fieldMessage(fe), nil)
	}
	return domain.NewValidationError("", "invalid request", err)
}

// fieldPath drops the request type from the namespace, leaving the JSON
// path (e.g. "bucketIds[2]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s long", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError(field, "must be a valid UUID", err)
	}
	return id, nil
}

// parseOptionalID treats nil and blank values as absent.
func parseOptionalID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := parseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseIDs parses a list of IDs, dropping duplicates while keeping order.
func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for i, r := range raw {
		id, err := parseID(fmt.Sprintf("%s[%d]", field, i), r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func excerptPatch(title, page, context, capture, spark *string) domain.ExcerptPatch {
	return domain.ExcerptPatch{
		Title:   title,
		Page:    page,
		Context: context,
		Capture: capture,
		Spark:   spark,
	}
}
