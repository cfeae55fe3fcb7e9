package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/donmarco3/Book-Brain/internal/domain"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into v. Malformed, empty or
// oversized bodies are reported as *domain.ValidationError on "body".
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", describeDecodeError(err), err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "must contain a single JSON value", err)
	}
	return nil
}

func describeDecodeError(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		sizeErr   *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return "is required"
	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
		return "contains malformed JSON"
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("field %q has the wrong type", typeErr.Field)
		}
		return "has the wrong type"
	case errors.As(err, &sizeErr):
		return fmt.Sprintf("must not exceed %d bytes", MaxBodyBytes)
	default:
		return "could not be read"
	}
}
