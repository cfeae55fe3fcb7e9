package schema

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata per instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so errors match the wire contract.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks the struct tags of a request. The returned error is a
// validator.ValidationErrors when a field fails.
func Validate(req any) error {
	return validate.Struct(req)
}
