package shared

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "valid", body: `{"name": "test", "age": 30}`},
		{name: "unknown fields are ignored", body: `{"name": "test", "extra": true}`},
		{name: "empty body", body: "", message: "is required"},
		{name: "malformed", body: `{"name": "test",}`, message: "contains malformed JSON"},
		{name: "truncated", body: `{"name": "te`, message: "contains malformed JSON"},
		{name: "wrong type", body: `{"age": "thirty"}`, message: `field "age" has the wrong type`},
		{name: "trailing value", body: `{"name": "a"} {"name": "b"}`, message: "must contain a single JSON value"},
		{
			name:    "too large",
			body:    `{"name": "` + strings.Repeat("x", MaxBodyBytes) + `"}`,
			message: "must not exceed 1048576 bytes",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var target decodeTarget
			err := DecodeJSON(w, req, &target)

			if tc.message == "" {
				require.NoError(t, err)
				assert.Equal(t, "test", target.Name)
				return
			}

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "body", verr.Field)
			assert.Equal(t, tc.message, verr.Message)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestDecodeJSONReadError(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})

	var target decodeTarget
	err := DecodeJSON(httptest.NewRecorder(), req, &target)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "could not be read", verr.Message)
}
