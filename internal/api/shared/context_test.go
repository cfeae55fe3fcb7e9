package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	withTrace := SetTraceID(ctx)
	traceID := GetTraceID(withTrace)
	assert.Len(t, traceID, 32)
	assert.Empty(t, GetTraceID(ctx), "original context must not change")

	assert.Equal(t, "abc", GetTraceID(WithTraceID(ctx, "abc")))
}

func TestGetTraceIDWithWrongType(t *testing.T) {
	t.Parallel()
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceIDUnique(t *testing.T) {
	t.Parallel()
	const iterations = 1000
	seen := make(map[string]struct{}, iterations)
	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		_, err := hex.DecodeString(id)
		require.NoError(t, err)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, iterations)
}

func TestFallbackTraceID(t *testing.T) {
	t.Parallel()
	a := generateFallbackTraceID()
	b := generateFallbackTraceID()

	assert.Len(t, a, 32)
	_, err := hex.DecodeString(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestUserIDContext(t *testing.T) {
	t.Parallel()
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromContext(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	id := uuid.New()
	got, ok := UserIDFromContext(WithUserID(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)
}
