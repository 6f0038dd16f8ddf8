package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	assert.NotEmpty(t, traceID)
	assert.Len(t, traceID, TraceIDLength*2, "trace ID should be hex-encoded")
}

func TestGetTraceIDWithoutOne(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))
}

func TestTraceIDsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		traceID := GetTraceID(SetTraceID(context.Background()))
		assert.False(t, seen[traceID], "trace IDs should not repeat")
		seen[traceID] = true
	}
}
