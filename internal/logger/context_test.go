package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextFields(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
	assert.NotNil(t, FromContext(ctx))
}
