package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_SetAndGetUserID(t *testing.T) {
	m := NewManager()
	ctx := m.SetUserIDToContext(stdctx.Background(), 42)

	got, ok := m.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), got)
}

func TestManager_GetUserID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetUserIDFromContext(stdctx.Background())
	assert.False(t, ok)

	_, ok = m.GetUserIDFromContext(m.SetUserIDToContext(stdctx.Background(), 0))
	assert.False(t, ok)
}
