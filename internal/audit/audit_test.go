package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lottery-server/internal/model"
	"github.com/dtroode/lottery-server/internal/testutil"
)

type recordingSink struct {
	events []model.SecurityEvent
	err    error
}

func (s *recordingSink) Record(_ context.Context, e model.SecurityEvent) error {
	s.events = append(s.events, e)
	return s.err
}

func TestPublisher_FansOutAndStamps(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	failing := &recordingSink{err: errors.New("disk full")}
	ok := &recordingSink{}

	p := NewPublisher(testutil.MakeNoopLogger(), failing, nil, ok)
	p.now = func() time.Time { return fixed }

	p.Emit(context.Background(), model.SecurityEvent{Kind: model.EventLogout, UserID: 4, Email: "a@b.c", Origin: "10.0.0.1"})

	require.Len(t, failing.events, 1)
	require.Len(t, ok.events, 1)
	assert.Equal(t, fixed, ok.events[0].Timestamp)
	assert.Equal(t, model.EventLogout, ok.events[0].Kind)
}

func TestPublisher_KeepsExplicitTimestamp(t *testing.T) {
	at := time.Date(2025, 12, 24, 8, 30, 0, 0, time.UTC)
	sink := &recordingSink{}
	p := NewPublisher(testutil.MakeNoopLogger(), sink)

	p.Emit(context.Background(), model.SecurityEvent{Kind: model.EventRegistration, Timestamp: at})

	require.Len(t, sink.events, 1)
	assert.Equal(t, at, sink.events[0].Timestamp)
}

func TestFileSink_WritesJSONLine(t *testing.T) {
	log, buf := testutil.MakeJSONLogger()
	sink := NewFileSink(log)

	err := sink.Record(context.Background(), model.SecurityEvent{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Kind:      model.EventLoginFailed,
		Email:     "x@y.z",
		Origin:    "127.0.0.1",
	})
	require.NoError(t, err)

	line := strings.TrimSpace(buf.String())
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &got))
	assert.Equal(t, "SECURITY - login_failed", got["msg"])
	assert.Equal(t, "WARN", got["level"])
	assert.Equal(t, "x@y.z", got["email"])
	assert.Equal(t, "127.0.0.1", got["origin"])
}
