package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/flow"
	"github.com/franceviagens/portal/internal/pubsub"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoggerRecordsOutcomes(t *testing.T) {
	var out syncBuffer
	log := slog.New(slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bridge := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bridge.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, New(log).Start(ctx, bridge))

	pubsub.NewOutcomeNotifier(bridge).Notify(ctx, flow.Outcome{
		Flow:   flow.KindRegister,
		State:  domain.StateError,
		Reason: flow.ReasonUnreachable,
		Email:  "ana@example.com",
	})

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "Flow submission completed") }, time.Second, 5*time.Millisecond)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out.String())), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "audit", record["component"])
	assert.Equal(t, "register", record["flow"])
	assert.Equal(t, "error", record["state"])
}

func TestLoggerDiscardsBadPayload(t *testing.T) {
	var out syncBuffer
	l := New(slog.New(slog.NewTextHandler(&out, nil)))

	err := l.handle(context.Background(), pubsub.Message{Payload: []byte("{")})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Discarding undecodable flow outcome")
}
