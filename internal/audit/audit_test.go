package audit

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/pubsub"
	"github.com/envisionar/portal/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer written from subscriber goroutines.
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

func TestSubscriber_LogsEvents(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewSubscriber(bus, logger).Start(ctx))

	require.NoError(t, pubsub.Publish(ctx, bus, session.LoginEvent, "ana@example.com", session.LoginAttempt{
		Email: "ana@example.com", Outcome: session.OutcomeFailure, Reason: session.ReasonInvalidCredentials,
	}))
	require.NoError(t, pubsub.Publish(ctx, bus, dashboard.LoadedEvent, "ana@example.com", dashboard.Loaded{
		Email: "ana@example.com", Kind: dashboard.KindLeader, Outcome: "success",
	}))

	assert.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, `"event":"audit_login"`) && strings.Contains(s, `"event":"audit_dashboard"`)
	}, 2*time.Second, 10*time.Millisecond)

	assert.Contains(t, out.String(), `"reason":"invalid_credentials"`)
	assert.Contains(t, out.String(), `"level":"WARN"`)
}
