package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Email string `json:"email"`
	Count int    `json:"count"`
}

var testEvent = NewEvent[testPayload]("test.event")

func TestWatermillBridge_TypedRoundTrip(t *testing.T) {
	bus := NewWatermillBridge()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan testPayload, 1)
	err := Subscribe(ctx, bus, testEvent, func(ctx context.Context, p testPayload) error {
		received <- p
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, Publish(ctx, bus, testEvent, "ana@example.com", testPayload{Email: "ana@example.com", Count: 2}))

	select {
	case p := <-received:
		assert.Equal(t, testPayload{Email: "ana@example.com", Count: 2}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillBridge_MetadataMapping(t *testing.T) {
	msg := Message{
		Topic:    "session.login",
		Subject:  "bia@example.com",
		Payload:  []byte(`{}`),
		Metadata: map[string]string{"outcome": "success"},
	}

	back := fromWatermill(toWatermill(msg))
	assert.Equal(t, msg.Topic, back.Topic)
	assert.Equal(t, msg.Subject, back.Subject)
	assert.Equal(t, "success", back.Metadata["outcome"])
	assert.NotContains(t, back.Metadata, metaKeySubject)
}

func TestWatermillBridge_MetadataCannotShadowReservedKeys(t *testing.T) {
	msg := Message{
		Topic:    "session.login",
		Subject:  "bia@example.com",
		Metadata: map[string]string{metaKeyTopic: "other", metaKeySubject: "mallory"},
	}

	back := fromWatermill(toWatermill(msg))
	assert.Equal(t, "session.login", back.Topic)
	assert.Equal(t, "bia@example.com", back.Subject)
}

func TestWatermillBridge_HandlerErrorAcksAndMovesOn(t *testing.T) {
	bus := NewWatermillBridge()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 4)
	require.NoError(t, bus.Subscribe(ctx, "flaky", func(ctx context.Context, msg Message) error {
		payloads <- string(msg.Payload)
		return errors.New("boom")
	}))

	require.NoError(t, bus.Publish(ctx, Message{Topic: "flaky", Payload: []byte("1")}))
	require.NoError(t, bus.Publish(ctx, Message{Topic: "flaky", Payload: []byte("2")}))

	for _, want := range []string{"1", "2"} {
		select {
		case got := <-payloads:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("message %s not delivered", want)
		}
	}

	select {
	case got := <-payloads:
		t.Fatalf("rejected message redelivered: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Publish(context.Background(), Discard, testEvent, "", testPayload{}))
	assert.NoError(t, Discard.Close())
}
