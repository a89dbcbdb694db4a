package eventbus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

func TestPublishAndDecode(t *testing.T) {
	bus := NewGoChannelBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscribe(ctx, "test.topic.v1")
	require.NoError(t, err)

	ctx = attr.WithCorrelationID(ctx, "corr-1")
	require.NoError(t, Publish(ctx, bus, "test.topic.v1", "masters-2027", testPayload{Key: "a", Count: 2}))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, "corr-1", msg.Metadata.Get(middleware.CorrelationIDMetadataKey))
		assert.Equal(t, "masters-2027", msg.Metadata.Get(TournamentKeyMetadata))
		got, err := Decode[testPayload](msg)
		require.NoError(t, err)
		assert.Equal(t, testPayload{Key: "a", Count: 2}, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestNewMessage_GeneratesCorrelationID(t *testing.T) {
	msg, err := NewMessage(context.Background(), "masters-2027", testPayload{})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.Metadata.Get(middleware.CorrelationIDMetadataKey))
}
