// Package eventbus provides the in-process publish/subscribe bus modules use
// to react to each other's changes.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TournamentKeyMetadata is the message metadata key carrying the tournament.
const TournamentKeyMetadata = "tournament_key"

// EventBus publishes and subscribes to watermill messages.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// NewGoChannelBus returns an in-memory bus. Messages are not persisted; a
// subscriber that is not running when a message is published never sees it.
func NewGoChannelBus(logger *slog.Logger) *gochannel.GoChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}

// NewMessage encodes payload as JSON and stamps the correlation id from ctx
// and the tournament key.
func NewMessage(ctx context.Context, tournamentKey string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	correlationID := attr.CorrelationID(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	msg.Metadata.Set(middleware.CorrelationIDMetadataKey, correlationID)
	msg.Metadata.Set(TournamentKeyMetadata, tournamentKey)
	return msg, nil
}

// Publish encodes payload and publishes it on topic.
func Publish(ctx context.Context, pub message.Publisher, topic, tournamentKey string, payload any) error {
	msg, err := NewMessage(ctx, tournamentKey, payload)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}

// Decode unmarshals a message payload into T.
func Decode[T any](msg *message.Message) (T, error) {
	var out T
	if err := json.Unmarshal(msg.Payload, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal %T: %w", out, err)
	}
	return out, nil
}
