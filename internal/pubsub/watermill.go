package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillBridge is the Bus backed by a watermill GoChannel.
type WatermillBridge struct {
	pub    message.Publisher
	sub    message.Subscriber
	logger watermill.LoggerAdapter
}

// Reserved metadata keys carrying Message.Subject and Message.Topic.
const (
	metaKeySubject = "subject"
	metaKeyTopic   = "topic"
)

// NewWatermillBridge initializes an in-process bus. Messages published
// while nobody is subscribed are dropped.
func NewWatermillBridge() *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	ch := gochannel.NewGoChannel(gochannel.Config{}, logger)

	return &WatermillBridge{pub: ch, sub: ch, logger: logger}
}

func toWatermill(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	// Set last so caller metadata cannot shadow them.
	wmMsg.Metadata.Set(metaKeySubject, msg.Subject)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	return wmMsg
}

func fromWatermill(wmMsg *message.Message) Message {
	metadata := make(map[string]string, len(wmMsg.Metadata))
	for k, v := range wmMsg.Metadata {
		if k != metaKeySubject && k != metaKeyTopic {
			metadata[k] = v
		}
	}

	return Message{
		Topic:    wmMsg.Metadata.Get(metaKeyTopic),
		Subject:  wmMsg.Metadata.Get(metaKeySubject),
		Payload:  wmMsg.Payload,
		Metadata: metadata,
	}
}

// Publish sends msg on msg.Topic. Delivery outlives ctx cancellation.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wmMsg := toWatermill(msg)
	wmMsg.SetContext(context.WithoutCancel(ctx))
	return wb.pub.Publish(msg.Topic, wmMsg)
}

// Subscribe delivers every message on topic to handler until ctx ends or
// the bridge is closed. It returns once the subscription is registered.
//
// Every message is acked, including those the handler rejects: a nack on
// GoChannel redelivers the same message immediately and would spin forever.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			if err := handler(ctx, fromWatermill(wmMsg)); err != nil {
				slog.Error("Failed to handle message", "event", "pubsub_handler_failure",
					"topic", topic, "msg_id", wmMsg.UUID, "error", err)
			}
			wmMsg.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close stops every subscription.
func (wb *WatermillBridge) Close() error {
	return wb.sub.Close()
}
