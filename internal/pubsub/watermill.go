package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	metaKeyKey   = "key"
	metaKeyTopic = "topic"
)

// WatermillBridge implements Publisher and Subscriber on watermill's in-memory GoChannel.
type WatermillBridge struct {
	pub    message.Publisher
	sub    message.Subscriber
	logger watermill.LoggerAdapter
}

// NewWatermillBridge creates an in-process bus. Messages published while
// nobody is subscribed to their topic are dropped.
func NewWatermillBridge() *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)

	return &WatermillBridge{
		pub:    ch,
		sub:    ch,
		logger: logger,
	}
}

func toWatermill(msg Message) *message.Message {
	wm := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wm.Metadata.Set(k, v)
	}
	wm.Metadata.Set(metaKeyKey, msg.Key)
	wm.Metadata.Set(metaKeyTopic, msg.Topic)
	return wm
}

func fromWatermill(wm *message.Message) Message {
	metadata := make(map[string]string, len(wm.Metadata))
	for k, v := range wm.Metadata {
		if k != metaKeyKey && k != metaKeyTopic {
			metadata[k] = v
		}
	}
	return Message{
		Topic:    wm.Metadata.Get(metaKeyTopic),
		Key:      wm.Metadata.Get(metaKeyKey),
		Payload:  wm.Payload,
		Metadata: metadata,
	}
}

// Publish implements Publisher.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wm := toWatermill(msg)
	wm.SetContext(ctx)
	return wb.pub.Publish(msg.Topic, wm)
}

// Subscribe implements Subscriber. Handler errors nack the message; GoChannel
// then redelivers it, so handlers should only fail on transient problems.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wm := range messages {
			if err := handler(ctx, fromWatermill(wm)); err != nil {
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wm.UUID, "error", err)
				wm.Nack()
				continue
			}
			wm.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close implements Publisher and Subscriber.
func (wb *WatermillBridge) Close() error {
	return wb.sub.Close()
}
