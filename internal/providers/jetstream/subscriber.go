package jetstream

import (
	"context"
	"fmt"

	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/messaging"
)

type subscriber struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	json   adapter.JSON
	config Config
}

// NewSubscriber creates a durable NATS JetStream subscriber
func NewSubscriber(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Subscriber, error) {
	nc, js, err := connect(cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &subscriber{
		nc:     nc,
		js:     js,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// Subscribe consumes market events from the stream until ctx is cancelled.
// Messages are acked only after the handler returns nil; handler errors
// cause a NAK so the broker redelivers up to MaxDeliver times.
func (s *subscriber) Subscribe(ctx context.Context, handler messaging.EventHandler) error {
	logger.Info("Starting market event subscriber",
		zap.String("stream", s.config.StreamName),
		zap.String("consumer", s.config.ConsumerName),
	)

	consumerConfig := natsjs.ConsumerConfig{
		Durable:       s.config.ConsumerName,
		AckPolicy:     natsjs.AckExplicitPolicy,
		AckWait:       s.config.AckWaitTimeout,
		MaxDeliver:    s.config.MaxDeliver,
		FilterSubject: "market.*.*",
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down market event subscriber")
			return ctx.Err()
		case msg := <-msgChan:
			s.handleMessage(ctx, msg, handler)
		}
	}
}

// handleMessage processes a single NATS message
func (s *subscriber) handleMessage(ctx context.Context, msg adapter.Message, handler messaging.EventHandler) {
	metadata, _ := msg.Metadata()

	var event domain.MarketEvent
	if err := s.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal event"))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if !event.Valid() {
		logger.Warn("Dropping structurally invalid event", zap.Any("event", event))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	var deliveryCount uint64
	if metadata != nil {
		deliveryCount = metadata.NumDelivered
	}
	logger.Info("Received event",
		zap.String("network", string(event.Network)),
		zap.String("eventType", string(event.EventType)),
		zap.String("token", event.TokenKey()),
		zap.Uint64("blockNumber", event.BlockNumber),
		zap.Uint64("deliveryCount", deliveryCount),
	)

	if err := handler(ctx, &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to process event"))
		// NAK to retry
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection
func (s *subscriber) Close() {
	if s.nc == nil {
		return
	}

	s.nc.Close()
}
