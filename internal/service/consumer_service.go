package service

import (
	"context"
	"errors"

	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// Forwarder ships events off-process, e.g. to NATS JetStream.
type Forwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// Forwarders fans an event out to every forwarder in order.
type Forwarders []Forwarder

func (fs Forwarders) Publish(ctx context.Context, event events.Event) error {
	var errs []error
	for _, f := range fs {
		if err := f.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// consumerService writes every chat event to the audit log and forwards it
// when a forwarder is configured.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	auditLog   logger.ILogger
	forwarder  Forwarder
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	auditLog logger.ILogger,
	forwarder Forwarder,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		auditLog:   auditLog,
		forwarder:  forwarder,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Warn("EventConsumer", "Dropping malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := make(map[string]interface{}, len(event.Data)+1)
	for k, v := range event.Data {
		details[k] = v
	}
	details["occurred_at"] = event.OccurredAt
	cs.auditLog.Info("ChatEvents", event.Type, details)

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			// forwarding is best-effort; the audit line is already written
			cs.logger.Warn("EventConsumer", "Failed to forward event", map[string]interface{}{
				"event": event.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
