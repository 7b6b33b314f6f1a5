package service

import (
	"context"
	"encoding/json"

	"knowledgegpt-be/internal/pkg/logger"
	"knowledgegpt-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService drains the audit topic in the background and writes one
// structured log line per pipeline event.
type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	log       logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		log:       log,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(msg *message.Message) {
	var event events.Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.log.Warn("audit", "unreadable audit event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	details := map[string]interface{}{
		"occurred_at": event.OccurredAt,
	}
	for k, v := range event.Data {
		details[k] = v
	}
	s.log.Info("audit", event.Type, details)
	msg.Ack()
}
