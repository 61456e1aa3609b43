package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Akashx1550/TrendMart-backend/models"
	awspkg "github.com/Akashx1550/TrendMart-backend/pkg/aws"

	"go.uber.org/zap"
)

// EventPublisher emits domain events. Publishing is best effort: failures
// are logged and never returned to the request that caused the event.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{})
}

type SNSEventPublisher struct {
	client   awspkg.SNSPublisher
	topicARN string
	log      *zap.Logger
	now      func() time.Time
	inflight sync.WaitGroup
}

// NewSNSEventPublisher returns a publisher for topicARN. An empty ARN or a
// nil client yields a publisher that drops every event.
func NewSNSEventPublisher(client awspkg.SNSPublisher, topicARN string, log *zap.Logger) *SNSEventPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &SNSEventPublisher{client: client, topicARN: topicARN, log: log, now: time.Now}
}

// Publish sends the event in the background and returns immediately.
func (p *SNSEventPublisher) Publish(ctx context.Context, eventType string, data interface{}) {
	if p == nil || p.client == nil || p.topicARN == "" {
		return
	}

	body, err := json.Marshal(models.Event{Type: eventType, OccurredAt: p.now().UTC(), Data: data})
	if err != nil {
		p.log.Error("failed to marshal event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	// The request finishes before SNS answers; keep its values but not its deadline.
	pubCtx := context.WithoutCancel(ctx)
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		sendCtx, cancel := context.WithTimeout(pubCtx, 5*time.Second)
		defer cancel()

		if err := p.client.Publish(sendCtx, p.topicARN, eventType, body); err != nil {
			p.log.Warn("failed to publish event", zap.String("event_type", eventType), zap.Error(err))
			return
		}
		p.log.Debug("event published", zap.String("event_type", eventType))
	}()
}

// Wait blocks until every publish started so far has finished.
func (p *SNSEventPublisher) Wait() {
	if p == nil {
		return
	}
	p.inflight.Wait()
}
