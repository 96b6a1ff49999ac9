package events

import (
	"context"
	"log"
	"time"

	"github.com/NEXESMISSION/KESTI-sub001/internal/sales"
	"github.com/segmentio/kafka-go"
)

// EventSource is the outbox side of the sales repository.
type EventSource interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*sales.OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}

// messageWriter is satisfied by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OutboxPoller drains unprocessed sale events into Kafka. Events are
// marked processed only after a successful write, so delivery is
// at-least-once and consumers must dedupe on sale id.
type OutboxPoller struct {
	tick      time.Duration
	batchSize int
	source    EventSource
	writer    messageWriter
}

func NewOutboxPoller(source EventSource, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "pos-sales",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{time.Second, 100, source, w}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.source.GetUnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		log.Printf("failed to fetch events %v", err)
		return
	}

	for _, event := range events {
		errPublish := p.publish(ctx, event)
		if errPublish != nil {
			log.Printf("failed to publish event id = %v with error %v", event.ID, errPublish)
			continue
		}

		errMark := p.source.MarkEventAsProcessed(ctx, event.ID)
		if errMark != nil {
			log.Printf("failed to mark event as processed id = %v with error %v", event.ID, errMark)
			continue
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *sales.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // sale_id for ordering
		Value: event.Payload,             // Already JSON from database
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}
