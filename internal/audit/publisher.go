// Package audit streams every bus event to Kafka through the reserved
// wildcard subscription, for cross-cutting observers (analytics, debugging).
package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/storefront/internal/events"
)

const writeTimeout = 5 * time.Second

type Record struct {
	Session string    `json:"session"`
	Event   string    `json:"event"`
	Payload any       `json:"payload"`
	Time    time.Time `json:"time"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer}
}

// Attach subscribes a wildcard observer on the bus, keying the stream by
// session ID. Publishing failures are logged, never propagated into the
// session's event flow.
func (p *Publisher) Attach(bus *events.Bus, sessionID string) {
	bus.Subscribe(events.Wildcard, func(payload any) {
		env, ok := payload.(events.Envelope)
		if !ok {
			return
		}
		p.publish(sessionID, env)
	})
}

func (p *Publisher) publish(sessionID string, env events.Envelope) {
	record := Record{
		Session: sessionID,
		Event:   env.Event,
		Payload: env.Payload,
		Time:    time.Now(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		log.Printf("[Audit] Marshal event %s: %v", env.Event, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sessionID),
		Value: data,
		Time:  record.Time,
	})
	if err != nil {
		log.Printf("[Audit] Write event %s: %v", env.Event, err)
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
