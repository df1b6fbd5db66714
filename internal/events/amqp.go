package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher forwards events to durable RabbitMQ queues, one queue per
// stream, for reporting consumers that need persistence across restarts.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	log      *zap.Logger
	mu       sync.Mutex
	declared map[string]bool
}

func NewAMQPPublisher(url string, log *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	log.Info("amqp connected")
	return &AMQPPublisher{conn: conn, ch: ch, log: log, declared: make(map[string]bool)}, nil
}

// QueueName maps a stream name to its queue, e.g. events:devices -> events.devices.
func QueueName(stream string) string {
	return strings.ReplaceAll(stream, ":", ".")
}

func (p *AMQPPublisher) Publish(ctx context.Context, stream string, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	queue := QueueName(stream)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[queue] {
		if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.log.Error("amqp queue declare failed", zap.String("queue", queue), zap.Error(err))
			return err
		}
		p.declared[queue] = true
	}

	err = p.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		p.log.Warn("amqp publish failed", zap.String("queue", queue), zap.String("type", event.Type), zap.Error(err))
	}
	return err
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	return p.conn.Close()
}

// FanoutPublisher publishes to every wrapped publisher and returns the first error.
type FanoutPublisher []Publisher

func (f FanoutPublisher) Publish(ctx context.Context, stream string, event Event) error {
	var first error
	for _, p := range f {
		if err := p.Publish(ctx, stream, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
