package events

import (
	"github.com/redis/go-redis/v9"
	"github.com/screendeck/backend/internal/config"
	"go.uber.org/zap"
)

// NewPublisher builds the publisher selected by EVENTS_BACKEND. Redis pub/sub
// always receives events because the admin websocket hub listens there; the
// amqp backend adds durable queues on top. The close function is never nil.
func NewPublisher(cfg *config.Config, rdb *redis.Client, log *zap.Logger) (Publisher, func() error, error) {
	redisPub := NewRedisPublisher(rdb, log)
	if cfg.EventsBackend != config.EventsBackendAMQP {
		return redisPub, func() error { return nil }, nil
	}

	amqpPub, err := NewAMQPPublisher(cfg.AMQPURL, log)
	if err != nil {
		return nil, nil, err
	}
	return FanoutPublisher{redisPub, amqpPub}, amqpPub.Close, nil
}
