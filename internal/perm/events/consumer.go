package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"permd/internal/perm/registry"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer invalidates the action registry when administration tooling
// publishes action-type changes. When no broker URI is configured the
// consumer is disabled and the registry relies on its refresh interval alone.
type Consumer struct {
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	queueName string
	registry  *registry.ActionRegistry
	logger    *slog.Logger
	shutdown  chan struct{}
	wg        sync.WaitGroup
	enabled   bool
}

func NewConsumer(rabbitURI string, reg *registry.ActionRegistry, logger *slog.Logger) (*Consumer, error) {
	if rabbitURI == "" {
		logger.Info("RabbitMQ URI is empty, registry event consumption is disabled")
		return &Consumer{
			registry: reg,
			logger:   logger,
			shutdown: make(chan struct{}),
			enabled:  false,
		}, nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := channel.Qos(10, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := channel.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	queue, err := channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, "action_type.*", ExchangeName, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &Consumer{
		conn:      conn,
		channel:   channel,
		queueName: queue.Name,
		registry:  reg,
		logger:    logger,
		shutdown:  make(chan struct{}),
		enabled:   true,
	}, nil
}

func (c *Consumer) Start() error {
	if !c.enabled {
		return nil
	}

	deliveries, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case delivery, ok := <-deliveries:
				if !ok {
					c.logger.Warn("RabbitMQ delivery channel closed")
					return
				}
				c.handleDelivery(delivery)
			case <-c.shutdown:
				return
			}
		}
	}()

	c.logger.Info("registry event consumer started", "queue", c.queueName)
	return nil
}

func (c *Consumer) handleDelivery(delivery amqp091.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var event ActionTypeEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.logger.Warn("dropping malformed event", "routing_key", delivery.RoutingKey, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	switch delivery.RoutingKey {
	case EventActionTypeCreated, EventActionTypeUpdated, EventActionTypeRetired:
		c.registry.Invalidate(ctx, event.Code)
		c.logger.Info("action cache invalidated", "routing_key", delivery.RoutingKey, "code", event.Code)
	default:
		c.logger.Warn("unexpected routing key", "routing_key", delivery.RoutingKey)
	}
	_ = delivery.Ack(false)
}

func (c *Consumer) Close() error {
	close(c.shutdown)
	c.wg.Wait()

	if !c.enabled {
		return nil
	}
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
