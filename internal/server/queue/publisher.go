package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends activity events to the broker. A connection is dialed per
// publish: event volume is low and this keeps the publisher stateless across
// broker restarts. Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
//
// An empty URL disables publishing entirely; Publish becomes a no-op.
type Publisher struct {
	url    string
	logger logging.Logger
}

func NewPublisher(url string, logger logging.Logger) *Publisher {
	return &Publisher{url: url, logger: logger}
}

// amqpDial is a seam for testing.
var amqpDial = amqp.Dial

// Publish marshals the event and delivers it to the activity queue.
// Messages are marked persistent.
func (p *Publisher) Publish(ctx context.Context, event *ActivityEvent) error {
	if p.url == "" {
		return nil
	}

	conn, err := amqpDial(p.url)
	if err != nil {
		p.logger.Error(ctx, "rabbitmq: dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Error(ctx, "rabbitmq: channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		ActivityQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	); err != nil {
		p.logger.Error(ctx, "rabbitmq: queue declare failed", "error", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "rabbitmq: marshal event failed", "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                // default exchange
		ActivityQueueName, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		pub,
	); err != nil {
		p.logger.Error(ctx, "rabbitmq: publish failed", "error", err)
		return err
	}

	return nil
}
