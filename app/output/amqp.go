package output

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lysyi3m/rss-digest/app/digest"
)

const (
	defaultExchange   = "rss-digest"
	defaultRoutingKey = "digest"
)

// DigestMessage is the JSON body published by AMQPSender.
type DigestMessage struct {
	Subject     string    `json:"subject"`
	Recipient   string    `json:"recipient,omitempty"`
	Name        string    `json:"name,omitempty"`
	ContentType string    `json:"content_type"`
	Body        string    `json:"body"`
	Timestamp   time.Time `json:"timestamp"`
}

// AMQPSender publishes the digest to a durable direct exchange.
type AMQPSender struct{}

func (s *AMQPSender) Send(ctx context.Context, msg digest.Message, settings digest.Settings) error {
	values, err := required(settings, MethodAMQP, "amqp.url")
	if err != nil {
		return err
	}
	exchange := optional(settings, "amqp.exchange", defaultExchange)
	routingKey := optional(settings, "amqp.routing_key", defaultRoutingKey)

	conn, err := amqp.Dial(values["amqp.url"])
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	now := time.Now().UTC()
	body, err := json.Marshal(DigestMessage{
		Subject:     msg.Subject,
		Recipient:   msg.Recipient,
		Name:        msg.RecipientName,
		ContentType: msg.ContentType,
		Body:        msg.Body,
		Timestamp:   now,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = ch.PublishWithContext(
		ctx,
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    now,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.Debug("Digest published", "exchange", exchange, "routing_key", routingKey, "bytes", len(body))
	return nil
}
