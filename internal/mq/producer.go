// Package mq publishes platform events to RabbitMQ.
//
// Events flow through a durable topic exchange so downstream consumers
// (CRM sync, analytics, notification workers) can bind the routing keys
// they care about without coordinating with this service.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"bizops-platform/internal/routing"
)

const (
	ExchangeName = "bizops.events"

	RoutingKeyLeadRouted = "lead.routed"
)

// LeadRoutedEvent is published once per accepted lead.
type LeadRoutedEvent struct {
	LeadID      string           `json:"lead_id"`
	WorkspaceID string           `json:"workspace_id"`
	Source      string           `json:"source"`
	Queue       routing.Queue    `json:"queue"`
	Priority    routing.Priority `json:"priority"`
	RoutedAt    time.Time        `json:"routed_at"`
}

// Producer owns one connection and channel. amqp091 channels are not safe
// for concurrent publishes; callers serialize through the lead service.
type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewProducer(url string) (*Producer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("mq: connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("mq: open channel: %w", err)
	}

	err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("mq: declare exchange: %w", err)
	}

	return &Producer{conn: conn, channel: ch}, nil
}

func (p *Producer) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *Producer) IsConnected() bool {
	return p.conn != nil && p.channel != nil && !p.conn.IsClosed()
}

func (p *Producer) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mq: marshal %s: %w", routingKey, err)
	}

	err = p.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now().UTC(),
		})
	if err != nil {
		return fmt.Errorf("mq: publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *Producer) PublishLeadRouted(ctx context.Context, ev LeadRoutedEvent) error {
	return p.publish(ctx, RoutingKeyLeadRouted, ev)
}
