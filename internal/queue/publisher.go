package queue

import (
	"context"
	"encoding/json"
	"time"

	"terra-auth/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const userCreatedQueue = "user.created"

// UserCreatedEvent mirrors the payload the other TERRABIA services consume
// from the user.created queue.
type UserCreatedEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	CreatedAt string `json:"created_at"`
}

// Publisher is a fire-and-forget sink. The single method returns nothing:
// delivery failures must never reach the caller, and dispatch must never
// delay the response that triggered the event.
type Publisher interface {
	PublishUserCreated(event UserCreatedEvent)
}

// NewPublisher picks the RabbitMQ publisher when a broker URL is configured
// and a no-op sink otherwise.
func NewPublisher(config utils.QueueConfig, log *zap.Logger) Publisher {
	if config.URL == "" {
		log.Info("RabbitMQ not configured, user events disabled")
		return &NopPublisher{}
	}
	return &RabbitPublisher{url: config.URL, log: log}
}

// RabbitPublisher publishes persistent JSON messages to a durable queue.
// A fresh connection per event keeps the publisher stateless; the volume
// (one event per registration) does not justify a channel pool.
type RabbitPublisher struct {
	url string
	log *zap.Logger
}

func (p *RabbitPublisher) PublishUserCreated(event UserCreatedEvent) {
	go p.publish(event)
}

func (p *RabbitPublisher) publish(event UserCreatedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("RabbitMQ dial failed, user.created event dropped",
			zap.Error(err), zap.String("user_id", event.UserID))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("RabbitMQ channel open failed, user.created event dropped",
			zap.Error(err), zap.String("user_id", event.UserID))
		return
	}
	defer ch.Close()

	// Idempotent declare; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(
		userCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		p.log.Warn("RabbitMQ queue declare failed, user.created event dropped",
			zap.Error(err), zap.String("user_id", event.UserID))
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("Failed to marshal user.created event",
			zap.Error(err), zap.String("user_id", event.UserID))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",               // default exchange
		userCreatedQueue, // routing key = queue name
		false,            // mandatory
		false,            // immediate
		pub,
	); err != nil {
		p.log.Warn("RabbitMQ publish failed, user.created event dropped",
			zap.Error(err), zap.String("user_id", event.UserID))
		return
	}

	p.log.Info("Published user.created event", zap.String("user_id", event.UserID))
}

// NopPublisher drops events; used when no broker is configured
type NopPublisher struct{}

func (*NopPublisher) PublishUserCreated(UserCreatedEvent) {}
