package rabbitmq

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	orderExchange = "cardapio.orders"
	orderQueue    = "cardapio.orders.events"
)

// OrderEvent is the payload fanned out to fulfillment consumers when an
// order is created or changes status.
type OrderEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Type       string    `json:"type"` // created, status_updated
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	Occurred   time.Time `json:"occurred"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(amqpURL string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Setup() error {
	if err := p.channel.ExchangeDeclare(
		orderExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	_, err := p.channel.QueueDeclare(
		orderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	return p.channel.QueueBind(
		orderQueue,
		"",
		orderExchange,
		false,
		nil,
	)
}

func (p *Publisher) PublishOrderEvent(event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
	}

	return p.channel.Publish(
		orderExchange,
		"",
		false, // mandatory
		false, // immediate
		msg,
	)
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
