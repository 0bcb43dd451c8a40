package events

import (
	"context"
	"encoding/json"
	"time"

	"go-storefront/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const OrderPlacedRoutingKey = "orders.placed"

// OrderPlaced is published after the commerce API accepts an order
type OrderPlaced struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Email       string    `json:"email"`
	TotalAmount int64     `json:"total_amount"`
	Items       int       `json:"items"`
	PlacedAt    time.Time `json:"placed_at"`
}

// channel is the subset of *amqp.Channel the publisher needs
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// OrderPublisher sends order-placed events to a topic exchange
type OrderPublisher struct {
	ch       channel
	exchange string
	log      zerolog.Logger
}

func NewOrderPublisher(ch channel, exchange string, log zerolog.Logger) *OrderPublisher {
	return &OrderPublisher{ch: ch, exchange: exchange, log: log}
}

// OrderPlaced satisfies the checkout notifier contract
func (p *OrderPublisher) OrderPlaced(ctx context.Context, email string, order models.Order) error {
	evt := OrderPlaced{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Email:       email,
		TotalAmount: order.TotalAmount,
		Items:       len(order.Items),
		PlacedAt:    time.Now().UTC(),
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx,
		p.exchange,
		OrderPlacedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    evt.PlacedAt,
		},
	)
	if err != nil {
		return err
	}
	p.log.Debug().Str("order_number", evt.OrderNumber).Msg("order placed event published")
	return nil
}

// Conn owns the broker connection behind an OrderPublisher
type Conn struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// Connect dials the broker and declares the durable topic exchange
func Connect(url, exchange string) (*Conn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Conn{Conn: conn, Ch: ch}, nil
}

func (c *Conn) Close() error {
	_ = c.Ch.Close()
	return c.Conn.Close()
}
