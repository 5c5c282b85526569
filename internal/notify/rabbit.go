package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/contracts"
)

const (
	EventsExchange          = "ecommerce.events"
	CartItemAddedRoutingKey = "cart.itemadded.v1"

	publishTimeout = 3 * time.Second
)

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitNotifier publishes CartItemAdded envelopes to the events exchange.
// Sequence numbers are kept per session for the lifetime of the process.
type RabbitNotifier struct {
	ch       Channel
	producer string

	mu  sync.Mutex
	seq map[string]int64
}

// Dial connects to RabbitMQ and opens a publishing channel. Closing the
// returned notifier closes the channel; the caller owns the connection.
func Dial(url string) (*RabbitNotifier, *amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	n, err := NewRabbitNotifier(ch, contracts.StorefrontProducer)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return n, conn, nil
}

func NewRabbitNotifier(ch Channel, producer string) (*RabbitNotifier, error) {
	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	return &RabbitNotifier{
		ch:       ch,
		producer: producer,
		seq:      make(map[string]int64),
	}, nil
}

func (n *RabbitNotifier) Notify(ctx context.Context, note Notification) error {
	env := contracts.BuildCartItemAddedEvent(contracts.CartItemAddedPayload{
		SessionID:   note.SessionID,
		ProductID:   note.ProductID,
		ProductName: note.ProductName,
		Quantity:    note.Quantity,
		Title:       note.Title,
		Description: note.Description,
		CartTotal:   note.CartTotal,
	}, contracts.EnvelopeOptions{
		Sequence:      n.next(note.SessionID),
		Producer:      n.producer,
		CorrelationID: contracts.CorrelationID(ctx),
	})

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal CartItemAdded envelope: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return n.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		CartItemAddedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Body:          body,
		},
	)
}

func (n *RabbitNotifier) Close() error {
	return n.ch.Close()
}

func (n *RabbitNotifier) next(partition string) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq[partition]++
	return n.seq[partition]
}
