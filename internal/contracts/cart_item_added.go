package contracts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CartItemAddedEventName    = "CartItemAdded"
	CartItemAddedEventVersion = 1
	CartItemAddedSchemaPath   = "contracts/events/cart/CartItemAdded.v1.enveloped.schema.json"
	StorefrontProducer        = "storefront-service"
)

type EventEnvelope struct {
	EventName     string               `json:"eventName"`
	EventVersion  int                  `json:"eventVersion"`
	EventID       string               `json:"eventId"`
	CorrelationID string               `json:"correlationId,omitempty"`
	Producer      string               `json:"producer"`
	PartitionKey  string               `json:"partitionKey"`
	Sequence      int64                `json:"sequence"`
	OccurredAt    time.Time            `json:"occurredAt"`
	Schema        string               `json:"schema"`
	Payload       CartItemAddedPayload `json:"payload"`
}

// CartItemAddedPayload is the notification shown to the customer plus the
// cart change behind it.
type CartItemAddedPayload struct {
	SessionID   string          `json:"sessionId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CartTotal   decimal.Decimal `json:"cartTotal"`
	Timestamp   time.Time       `json:"timestamp"`
}

type EnvelopeOptions struct {
	Sequence      int64
	Producer      string
	SchemaPath    string
	CorrelationID string
	EventID       string
	OccurredAt    time.Time
}

// BuildCartItemAddedEvent wraps payload in an envelope partitioned by session.
func BuildCartItemAddedEvent(payload CartItemAddedPayload, opts EnvelopeOptions) EventEnvelope {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	schemaPath := opts.SchemaPath
	if schemaPath == "" {
		schemaPath = CartItemAddedSchemaPath
	}

	producer := opts.Producer
	if producer == "" {
		producer = StorefrontProducer
	}

	if payload.Timestamp.IsZero() {
		payload.Timestamp = occurredAt
	}

	return EventEnvelope{
		EventName:     CartItemAddedEventName,
		EventVersion:  CartItemAddedEventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		Producer:      producer,
		PartitionKey:  payload.SessionID,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Schema:        schemaPath,
		Payload:       payload,
	}
}
