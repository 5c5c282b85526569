// Package notify delivers "item added to cart" notifications.
package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notification is a short confirmation shown to the customer.
type Notification struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	SessionID   string          `json:"sessionId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	CartTotal   decimal.Decimal `json:"cartTotal"`
}

const ItemAddedTitle = "Товар добавлен"

// ItemAdded builds the notification for adding quantity of a product.
func ItemAdded(sessionID, productID, productName string, quantity int, cartTotal decimal.Decimal) Notification {
	return Notification{
		Title:       ItemAddedTitle,
		Description: productName + " добавлен в корзину",
		SessionID:   sessionID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		CartTotal:   cartTotal,
	}
}

// LogNotifier writes notifications to the service log.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note Notification) error {
	n.logger.Info().
		Str("session_id", note.SessionID).
		Str("product_id", note.ProductID).
		Int("quantity", note.Quantity).
		Str("title", note.Title).
		Msg(note.Description)
	return nil
}

func (n *LogNotifier) Close() error { return nil }
