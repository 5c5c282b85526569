// Package storefront is the application layer: it reads the catalog and
// order history from a Source, keeps each session's cart in the session
// store, and sends a notification whenever a product is added to a cart.
package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/notify"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/session"
)

type ProductSource interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

type OrderSource interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

type Source interface {
	ProductSource
	OrderSource
}

type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

// CartView is a snapshot of a session's cart.
type CartView struct {
	SessionID string
	Items     []cart.Item
	Total     decimal.Decimal
}

// Positions is the number of distinct products in the cart.
func (v CartView) Positions() int { return len(v.Items) }

type Service struct {
	source   Source
	sessions *session.Store
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(source Source, sessions *session.Store, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		source:   source,
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
	}
}

// Products returns the catalog filtered by query. An empty query returns
// the whole catalog.
func (s *Service) Products(ctx context.Context, query string) ([]catalog.Product, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return catalog.Filter(query, products), nil
}

func (s *Service) Product(ctx context.Context, id string) (catalog.Product, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("list products: %w", err)
	}
	return catalog.Find(products, id)
}

func (s *Service) Orders(ctx context.Context) ([]order.Order, error) {
	orders, err := s.source.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) Order(ctx context.Context, id string) (order.Order, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return order.Order{}, err
	}
	return order.Find(orders, id)
}

func (s *Service) Categories(ctx context.Context) ([]catalog.Count, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return catalog.Categories(products), nil
}

func (s *Service) Units(ctx context.Context) ([]catalog.Count, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return catalog.Units(products), nil
}

func (s *Service) CreateSession() string {
	id := s.sessions.Create()
	s.logger.Debug().Str("session_id", id).Msg("session started")
	return id
}

// EndSession discards the session and its cart.
func (s *Service) EndSession(sessionID string) error {
	if err := s.sessions.End(sessionID); err != nil {
		return err
	}
	s.logger.Debug().Str("session_id", sessionID).Msg("session ended")
	return nil
}

func (s *Service) Cart(sessionID string) (CartView, error) {
	var view CartView
	err := s.sessions.With(sessionID, func(c *cart.Cart) error {
		view = snapshot(sessionID, c)
		return nil
	})
	return view, err
}

// AddToCart adds quantity of the catalog product productID to the session's
// cart and sends an "item added" notification. Adding a non-positive amount
// never creates an item and sends no notification.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (CartView, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return CartView{}, fmt.Errorf("list products: %w", err)
	}
	p, err := catalog.Find(products, productID)
	if err != nil {
		return CartView{}, err
	}

	var view CartView
	err = s.sessions.With(sessionID, func(c *cart.Cart) error {
		c.Add(p, quantity)
		view = snapshot(sessionID, c)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}

	if quantity > 0 {
		s.notify(ctx, notify.ItemAdded(sessionID, p.ID, p.Name, quantity, view.Total))
	}
	return view, nil
}

// RemoveFromCart drops productID from the cart. Unknown products are ignored.
func (s *Service) RemoveFromCart(sessionID, productID string) (CartView, error) {
	var view CartView
	err := s.sessions.With(sessionID, func(c *cart.Cart) error {
		c.Remove(productID)
		view = snapshot(sessionID, c)
		return nil
	})
	return view, err
}

// UpdateQuantity sets the quantity of productID. Zero or less removes it;
// unknown products are ignored.
func (s *Service) UpdateQuantity(sessionID, productID string, quantity int) (CartView, error) {
	var view CartView
	err := s.sessions.With(sessionID, func(c *cart.Cart) error {
		c.UpdateQuantity(productID, quantity)
		view = snapshot(sessionID, c)
		return nil
	})
	return view, err
}

// notify is fire-and-forget: a failed delivery never fails the cart change.
func (s *Service) notify(ctx context.Context, n notify.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn().Err(err).
			Str("session_id", n.SessionID).
			Str("product_id", n.ProductID).
			Msg("notification not delivered")
	}
}

func snapshot(sessionID string, c *cart.Cart) CartView {
	return CartView{SessionID: sessionID, Items: c.Items(), Total: c.Total()}
}

// IsNotFound reports whether err is one of the lookup misses the service
// returns for unknown products, orders or sessions.
func IsNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, order.ErrNotFound) ||
		errors.Is(err, session.ErrNotFound)
}
