package checkout

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/altmart/gocart/internal/domain"
	"github.com/altmart/gocart/internal/port"
)

// OrdersKey is the durable-storage slot holding the order history.
const OrdersKey = "orders"

var ErrEmptyCart = errors.New("cart is empty")

// Service turns the cart into an order. No payment processor is involved:
// placing an order snapshots the cart, records it locally and empties the
// cart, after a short simulated processing delay.
type Service struct {
	auth    port.Authenticator
	cart    port.CartStore
	storage port.Storage
	log     *zap.SugaredLogger

	processingDelay time.Duration
	now             func() time.Time
}

func New(auth port.Authenticator, cart port.CartStore, storage port.Storage, log *zap.SugaredLogger) *Service {
	return &Service{
		auth:            auth,
		cart:            cart,
		storage:         storage,
		log:             log,
		processingDelay: 2 * time.Second,
		now:             time.Now,
	}
}

// PlaceOrder gates on a signed-in user, then converts the current cart into
// a persisted order. The cart is cleared only after the order is recorded.
func (s *Service) PlaceOrder(ctx context.Context) (domain.Order, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("auth.CurrentUser: %w", err)
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	if s.processingDelay > 0 {
		select {
		case <-time.After(s.processingDelay):
		case <-ctx.Done():
			return domain.Order{}, ctx.Err()
		}
	}

	id := uuid.New()
	order := domain.Order{
		ID:       id,
		Number:   orderNumber(id),
		Email:    user.Email,
		Items:    items,
		Total:    s.cart.Total(),
		PlacedAt: s.now(),
	}

	if err := s.appendOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("appendOrder: %w", err)
	}

	s.cart.Clear(ctx)

	s.log.Infow("order placed", "order", order.Number, "items", len(order.Items))
	return order, nil
}

// Orders returns the locally recorded order history, oldest first.
func (s *Service) Orders(ctx context.Context) ([]domain.Order, error) {
	data, err := s.storage.Get(ctx, OrdersKey)
	if errors.Is(err, port.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.Get: %w", err)
	}

	orders, err := decodeOrders(data)
	if err != nil {
		return nil, fmt.Errorf("decodeOrders: %w", err)
	}

	return orders, nil
}

func (s *Service) appendOrder(ctx context.Context, order domain.Order) error {
	orders, err := s.Orders(ctx)
	if err != nil {
		// an unreadable history should not block a purchase
		s.log.Warnw("order history unreadable, starting a new one", "error", err)
		orders = nil
	}

	orders = append(orders, order)

	data, err := encodeOrders(orders)
	if err != nil {
		return fmt.Errorf("encodeOrders: %w", err)
	}
	if err := s.storage.Set(ctx, OrdersKey, data); err != nil {
		return fmt.Errorf("storage.Set: %w", err)
	}

	return nil
}

// orderNumber derives a stable six-digit display number from the order id.
func orderNumber(id uuid.UUID) int {
	return int(binary.BigEndian.Uint32(id[:4]) % 1_000_000)
}
