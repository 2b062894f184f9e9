package cart

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/altmart/gocart/internal/domain"
	"github.com/altmart/gocart/internal/port"
)

// StorageKey is the fixed durable-storage slot holding the serialized cart.
const StorageKey = "cart"

// Store is the single owner of the cart state. All mutation goes through its
// methods; each mutation recomputes the derived count/total and then writes
// the full item list back to storage as a second explicit step. A failed
// write is logged and swallowed: the in-memory state stays authoritative for
// the rest of the session.
//
// Store is not safe for concurrent use. The application drives it from a
// single goroutine, so operations never observe a partial update.
type Store struct {
	storage port.Storage
	log     *zap.SugaredLogger

	cart domain.Cart
}

var _ port.CartStore = (*Store)(nil)

// New loads the persisted snapshot and returns a ready store. An absent,
// unreadable or malformed snapshot yields an empty cart, never an error.
func New(ctx context.Context, storage port.Storage, log *zap.SugaredLogger) *Store {
	s := &Store{storage: storage, log: log}

	data, err := storage.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, port.ErrKeyNotFound):
		// first run, nothing saved yet
	case err != nil:
		s.log.Warnw("cart snapshot unreadable, starting empty", "error", err)
	default:
		items, err := decodeItems(data)
		if err != nil {
			s.log.Warnw("cart snapshot malformed, starting empty", "error", err)
		} else {
			s.cart.Items = items
		}
	}

	s.cart.Recompute()
	return s
}

// AddItem merges the product into the cart. An existing line item keeps its
// add-time price snapshot and only gains quantity; a new product is appended
// with its current fields. Quantity is clamped to at least 1.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if i := s.cart.Find(product.ID); i >= 0 {
		s.cart.Items[i].Quantity += quantity
	} else {
		s.cart.Items = append(s.cart.Items, domain.LineItem{
			ID:            product.ID,
			Title:         product.Title,
			Image:         product.Image,
			UnitPrice:     product.Price,
			OriginalPrice: product.OriginalPrice,
			Quantity:      quantity,
			StockSnapshot: product.Stock,
			Category:      product.Category,
		})
	}

	s.commit(ctx)
}

// RemoveItem deletes the line item with the given product id. Unknown ids
// are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	i := s.cart.Find(productID)
	if i < 0 {
		return
	}

	s.cart.Items = slices.Delete(s.cart.Items, i, i+1)
	s.commit(ctx)
}

// SetQuantity updates a line item's quantity in place. A quantity below 1
// removes the item entirely; a zero-quantity line is never kept. Unknown ids
// are a no-op.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(ctx, productID)
		return
	}

	i := s.cart.Find(productID)
	if i < 0 {
		return
	}

	s.cart.Items[i].Quantity = quantity
	s.commit(ctx)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.cart.Items = nil
	s.commit(ctx)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	return slices.Clone(s.cart.Items)
}

// Count is the sum of all quantities.
func (s *Store) Count() int {
	return s.cart.Count
}

// Total is the sum of unit price times quantity over all items.
func (s *Store) Total() domain.Money {
	return s.cart.Total
}

// commit recomputes the derived metrics and persists the item list. The two
// steps are deliberately sequential and synchronous inside every mutation.
func (s *Store) commit(ctx context.Context) {
	s.cart.Recompute()

	data, err := encodeItems(s.cart.Items)
	if err != nil {
		s.log.Warnw("cart snapshot encode failed", "error", err)
		return
	}

	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		s.log.Warnw("cart snapshot write failed, keeping in-memory state", "error", err)
		return
	}

	s.log.Debugw("cart persisted", "items", len(s.cart.Items), "count", s.cart.Count)
}
