package port

import (
	"context"

	"github.com/altmart/gocart/internal/domain"
)

// CartStore owns the cart for the lifetime of the process. Mutations persist
// the new state before returning; they never fail for unknown ids, and a
// storage write failure does not roll back the in-memory change.
type CartStore interface {
	AddItem(ctx context.Context, product domain.Product, quantity int)
	RemoveItem(ctx context.Context, productID string)
	SetQuantity(ctx context.Context, productID string, quantity int)
	Clear(ctx context.Context)

	Items() []domain.LineItem
	Count() int
	Total() domain.Money
}
