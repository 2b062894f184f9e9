package port

import (
	"context"
	"errors"

	"github.com/altmart/gocart/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog is the remote product source, read-only.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
