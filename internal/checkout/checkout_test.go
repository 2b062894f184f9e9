package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/altmart/gocart/internal/cart"
	"github.com/altmart/gocart/internal/domain"
	"github.com/altmart/gocart/internal/port"
	"github.com/altmart/gocart/internal/storage"
)

// stubAuth answers CurrentUser from a fixed value.
type stubAuth struct {
	user domain.User
	err  error
}

func (s stubAuth) SignIn(context.Context, string, string) (domain.Session, error) {
	return domain.Session{User: s.user}, s.err
}

func (s stubAuth) SignUp(context.Context, string, string, string) (domain.Session, error) {
	return domain.Session{User: s.user}, s.err
}

func (s stubAuth) SignOut(context.Context) error { return s.err }

func (s stubAuth) CurrentUser(context.Context) (domain.User, error) {
	return s.user, s.err
}

func newTestService(t *testing.T, auth port.Authenticator) (*Service, port.CartStore, *storage.Memory) {
	t.Helper()

	st := storage.NewMemory()
	log := zap.NewNop().Sugar()
	cartStore := cart.New(t.Context(), st, log)

	svc := New(auth, cartStore, st, log)
	svc.processingDelay = 0
	return svc, cartStore, st
}

func signedIn() stubAuth {
	return stubAuth{user: domain.User{LocalID: "uid-1", Email: "visitor@example.com"}}
}

func product(id string, price float64) domain.Product {
	return domain.Product{
		ID:            id,
		Title:         gofakeit.ProductName(),
		Price:         domain.USD(price),
		OriginalPrice: domain.USD(price * 1.2),
		Category:      gofakeit.ProductCategory(),
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := t.Context()
	svc, cartStore, _ := newTestService(t, signedIn())

	cartStore.AddItem(ctx, product("p1", 10), 2)
	cartStore.AddItem(ctx, product("p2", 5), 3)

	order, err := svc.PlaceOrder(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, order.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.GreaterOrEqual(t, order.Number, 0)
	assert.Less(t, order.Number, 1_000_000)
	assert.Equal(t, "visitor@example.com", order.Email)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 35.0, order.Total.Float64())
	assert.False(t, order.PlacedAt.IsZero())

	// checkout empties the cart
	assert.Empty(t, cartStore.Items())
	assert.Equal(t, 0, cartStore.Count())
}

func TestPlaceOrderRequiresSignIn(t *testing.T) {
	ctx := t.Context()
	svc, cartStore, _ := newTestService(t, stubAuth{err: port.ErrNotSignedIn})

	cartStore.AddItem(ctx, product("p1", 10), 1)

	_, err := svc.PlaceOrder(ctx)
	assert.ErrorIs(t, err, port.ErrNotSignedIn)

	// the cart is untouched when the gate fails
	assert.Equal(t, 1, cartStore.Count())
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _, _ := newTestService(t, signedIn())

	_, err := svc.PlaceOrder(t.Context())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderHistory(t *testing.T) {
	ctx := t.Context()
	svc, cartStore, _ := newTestService(t, signedIn())

	orders, err := svc.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	cartStore.AddItem(ctx, product("p1", 10), 2)
	first, err := svc.PlaceOrder(ctx)
	require.NoError(t, err)

	cartStore.AddItem(ctx, product("p2", 5), 1)
	second, err := svc.PlaceOrder(ctx)
	require.NoError(t, err)

	orders, err = svc.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// oldest first, fields surviving the storage roundtrip
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
	assert.Equal(t, first.Number, orders[0].Number)
	assert.Equal(t, 20.0, orders[0].Total.Float64())
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "p1", orders[0].Items[0].ID)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestPlaceOrderCancelledContext(t *testing.T) {
	svc, cartStore, _ := newTestService(t, signedIn())
	svc.processingDelay = time.Minute

	cartStore.AddItem(t.Context(), product("p1", 10), 1)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := svc.PlaceOrder(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// nothing was recorded and the cart survives
	orders, err := svc.Orders(t.Context())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 1, cartStore.Count())
}
