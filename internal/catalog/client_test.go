package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/altmart/gocart/internal/catalog"
	"github.com/altmart/gocart/internal/port"
)

const longTitle = "An Extremely Long Product Title That Goes On And On Well Past Sixty Characters"

const productsJSON = `[
	{
		"id": 1,
		"title": "` + longTitle + `",
		"price": 109.95,
		"description": "A backpack.",
		"category": "men's clothing",
		"image": "https://img.example/1.jpg",
		"rating": {"rate": 3.86, "count": 120}
	},
	{
		"id": 2,
		"title": "Plain Shirt",
		"price": 22.3,
		"description": "A shirt.",
		"category": "",
		"image": "https://img.example/2.jpg",
		"rating": {"rate": 0, "count": 0}
	}
]`

func newServer(t *testing.T, handler http.HandlerFunc) *catalog.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return catalog.New(server.URL, zap.NewNop().Sugar())
}

func TestListProducts(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write([]byte(productsJSON))
	})

	products, err := client.ListProducts(t.Context())
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "1", first.ID)
	assert.True(t, strings.HasSuffix(first.Title, "..."), "long titles get truncated: %q", first.Title)
	assert.LessOrEqual(t, len([]rune(first.Title)), 63)
	assert.Equal(t, 110.0, first.Price.Float64(), "price rounds to a tenth")
	assert.Equal(t, 131.9, first.OriginalPrice.Float64(), "reference price is a 20% markup")
	assert.Equal(t, "Men's clothing", first.Category)
	assert.Equal(t, 3.9, first.Rating)
	assert.Equal(t, 120, first.Reviews)
	assert.Equal(t, []string{"men's clothing", "Popular", "Trending"}, first.Tags)
	assert.NotEmpty(t, first.Brand)
	assert.GreaterOrEqual(t, first.Stock, 10)

	second := products[1]
	assert.Equal(t, "Plain Shirt", second.Title, "short titles stay intact")
	assert.Equal(t, "General", second.Category, "missing category falls back")
	assert.Equal(t, 4.5, second.Rating, "missing rating falls back")
	assert.GreaterOrEqual(t, second.Reviews, 100, "missing review count gets derived")
	assert.Equal(t, []string{"Popular", "Trending"}, second.Tags, "empty category tag dropped")
}

func TestListProductsDeterministicEnrichment(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(productsJSON))
	})

	first, err := client.ListProducts(t.Context())
	require.NoError(t, err)
	again, err := client.ListProducts(t.Context())
	require.NoError(t, err)

	assert.Equal(t, first[0].Brand, again[0].Brand)
	assert.Equal(t, first[0].Stock, again[0].Stock)
	assert.Equal(t, first[0].Sold, again[0].Sold)
}

func TestGetProduct(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/1", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 1,
			"title": "` + longTitle + `",
			"price": 109.95,
			"description": "A backpack.",
			"category": "men's clothing",
			"image": "https://img.example/1.jpg",
			"rating": {"rate": 4.1, "count": 259}
		}`))
	})

	product, err := client.GetProduct(t.Context(), "1")
	require.NoError(t, err)

	assert.Equal(t, longTitle, product.Title, "detail view keeps the full title")
	assert.Contains(t, product.Tags, "Best Seller")
	assert.NotEmpty(t, product.Features)
}

func TestGetProductNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404 status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			// the live API answers unknown ids with 200 and an empty body
			name: "empty body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("null"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, tt.handler)

			_, err := client.GetProduct(t.Context(), "999")
			assert.ErrorIs(t, err, port.ErrProductNotFound)
		})
	}
}

func TestRetryOnServerError(t *testing.T) {
	attempts := 0
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(productsJSON))
	})

	products, err := client.ListProducts(t.Context())
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 3, attempts)
}

func TestCategories(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/categories", r.URL.Path)
		_, _ = w.Write([]byte(`["electronics", "jewelery"]`))
	})

	categories, err := client.Categories(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Jewelery"}, categories)
}

func TestCategoriesFallback(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	categories, err := client.Categories(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Clothing", "Jewelery", "Home"}, categories)
}
