package domain

// Product is a catalog record as served by the product source. IDs are
// opaque strings, stable across fetches.
type Product struct {
	ID            string
	Title         string
	Brand         string
	Description   string
	Image         string
	Rating        float64
	Reviews       int
	Sold          int
	Price         Money
	OriginalPrice Money
	Category      string
	Tags          []string
	Features      []string
	Stock         int
	Shipping      string
}
