package catalog

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/altmart/gocart/internal/domain"
)

// rawProduct is the catalog API's wire shape.
type rawProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

var brands = []string{
	"Nike", "Apple", "Samsung", "Sony", "Adidas",
	"Zara", "HP", "Dell", "Amazon Basics", "Premium Brand",
}

// mapListProduct enriches a raw record for the listing view: truncated
// title, derived brand and sales figures, a 20% reference markup. The
// derived fields hash off the product id so repeated fetches agree.
func mapListProduct(raw rawProduct) domain.Product {
	p := mapCommon(raw)
	p.Title = truncate(raw.Title, 60)
	p.Tags = dropEmpty([]string{raw.Category, "Popular", "Trending"})
	p.Features = []string{"High Quality", "Fast Delivery", "Easy Returns", "Warranty"}
	p.Shipping = "Free shipping"
	return p
}

// mapDetailProduct keeps the full title and carries the richer detail-page
// copy.
func mapDetailProduct(raw rawProduct) domain.Product {
	p := mapCommon(raw)
	p.Tags = dropEmpty([]string{raw.Category, "Popular", "Trending", "Best Seller"})
	p.Features = []string{
		"Premium Quality Material",
		"30-Day Return Policy",
		"1-Year Warranty",
		"Free Shipping",
		"24/7 Customer Support",
	}
	p.Shipping = "Free shipping, delivery in 2-5 days"
	return p
}

func mapCommon(raw rawProduct) domain.Product {
	id := strconv.Itoa(raw.ID)

	rating := raw.Rating.Rate
	if rating == 0 {
		rating = 4.5
	}
	reviews := raw.Rating.Count
	if reviews == 0 {
		reviews = 100 + derived(id, "reviews", 500)
	}

	return domain.Product{
		ID:            id,
		Title:         raw.Title,
		Brand:         brands[derived(id, "brand", len(brands))],
		Description:   raw.Description,
		Image:         raw.Image,
		Rating:        roundTenth(rating),
		Reviews:       reviews,
		Sold:          1000 + derived(id, "sold", 5000),
		Price:         domain.USD(roundTenth(raw.Price)),
		OriginalPrice: domain.USD(roundTenth(raw.Price * 1.2)),
		Category:      capitalize(raw.Category),
		Stock:         10 + derived(id, "stock", 100),
	}
}

// derived maps a product id and a field label onto a stable pseudo-random
// value in [0, n).
func derived(id, field string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	h.Write([]byte(field))
	return int(h.Sum32() % uint32(n))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func capitalize(s string) string {
	if s == "" {
		return "General"
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}

func dropEmpty(tags []string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
