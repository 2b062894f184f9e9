package main

import (
	"fmt"
	"strings"

	"github.com/altmart/gocart/internal/domain"
)

type productsCmd struct {
	Search   string `help:"Filter by name, brand or category." short:"s"`
	Category string `help:"Show only one category." short:"c"`
}

func (p *productsCmd) Run(a *app) error {
	products, err := a.catalog.ListProducts(a.ctx)
	if err != nil {
		return fmt.Errorf("catalog.ListProducts: %w", err)
	}

	shown := 0
	for _, prod := range products {
		if p.Category != "" && !strings.EqualFold(prod.Category, p.Category) {
			continue
		}
		if p.Search != "" && !matchesSearch(prod, p.Search) {
			continue
		}
		shown++
		fmt.Fprintf(a.out, "%-4s %-9s %-63s %-14s %s\n",
			prod.ID, prod.Price, prod.Title, prod.Brand, prod.Category)
	}

	if p.Search != "" {
		plural := "s"
		if shown == 1 {
			plural = ""
		}
		fmt.Fprintf(a.out, "\nFound %d product%s for %q\n", shown, plural, p.Search)
	}
	return nil
}

// matchesSearch mirrors the storefront search: case-insensitive substring on
// title, brand or category.
func matchesSearch(p domain.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

type productCmd struct {
	ID string `arg:"" help:"Product id."`
}

func (p *productCmd) Run(a *app) error {
	prod, err := a.catalog.GetProduct(a.ctx, p.ID)
	if err != nil {
		return fmt.Errorf("catalog.GetProduct: %w", err)
	}

	fmt.Fprintf(a.out, "%s\n", prod.Title)
	fmt.Fprintf(a.out, "  Brand:    %s\n", prod.Brand)
	fmt.Fprintf(a.out, "  Category: %s\n", prod.Category)
	fmt.Fprintf(a.out, "  Price:    %s (was %s)\n", prod.Price, prod.OriginalPrice)
	fmt.Fprintf(a.out, "  Rating:   %.1f (%d reviews, %d sold)\n", prod.Rating, prod.Reviews, prod.Sold)
	fmt.Fprintf(a.out, "  Stock:    %d\n", prod.Stock)
	fmt.Fprintf(a.out, "  Shipping: %s\n", prod.Shipping)
	fmt.Fprintf(a.out, "  Tags:     %s\n", strings.Join(prod.Tags, ", "))
	fmt.Fprintf(a.out, "\n%s\n", prod.Description)
	return nil
}

type categoriesCmd struct{}

func (categoriesCmd) Run(a *app) error {
	categories, err := a.catalog.Categories(a.ctx)
	if err != nil {
		return fmt.Errorf("catalog.Categories: %w", err)
	}

	for _, cat := range categories {
		fmt.Fprintln(a.out, cat)
	}
	return nil
}
