package main

import (
	"fmt"
)

type cartCmd struct {
	Show   cartShowCmd   `cmd:"" default:"1" help:"Show the cart."`
	Add    cartAddCmd    `cmd:"" help:"Add a product to the cart."`
	Remove cartRemoveCmd `cmd:"" help:"Remove a product from the cart."`
	Set    cartSetCmd    `cmd:"" help:"Set a product's quantity."`
	Clear  cartClearCmd  `cmd:"" help:"Empty the cart."`
}

type cartShowCmd struct{}

func (cartShowCmd) Run(a *app) error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}

	for _, li := range items {
		fmt.Fprintf(a.out, "%-4s %3d x %-10s %-63s %s\n",
			li.ID, li.Quantity, li.UnitPrice, li.Title, li.Category)
	}
	fmt.Fprintf(a.out, "\n%d item(s), total %s\n", a.cart.Count(), a.cart.Total())
	return nil
}

type cartAddCmd struct {
	ID  string `arg:"" help:"Product id."`
	Qty int    `help:"Quantity to add." default:"1"`
}

func (c *cartAddCmd) Run(a *app) error {
	product, err := a.catalog.GetProduct(a.ctx, c.ID)
	if err != nil {
		return fmt.Errorf("catalog.GetProduct: %w", err)
	}

	a.cart.AddItem(a.ctx, product, c.Qty)
	fmt.Fprintf(a.out, "Added %q. Cart: %d item(s), total %s\n", product.Title, a.cart.Count(), a.cart.Total())
	return nil
}

type cartRemoveCmd struct {
	ID string `arg:"" help:"Product id."`
}

func (c *cartRemoveCmd) Run(a *app) error {
	a.cart.RemoveItem(a.ctx, c.ID)
	fmt.Fprintf(a.out, "Cart: %d item(s), total %s\n", a.cart.Count(), a.cart.Total())
	return nil
}

type cartSetCmd struct {
	ID  string `arg:"" help:"Product id."`
	Qty int    `arg:"" help:"New quantity; below 1 removes the item."`
}

func (c *cartSetCmd) Run(a *app) error {
	a.cart.SetQuantity(a.ctx, c.ID, c.Qty)
	fmt.Fprintf(a.out, "Cart: %d item(s), total %s\n", a.cart.Count(), a.cart.Total())
	return nil
}

type cartClearCmd struct{}

func (cartClearCmd) Run(a *app) error {
	a.cart.Clear(a.ctx)
	fmt.Fprintln(a.out, "Cart cleared.")
	return nil
}
