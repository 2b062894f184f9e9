package main

import (
	"errors"
	"fmt"

	"github.com/altmart/gocart/internal/checkout"
	"github.com/altmart/gocart/internal/port"
)

type checkoutCmd struct{}

func (checkoutCmd) Run(a *app) error {
	order, err := a.checkout.PlaceOrder(a.ctx)
	if errors.Is(err, port.ErrNotSignedIn) {
		return fmt.Errorf("sign in before checking out (gocart login)")
	}
	if errors.Is(err, checkout.ErrEmptyCart) {
		return fmt.Errorf("your cart is empty")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Purchase successful!")
	fmt.Fprintf(a.out, "Order #%06d for %d item(s), total %s\n", order.Number, len(order.Items), order.Total)
	fmt.Fprintln(a.out, "Check your email for order confirmation and tracking details.")
	return nil
}

type ordersCmd struct{}

func (ordersCmd) Run(a *app) error {
	orders, err := a.checkout.Orders(a.ctx)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}

	for _, order := range orders {
		fmt.Fprintf(a.out, "#%06d  %s  %d item(s)  %s\n",
			order.Number, order.PlacedAt.Format("2006-01-02 15:04"), len(order.Items), order.Total)
	}
	return nil
}
