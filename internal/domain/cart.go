package domain

// LineItem is one product entry in the cart. Title, image, prices, stock and
// category are snapshots taken when the item was first added; later catalog
// changes do not touch them.
type LineItem struct {
	ID            string
	Title         string
	Image         string
	UnitPrice     Money
	OriginalPrice Money
	Quantity      int
	StockSnapshot int
	Category      string
}

// Subtotal is UnitPrice * Quantity.
func (li LineItem) Subtotal() Money {
	return li.UnitPrice.MulInt(li.Quantity)
}

// Cart holds the ordered line items (insertion order) plus the derived
// metrics. Count and Total are caches; Recompute keeps them consistent with
// Items and must be called after every change to the slice.
type Cart struct {
	Items []LineItem
	Count int
	Total Money
}

func (c *Cart) Recompute() {
	count := 0
	total := USD(0)
	for _, li := range c.Items {
		count += li.Quantity
		total = total.Add(li.Subtotal())
	}
	c.Count = count
	c.Total = total
}

// Find returns the index of the line item with the given product id, or -1.
func (c *Cart) Find(id string) int {
	for i, li := range c.Items {
		if li.ID == id {
			return i
		}
	}
	return -1
}
