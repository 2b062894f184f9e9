package cart

import (
	"encoding/json"
	"fmt"

	"github.com/altmart/gocart/internal/domain"
)

// lineItemRecord is the persisted shape of a line item. Monetary values go
// on the wire as JSON numbers.
type lineItemRecord struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	UnitPrice     float64 `json:"unitPrice"`
	OriginalPrice float64 `json:"originalPrice"`
	Quantity      int     `json:"quantity"`
	StockSnapshot int     `json:"stockSnapshot"`
	Category      string  `json:"category"`
}

func encodeItems(items []domain.LineItem) ([]byte, error) {
	records := make([]lineItemRecord, 0, len(items))
	for _, li := range items {
		records = append(records, lineItemRecord{
			ID:            li.ID,
			Title:         li.Title,
			Image:         li.Image,
			UnitPrice:     li.UnitPrice.Float64(),
			OriginalPrice: li.OriginalPrice.Float64(),
			Quantity:      li.Quantity,
			StockSnapshot: li.StockSnapshot,
			Category:      li.Category,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

func decodeItems(data []byte) ([]domain.LineItem, error) {
	var records []lineItemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var items []domain.LineItem
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		item, err := mapRecordToLineItem(rec)
		if err != nil {
			return nil, fmt.Errorf("mapRecordToLineItem: %w", err)
		}

		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate line item id %q", item.ID)
		}
		seen[item.ID] = true

		items = append(items, item)
	}

	return items, nil
}

func mapRecordToLineItem(rec lineItemRecord) (domain.LineItem, error) {
	if rec.ID == "" {
		return domain.LineItem{}, fmt.Errorf("id is empty")
	}
	if rec.Quantity < 1 {
		return domain.LineItem{}, fmt.Errorf("quantity[%d] is not positive", rec.Quantity)
	}
	if rec.UnitPrice <= 0 {
		return domain.LineItem{}, fmt.Errorf("unitPrice[%v] is not positive", rec.UnitPrice)
	}

	return domain.LineItem{
		ID:            rec.ID,
		Title:         rec.Title,
		Image:         rec.Image,
		UnitPrice:     domain.USD(rec.UnitPrice),
		OriginalPrice: domain.USD(rec.OriginalPrice),
		Quantity:      rec.Quantity,
		StockSnapshot: rec.StockSnapshot,
		Category:      rec.Category,
	}, nil
}
