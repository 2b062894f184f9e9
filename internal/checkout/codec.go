package checkout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altmart/gocart/internal/domain"
)

type orderRecord struct {
	ID       uuid.UUID        `json:"id"`
	Number   int              `json:"number"`
	Email    string           `json:"email"`
	Items    []lineItemRecord `json:"items"`
	Total    float64          `json:"total"`
	PlacedAt time.Time        `json:"placedAt"`
}

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

func encodeOrders(orders []domain.Order) ([]byte, error) {
	records := make([]orderRecord, 0, len(orders))
	for _, o := range orders {
		rec := orderRecord{
			ID:       o.ID,
			Number:   o.Number,
			Email:    o.Email,
			Total:    o.Total.Float64(),
			PlacedAt: o.PlacedAt,
		}
		for _, li := range o.Items {
			rec.Items = append(rec.Items, lineItemRecord{
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
		records = append(records, rec)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

func decodeOrders(data []byte) ([]domain.Order, error) {
	var records []orderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var orders []domain.Order
	for _, rec := range records {
		order := domain.Order{
			ID:       rec.ID,
			Number:   rec.Number,
			Email:    rec.Email,
			Total:    domain.USD(rec.Total),
			PlacedAt: rec.PlacedAt,
		}
		for _, li := range rec.Items {
			order.Items = append(order.Items, domain.LineItem{
				ID:            li.ID,
				Title:         li.Title,
				Image:         li.Image,
				UnitPrice:     domain.USD(li.UnitPrice),
				OriginalPrice: domain.USD(li.OriginalPrice),
				Quantity:      li.Quantity,
				StockSnapshot: li.StockSnapshot,
				Category:      li.Category,
			})
		}
		orders = append(orders, order)
	}

	return orders, nil
}
