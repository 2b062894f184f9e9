package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is the artifact of a (simulated) checkout: a snapshot of the cart at
// the moment of purchase.
type Order struct {
	ID       uuid.UUID
	Number   int
	Email    string
	Items    []LineItem
	Total    Money
	PlacedAt time.Time
}
