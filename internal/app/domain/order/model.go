package order

import (
	"math"
	"time"

	"github.com/plateful/backend/internal/app/domain/cart"
)

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusPending marks an order whose charge has not completed. A failed
	// charge leaves the order in this state as the audit trail of the attempt.
	StatusPending Status = "Pending"
	// StatusPaid marks an order whose charge succeeded.
	StatusPaid Status = "Paid"
)

// Order is the immutable-once-created record of a checkout attempt. Orders
// are never deleted; the collection is an append-only audit log.
type Order struct {
	ID          string    `json:"orderId"`
	Total       int64     `json:"total"` // integer cents
	Cart        cart.Cart `json:"cart"`
	Status      Status    `json:"status"`
	TimeCreated time.Time `json:"timeCreated"`
}

// TotalCents sums the cart's dollar prices and converts once to integer
// cents. Multiplying after summing avoids compounding per-item rounding.
// Duplicate items are summed as-is.
func TotalCents(c cart.Cart) int64 {
	var total float64
	for _, item := range c {
		total += item.Price
	}
	return int64(math.Round(total * 100))
}
