package medication

import "time"

// LowStockThreshold is the stock level below which a medication appears
// in low-stock listings and the dashboard alert count.
const LowStockThreshold = 10

// Medication is one inventory item dispensable through prescriptions.
type Medication struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter narrows medication listings by a name/description substring.
type Filter struct {
	Term string
}
