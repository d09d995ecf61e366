package entity

import "time"

// OrderCandidate is a single order reconstructed from one screenshot.
// Timestamps are absolute, anchored to the image's date anchor.
type OrderCandidate struct {
	AcceptedAt  time.Time `json:"accepted_at"`
	DeliveredAt time.Time `json:"delivered_at"`
	VendorName  string    `json:"vendor_name"`
}

// Order represents a persisted order row for data transfer between layers.
// The two timestamps are stored in the canonical DD/MM/YYYY HH:MM exchange
// form; historical rows may carry legacy formats, which the deduplicator
// normalizes before comparison.
type Order struct {
	ID               int     `json:"id" db:"id"`
	ShiftID          *int    `json:"shift_id,omitempty" db:"shift_id"`
	AcceptedAt       string  `json:"accepted_at" db:"accepted_at"`
	DeliveredAt      string  `json:"delivered_at" db:"delivered_at"`
	VendorName       string  `json:"vendor_name" db:"vendor_name"`
	VendorAddress    string  `json:"vendor_address" db:"vendor_address"`
	BusinessType     string  `json:"business_type" db:"business_type"`
	Chain            string  `json:"chain" db:"chain"`
	VendorPostalCode int     `json:"vendor_postal_code" db:"vendor_postal_code"`
	CustomerPostal   int     `json:"customer_postal_code" db:"customer_postal_code"`
	Tip              float64 `json:"tip" db:"tip"`
}

// Shift is an externally managed work-session window. End is already rolled
// to the next calendar day when the session crosses midnight.
type Shift struct {
	ID    int       `json:"id" db:"id"`
	Date  time.Time `json:"date" db:"date"`
	Start time.Time `json:"start" db:"start_at"`
	End   time.Time `json:"end" db:"end_at"`
}

// VendorInfo is the remembered metadata for a previously observed vendor.
type VendorInfo struct {
	BusinessType string `json:"business_type"`
	Chain        string `json:"chain"`
	PostalCode   int    `json:"postal_code"`
	Address      string `json:"address"`
}
