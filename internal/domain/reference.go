package domain

import "time"

// Currency is read-only reference data for audit and display.
type Currency struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Network is a settlement rail (bank wire, crypto network) referenced by
// transactions for audit and display.
type Network struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
