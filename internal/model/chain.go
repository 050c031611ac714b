package model

import "time"

// HotelChain groups hotels operated under a single brand.  Chain names
// are unique across the system.
type HotelChain struct {
	ID        uint64    `json:"id"`        // hotel_chains.id
	Name      string    `json:"name"`      // hotel_chains.name (unique)
	CreatedAt time.Time `json:"createdAt"` // hotel_chains.created_at
	UpdatedAt time.Time `json:"updatedAt"` // hotel_chains.updated_at
}
