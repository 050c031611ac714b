package model

import "time"

// Hotel is a single property belonging to a chain.  Rooms reference
// hotels by id; the booking engine never mutates hotel fields.
//
// Fields:
//  ID        – primary key identifier.
//  ChainID   – chain the hotel belongs to.
//  Name      – display name of the hotel.
//  Address   – street address.
//  City      – city used by availability search filters.
//  Email     – contact address, optional.
//  Rating    – star rating 1..5, optional.
//  ImageURL  – cover image, assigned from the URL bag when absent.
type Hotel struct {
	ID        uint64    `json:"id"`        // hotels.id
	ChainID   uint64    `json:"chainId"`   // hotels.chain_id
	Name      string    `json:"name"`      // hotels.name
	Address   string    `json:"address"`   // hotels.address
	City      string    `json:"city"`      // hotels.city
	Email     *string   `json:"email"`     // hotels.email (nullable)
	Rating    *int      `json:"rating"`    // hotels.rating (nullable, 1..5)
	ImageURL  *string   `json:"imageUrl"`  // hotels.image_url (nullable)
	CreatedAt time.Time `json:"createdAt"` // hotels.created_at
	UpdatedAt time.Time `json:"updatedAt"` // hotels.updated_at
}
