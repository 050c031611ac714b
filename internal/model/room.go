package model

import "time"

// Room is the unit of booking.  A room belongs to exactly one hotel and
// carries a room number unique within that hotel.  Attribute fields are
// irrelevant to booking logic; only the id participates in overlap
// checks and locking.
//
// Fields:
//  ID                 – primary key identifier.
//  HotelID            – hotel the room belongs to.
//  RoomNumber         – number unique per hotel.
//  Price              – nightly price; stored as DECIMAL, carried as string
//                       to avoid float rounding in money values.
//  Capacity           – maximum number of guests.
//  Extendable         – whether an extra bed can be added.
//  Amenities          – free text, optional.
//  ProblemsAndDamages – known issues, optional.
//  ImageURL           – assigned from the URL bag when absent on create.
type Room struct {
	ID                 uint64    `json:"id"`                 // rooms.id
	HotelID            uint64    `json:"hotelId"`            // rooms.hotel_id
	RoomNumber         int       `json:"roomNumber"`         // rooms.room_number
	Price              string    `json:"price"`              // rooms.price (DECIMAL(10,2))
	Capacity           int       `json:"capacity"`           // rooms.capacity
	Extendable         bool      `json:"extendable"`         // rooms.extendable
	Amenities          *string   `json:"amenities"`          // rooms.amenities (nullable)
	ProblemsAndDamages *string   `json:"problemsAndDamages"` // rooms.problems_and_damages (nullable)
	ImageURL           *string   `json:"imageUrl"`           // rooms.image_url (nullable)
	CreatedAt          time.Time `json:"createdAt"`          // rooms.created_at
	UpdatedAt          time.Time `json:"updatedAt"`          // rooms.updated_at
}
