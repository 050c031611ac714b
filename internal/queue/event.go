// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedEvent is published when a reservation is successfully
// created. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ReservationBookedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	RoomNumber    string `json:"room_number"`
	HotelID       uint64 `json:"hotel_id"`
	HotelName     string `json:"hotel_name"`
	CustomerID    uint64 `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Price         string `json:"price"`
	BookedAt      string `json:"booked_at"`
}

// ReservationCancelledEvent is published when a reservation transitions to
// CANCELLED, whether by the guest or by staff.
type ReservationCancelledEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	CustomerID    uint64 `json:"customer_id"`
	CancelledAt   string `json:"cancelled_at"`
	Notes         string `json:"notes,omitempty"`
}
