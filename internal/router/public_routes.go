package router

import (
	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/handler"
)

// RegisterPublic registers the unauthenticated guest surface: catalog
// reads, availability search and the booking operations a guest performs
// on their own reservation.  cacheMW wraps the availability search (a
// read-heavy endpoint tolerant of short TTL staleness) and rateMW guards
// reservation creation; either may be a no-op when Redis is down.
func RegisterPublic(e *echo.Echo, chains *handler.ChainHandler, hotels *handler.HotelHandler, rooms *handler.RoomHandler, avail *handler.AvailabilityHandler, res *handler.ReservationHandler, cacheMW, rateMW echo.MiddlewareFunc) {
	e.GET("/v1/chains", chains.List)
	e.GET("/v1/chains/:id", chains.Get)

	e.GET("/v1/hotels", hotels.List)
	e.GET("/v1/hotels/:id", hotels.Get)
	e.GET("/v1/hotels/:id/rooms", hotels.ListRooms)

	e.GET("/v1/rooms", rooms.List)
	// Static segment wins over :id in Echo, so /rooms/available does not
	// shadow /rooms/:id.
	e.GET("/v1/rooms/available", avail.Search, cacheMW)
	e.GET("/v1/rooms/:id", rooms.Get)

	e.POST("/v1/reservations", res.Create, rateMW)
	e.GET("/v1/reservations/:id", res.Get)
	e.POST("/v1/reservations/:id/cancel", res.Cancel)
	e.POST("/v1/reservations/:id/pay", res.Pay)
}
