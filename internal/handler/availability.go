package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/booking"
	"github.com/luxstay/hotel-reservation/internal/repository"
)

// AvailabilityHandler answers "which rooms are free for this stay".
// The search is a point-in-time read with no locking: rooms with any
// non-cancelled reservation overlapping the requested range are
// excluded, then the structural filters narrow the remainder.  A result
// is not a hold; the booking transaction re-checks under the room lock.
type AvailabilityHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
}

func NewAvailabilityHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *AvailabilityHandler {
	if rooms == nil || reservations == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Rooms: rooms, Reservations: reservations}
}

// Search handles GET /v1/rooms/available.
func (h *AvailabilityHandler) Search(c echo.Context) error {
	startDate, err := parseDate(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate must be YYYY-MM-DD"})
	}
	endDate, err := parseDate(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate must be YYYY-MM-DD"})
	}
	if err := booking.ValidateRange(startDate, endDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	filter := repository.AvailabilityFilter{
		City:      strings.TrimSpace(c.QueryParam("city")),
		ChainName: strings.TrimSpace(c.QueryParam("chainName")),
	}
	if raw := c.QueryParam("hotelId"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotelId"})
		}
		filter.HotelID = n
	}
	if raw := c.QueryParam("capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid capacity"})
		}
		filter.Capacity = n
	}
	if raw := strings.TrimSpace(c.QueryParam("maxPrice")); raw != "" {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maxPrice"})
		}
		filter.MaxPrice = raw
	}

	ctx := c.Request().Context()
	booked, err := h.Reservations.BookedRoomIDs(ctx, startDate, endDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Rooms.SearchAvailable(ctx, filter, booked)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"startDate": startDate.Format(dateLayout),
		"endDate":   endDate.Format(dateLayout),
		"count":     len(rooms),
		"rooms":     rooms,
	})
}
