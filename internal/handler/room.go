package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/imageurl"
	"github.com/luxstay/hotel-reservation/internal/model"
	"github.com/luxstay/hotel-reservation/internal/repository"
)

// RoomHandler serves the room catalog.  Reads are public; writes sit
// behind the staff JWT.  Rooms created without an image get one assigned
// from the URL bag.
type RoomHandler struct {
	Rooms  *repository.RoomRepo
	Images *imageurl.Selector
}

func NewRoomHandler(rooms *repository.RoomRepo, images *imageurl.Selector) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Images: images}
}

type roomReq struct {
	HotelID            uint64  `json:"hotelId"`
	RoomNumber         int     `json:"roomNumber"`
	Price              string  `json:"price"`
	Capacity           int     `json:"capacity"`
	Extendable         bool    `json:"extendable"`
	Amenities          *string `json:"amenities"`
	ProblemsAndDamages *string `json:"problemsAndDamages"`
	ImageURL           *string `json:"imageUrl"`
}

func bindRoom(c echo.Context, requireHotel bool, m *model.Room) (int, string) {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return http.StatusBadRequest, "invalid body"
	}
	if requireHotel && req.HotelID == 0 {
		return http.StatusBadRequest, "hotelId is required"
	}
	if req.RoomNumber <= 0 {
		return http.StatusBadRequest, "roomNumber must be positive"
	}
	if req.Capacity <= 0 {
		return http.StatusBadRequest, "capacity must be positive"
	}
	req.Price = strings.TrimSpace(req.Price)
	if req.Price == "" {
		return http.StatusBadRequest, "price is required"
	}
	if _, err := strconv.ParseFloat(req.Price, 64); err != nil {
		return http.StatusBadRequest, "price must be a decimal number"
	}
	m.HotelID = req.HotelID
	m.RoomNumber = req.RoomNumber
	m.Price = req.Price
	m.Capacity = req.Capacity
	m.Extendable = req.Extendable
	m.Amenities = req.Amenities
	m.ProblemsAndDamages = req.ProblemsAndDamages
	m.ImageURL = req.ImageURL
	return 0, ""
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, room)
}

// Create handles POST /v1/rooms (staff).
func (h *RoomHandler) Create(c echo.Context) error {
	var room model.Room
	if code, msg := bindRoom(c, true, &room); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	if room.ImageURL == nil && h.Images != nil {
		if url, ok := h.Images.Next(); ok {
			room.ImageURL = &url
		}
	}
	if err := h.Rooms.Create(c.Request().Context(), &room); err != nil {
		switch err {
		case repository.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in hotel"})
		case repository.ErrHotelNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, room)
}

// Update handles PUT /v1/rooms/:id (staff).  The hotel reference is not
// updatable; move a room by deleting and recreating it.
func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var room model.Room
	if code, msg := bindRoom(c, false, &room); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	room.ID = id
	if err := h.Rooms.Update(c.Request().Context(), &room); err != nil {
		switch err {
		case repository.ErrRoomNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case repository.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in hotel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/rooms/:id (staff).
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
