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

// HotelHandler serves the hotel catalog, including the rooms subresource.
// Hotels created without an image get one assigned from the URL bag.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
	Images *imageurl.Selector
}

func NewHotelHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo, images *imageurl.Selector) *HotelHandler {
	if hotels == nil || rooms == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, Rooms: rooms, Images: images}
}

type hotelReq struct {
	ChainID  uint64  `json:"chainId"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Email    *string `json:"email"`
	Rating   *int    `json:"rating"`
	ImageURL *string `json:"imageUrl"`
}

func (h *HotelHandler) bindHotel(c echo.Context, m *model.Hotel) (int, string) {
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return http.StatusBadRequest, "invalid body"
	}
	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)
	if req.ChainID == 0 || req.Name == "" || req.City == "" {
		return http.StatusBadRequest, "chainId, name and city are required"
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return http.StatusBadRequest, "rating must be between 1 and 5"
	}
	m.ChainID = req.ChainID
	m.Name = req.Name
	m.Address = strings.TrimSpace(req.Address)
	m.City = req.City
	m.Email = req.Email
	m.Rating = req.Rating
	m.ImageURL = req.ImageURL
	return 0, ""
}

// List handles GET /v1/hotels?chainId&city.
func (h *HotelHandler) List(c echo.Context) error {
	var chainID uint64
	if raw := c.QueryParam("chainId"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid chainId"})
		}
		chainID = n
	}
	hotels, err := h.Hotels.List(c.Request().Context(), chainID, strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, hotels)
}

// Get handles GET /v1/hotels/:id.
func (h *HotelHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, hotel)
}

// ListRooms handles GET /v1/hotels/:id/rooms.
func (h *HotelHandler) ListRooms(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	if _, err := h.Hotels.GetByID(c.Request().Context(), id); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Rooms.ListByHotel(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// Create handles POST /v1/hotels (staff).
func (h *HotelHandler) Create(c echo.Context) error {
	var hotel model.Hotel
	if code, msg := h.bindHotel(c, &hotel); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	if hotel.ImageURL == nil && h.Images != nil {
		if url, ok := h.Images.Next(); ok {
			hotel.ImageURL = &url
		}
	}
	if err := h.Hotels.Create(c.Request().Context(), &hotel); err != nil {
		if err == repository.ErrChainNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "chain does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	return c.JSON(http.StatusCreated, hotel)
}

// Update handles PUT /v1/hotels/:id (staff).
func (h *HotelHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var hotel model.Hotel
	if code, msg := h.bindHotel(c, &hotel); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	hotel.ID = id
	if err := h.Hotels.Update(c.Request().Context(), &hotel); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hotel failed"})
	}
	return c.JSON(http.StatusOK, hotel)
}

// Delete handles DELETE /v1/hotels/:id (staff).
func (h *HotelHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	if err := h.Hotels.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hotel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
