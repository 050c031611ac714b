package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/model"
	"github.com/luxstay/hotel-reservation/internal/repository"
)

// ChainHandler serves the hotel chain catalog.  Reads are public; writes
// sit behind the staff JWT.
type ChainHandler struct {
	Chains *repository.ChainRepo
}

func NewChainHandler(chains *repository.ChainRepo) *ChainHandler {
	if chains == nil {
		panic("nil repository passed to NewChainHandler")
	}
	return &ChainHandler{Chains: chains}
}

type chainReq struct {
	Name string `json:"name"`
}

// List handles GET /v1/chains.
func (h *ChainHandler) List(c echo.Context) error {
	chains, err := h.Chains.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, chains)
}

// Get handles GET /v1/chains/:id.
func (h *ChainHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid chain id"})
	}
	chain, err := h.Chains.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrChainNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "chain not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, chain)
}

// Create handles POST /v1/chains (staff).
func (h *ChainHandler) Create(c echo.Context) error {
	var req chainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	chain := model.HotelChain{Name: req.Name}
	if err := h.Chains.Create(c.Request().Context(), &chain); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "chain name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create chain failed"})
	}
	return c.JSON(http.StatusCreated, chain)
}

// Update handles PUT /v1/chains/:id (staff).
func (h *ChainHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid chain id"})
	}
	var req chainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Chains.UpdateName(c.Request().Context(), id, req.Name); err != nil {
		switch err {
		case repository.ErrChainNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "chain not found"})
		case repository.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"error": "chain name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update chain failed"})
	}
	chain, err := h.Chains.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, chain)
}

// Delete handles DELETE /v1/chains/:id (staff).
func (h *ChainHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid chain id"})
	}
	if err := h.Chains.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrChainNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "chain not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete chain failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
