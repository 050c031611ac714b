package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/repository"
)

// EmployeeHandler exposes staff records.  Account creation happens via
// /v1/auth/register; this handler covers listing and profile upkeep.
// Writes are MANAGER-only, enforced by route middleware.
type EmployeeHandler struct {
	Employees *repository.EmployeeRepo
}

func NewEmployeeHandler(employees *repository.EmployeeRepo) *EmployeeHandler {
	if employees == nil {
		panic("nil repository passed to NewEmployeeHandler")
	}
	return &EmployeeHandler{Employees: employees}
}

// List handles GET /v1/employees (staff).
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.Employees.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, employees)
}

// Get handles GET /v1/employees/:id (staff).
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid employee id"})
	}
	emp, err := h.Employees.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrEmployeeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, emp)
}

// Update handles PUT /v1/employees/:id (MANAGER).
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid employee id"})
	}
	var req struct {
		FullName string `json:"fullName"`
		Address  string `json:"address"`
		Position string `json:"position"`
		Role     string `json:"role"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullName is required"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != "" && role != "MANAGER" && role != "FRONT_DESK" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be MANAGER or FRONT_DESK"})
	}

	ctx := c.Request().Context()
	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEmployeeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	emp.FullName = req.FullName
	emp.Address = strings.TrimSpace(req.Address)
	emp.Position = strings.TrimSpace(req.Position)
	if role != "" {
		emp.Role = role
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	if err := h.Employees.Update(ctx, &emp); err != nil {
		if err == repository.ErrEmployeeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update employee failed"})
	}
	return c.JSON(http.StatusOK, emp)
}

// Delete handles DELETE /v1/employees/:id (MANAGER).
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid employee id"})
	}
	if err := h.Employees.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrEmployeeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete employee failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
