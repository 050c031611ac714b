package router

import (
	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/handler"
	"github.com/luxstay/hotel-reservation/internal/middleware"
)

// RegisterStaff registers the JWT-protected staff surface.  Front desk
// and managers share most of it; employee writes are MANAGER-only.
func RegisterStaff(e *echo.Echo, chains *handler.ChainHandler, hotels *handler.HotelHandler, rooms *handler.RoomHandler, customers *handler.CustomerHandler, employees *handler.EmployeeHandler, res *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MANAGER", "FRONT_DESK"),
	)

	// ---- Reservations ----
	g.GET("/reservations", res.List)
	g.PUT("/reservations/:id", res.Update)
	g.DELETE("/reservations/:id", res.Delete)
	g.PATCH("/reservations/:id/check-in", res.CheckIn)
	g.PATCH("/reservations/:id/check-out", res.CheckOut)
	g.POST("/reservations/:id/assign-employee", res.AssignEmployee)

	// ---- Catalog writes ----
	g.POST("/chains", chains.Create)
	g.PUT("/chains/:id", chains.Update)
	g.DELETE("/chains/:id", chains.Delete)

	g.POST("/hotels", hotels.Create)
	g.PUT("/hotels/:id", hotels.Update)
	g.DELETE("/hotels/:id", hotels.Delete)

	g.POST("/rooms", rooms.Create)
	g.PUT("/rooms/:id", rooms.Update)
	g.DELETE("/rooms/:id", rooms.Delete)

	// ---- Customers ----
	g.GET("/customers", customers.List)
	g.GET("/customers/:id", customers.Get)
	g.PUT("/customers/:id", customers.Update)
	g.DELETE("/customers/:id", customers.Delete)

	// ---- Employees ----
	g.GET("/employees", employees.List)
	g.GET("/employees/:id", employees.Get)

	mgr := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MANAGER"),
	)
	mgr.PUT("/employees/:id", employees.Update)
	mgr.DELETE("/employees/:id", employees.Delete)
}
