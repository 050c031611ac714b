package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/booking"
	"github.com/luxstay/hotel-reservation/internal/model"
	"github.com/luxstay/hotel-reservation/internal/queue"
	"github.com/luxstay/hotel-reservation/internal/repository"
	queue_publisher "github.com/luxstay/hotel-reservation/internal/service"
)

// ReservationHandler orchestrates the booking flow.  Every write that can
// affect the no-overlap invariant runs inside a transaction that first
// loads the target room FOR UPDATE; concurrent bookings of the same room
// therefore serialize, and the overlap re-check inside the transaction
// sees every committed competitor.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
	Customers    *repository.CustomerRepo
	Hotels       *repository.HotelRepo
	Employees    *repository.EmployeeRepo
	Policy       booking.Policy
}

func NewReservationHandler(reservations *repository.ReservationRepo, rooms *repository.RoomRepo, customers *repository.CustomerRepo, hotels *repository.HotelRepo, employees *repository.EmployeeRepo, pol booking.Policy) *ReservationHandler {
	if reservations == nil || rooms == nil || customers == nil || hotels == nil || employees == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Reservations: reservations,
		Rooms:        rooms,
		Customers:    customers,
		Hotels:       hotels,
		Employees:    employees,
		Policy:       pol,
	}
}

// ----- DTOs -----

type customerReq struct {
	FullName    string `json:"fullName"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
	IDType      string `json:"idType"`
	IDNumber    string `json:"idNumber"`
	Email       string `json:"email"`
}

type createReservationReq struct {
	RoomID     uint64       `json:"roomId"`
	StartDate  string       `json:"startDate"`
	EndDate    string       `json:"endDate"`
	CustomerID uint64       `json:"customerId"`
	Customer   *customerReq `json:"customer"`
	Notes      *string      `json:"notes"`
}

type updateReservationReq struct {
	RoomID        uint64  `json:"roomId"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	Notes         *string `json:"notes"`
}

// reservationResp wraps a record with its read-time effective status, so
// clients see COMPLETED for past stays without any background job having
// touched the row.
func reservationResp(r model.Reservation) echo.Map {
	return echo.Map{
		"reservation":     r,
		"effectiveStatus": string(booking.EffectiveStatus(&r, time.Now().UTC())),
	}
}

func conflictList(conflicts []model.Reservation) []echo.Map {
	out := make([]echo.Map, 0, len(conflicts))
	for _, cf := range conflicts {
		out = append(out, echo.Map{
			"id":        cf.ID,
			"startDate": cf.StartDate.Format(dateLayout),
			"endDate":   cf.EndDate.Format(dateLayout),
		})
	}
	return out
}

// Create handles POST /v1/reservations.  The guest supplies either an
// existing customerId or a full customer block that is matched against
// the normalized (idNumber, email) identity and created on first use.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate must be YYYY-MM-DD"})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate must be YYYY-MM-DD"})
	}
	if err := booking.ValidateRange(startDate, endDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.CustomerID == 0 && req.Customer == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customerId or customer is required"})
	}

	// Validate the inline customer block before opening a transaction.
	var newCustomer model.Customer
	if req.CustomerID == 0 {
		cr := req.Customer
		cr.FullName = strings.TrimSpace(cr.FullName)
		cr.IDNumber = strings.TrimSpace(cr.IDNumber)
		cr.Email = strings.ToLower(strings.TrimSpace(cr.Email))
		if cr.FullName == "" || cr.IDNumber == "" || cr.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer fullName, idNumber and email are required"})
		}
		idType, err := booking.ParseIDType(cr.IDType)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		dob, err := parseDate(cr.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer dateOfBirth must be YYYY-MM-DD"})
		}
		newCustomer = model.Customer{
			FullName:    cr.FullName,
			Address:     strings.TrimSpace(cr.Address),
			DateOfBirth: dob,
			IDNumber:    cr.IDNumber,
			IDType:      idType,
			Email:       cr.Email,
		}
	}

	ctx := c.Request().Context()
	tx, err := h.Rooms.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Room allocation lock: held until commit, serializes every
	// overlap-affecting write on this room.
	room, err := h.Rooms.GetByIDForUpdateTx(ctx, tx, req.RoomID)
	if err != nil {
		switch err {
		case repository.ErrRoomNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case repository.ErrLockWaitTimeout:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room is busy, retry the request"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var customer model.Customer
	if req.CustomerID != 0 {
		customer, err = h.Customers.GetByIDTx(ctx, tx, req.CustomerID)
		if err != nil {
			if err == repository.ErrCustomerNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	} else {
		customer = newCustomer
		if err := h.Customers.FindOrCreateTx(ctx, tx, &customer); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve customer failed"})
		}
	}

	// Conflict check under the lock.
	conflicts, err := h.Reservations.FindOverlappingTx(ctx, tx, room.ID, startDate, endDate, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(conflicts) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "room is already booked for the requested dates",
			"conflicts": conflictList(conflicts),
		})
	}

	res := model.Reservation{
		RoomID:        room.ID,
		CustomerID:    customer.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        string(booking.StatusActive),
		PaymentStatus: string(booking.PaymentUnpaid),
		Notes:         req.Notes,
	}
	if err := h.Reservations.CreateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.publishBooked(res, room, customer)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation":     res,
		"effectiveStatus": string(booking.EffectiveStatus(&res, time.Now().UTC())),
		"customer":        customer,
	})
}

// publishBooked emits the booked event off the request path; a broker
// outage must never fail a committed booking.
func (h *ReservationHandler) publishBooked(res model.Reservation, room model.Room, customer model.Customer) {
	hotelName := ""
	if hotel, err := h.Hotels.GetByID(context.Background(), room.HotelID); err == nil {
		hotelName = hotel.Name
	}
	ev := queue.ReservationBookedEvent{
		ReservationID: res.ID,
		RoomID:        room.ID,
		RoomNumber:    strconv.Itoa(room.RoomNumber),
		HotelID:       room.HotelID,
		HotelName:     hotelName,
		CustomerID:    customer.ID,
		CustomerName:  customer.FullName,
		StartDate:     res.StartDate.Format(dateLayout),
		EndDate:       res.EndDate.Format(dateLayout),
		Price:         room.Price,
		BookedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationBooked(ctx, ev)
	}()
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, reservationResp(res))
}

// List handles GET /v1/reservations (staff), with optional filters on
// room, customer, status, paymentStatus and a start-date window.
func (h *ReservationHandler) List(c echo.Context) error {
	var f repository.ListFilter
	if raw := c.QueryParam("roomId"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid roomId"})
		}
		f.RoomID = n
	}
	if raw := c.QueryParam("customerId"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customerId"})
		}
		f.CustomerID = n
	}
	if raw := c.QueryParam("status"); raw != "" {
		st, err := booking.ParseStatus(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		f.Status = string(st)
	}
	if raw := c.QueryParam("paymentStatus"); raw != "" {
		ps, err := booking.ParsePaymentStatus(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		f.PaymentStatus = string(ps)
	}
	fromRaw, toRaw := c.QueryParam("fromDate"), c.QueryParam("toDate")
	if (fromRaw == "") != (toRaw == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fromDate and toDate must be provided together"})
	}
	if fromRaw != "" {
		from, err := parseDate(fromRaw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "fromDate must be YYYY-MM-DD"})
		}
		to, err := parseDate(toRaw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "toDate must be YYYY-MM-DD"})
		}
		if to.Before(from) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "toDate must not be before fromDate"})
		}
		f.FromDate, f.ToDate = from, to
	}

	list, err := h.Reservations.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now().UTC()
	out := make([]echo.Map, 0, len(list))
	for i := range list {
		out = append(out, echo.Map{
			"reservation":     list[i],
			"effectiveStatus": string(booking.EffectiveStatus(&list[i], now)),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/reservations/:id (staff).  Room or date changes
// re-run the conflict check; when the room changes, both the old and the
// new room are locked in ascending id order so two staff members moving
// bookings between the same pair of rooms cannot deadlock.  Status and
// paymentStatus may be set directly here; cancelling through an update
// stamps cancelledAt like the cancel endpoint does.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var newStatus booking.Status
	if req.Status != "" {
		st, err := booking.ParseStatus(req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		newStatus = st
	}
	var newPayment booking.PaymentStatus
	if req.PaymentStatus != "" {
		ps, err := booking.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		newPayment = ps
	}
	var startOverride, endOverride *time.Time
	if req.StartDate != "" {
		v, err := parseDate(req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate must be YYYY-MM-DD"})
		}
		startOverride = &v
	}
	if req.EndDate != "" {
		v, err := parseDate(req.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate must be YYYY-MM-DD"})
		}
		endOverride = &v
	}

	ctx := c.Request().Context()
	tx, err := h.Rooms.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Exclusive row lock so a concurrent transition cannot commit
	// between this read and the full-row write below.
	res, err := h.Reservations.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		switch err {
		case repository.ErrReservationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrLockWaitTimeout:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation is busy, retry the request"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.Status == string(booking.StatusCancelled) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is cancelled"})
	}

	newRoomID := res.RoomID
	if req.RoomID != 0 {
		newRoomID = req.RoomID
	}
	newStart, newEnd := res.StartDate, res.EndDate
	if startOverride != nil {
		newStart = *startOverride
	}
	if endOverride != nil {
		newEnd = *endOverride
	}
	if err := booking.ValidateRange(newStart, newEnd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	datesChanged := !newStart.Equal(res.StartDate) || !newEnd.Equal(res.EndDate)
	roomChanged := newRoomID != res.RoomID

	if roomChanged || datesChanged {
		lockIDs := []uint64{res.RoomID}
		if roomChanged {
			if newRoomID < res.RoomID {
				lockIDs = []uint64{newRoomID, res.RoomID}
			} else {
				lockIDs = []uint64{res.RoomID, newRoomID}
			}
		}
		for _, roomID := range lockIDs {
			if _, err := h.Rooms.GetByIDForUpdateTx(ctx, tx, roomID); err != nil {
				switch err {
				case repository.ErrRoomNotFound:
					return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
				case repository.ErrLockWaitTimeout:
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room is busy, retry the request"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
			}
		}
		conflicts, err := h.Reservations.FindOverlappingTx(ctx, tx, newRoomID, newStart, newEnd, res.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if len(conflicts) > 0 {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":     "room is already booked for the requested dates",
				"conflicts": conflictList(conflicts),
			})
		}
	}

	res.RoomID = newRoomID
	res.StartDate = newStart
	res.EndDate = newEnd
	if newStatus != "" && string(newStatus) != res.Status {
		res.Status = string(newStatus)
		if newStatus == booking.StatusCancelled && res.CancelledAt == nil {
			now := time.Now().UTC()
			res.CancelledAt = &now
		}
	}
	if newPayment != "" {
		res.PaymentStatus = string(newPayment)
	}
	if req.Notes != nil {
		res.Notes = strPtr(*req.Notes)
	}
	if err := h.Reservations.UpdateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, reservationResp(res))
}

// Delete handles DELETE /v1/reservations/:id (staff).  Administrative
// hard delete, outside the state machine.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Cancel handles POST /v1/reservations/:id/cancel.  Idempotent: a second
// cancel returns the unchanged record.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.Bind(&req) // body is optional

	res, changed, code, errMsg := h.transition(c, id, func(r *model.Reservation, now time.Time) (bool, error) {
		return booking.Cancel(r, req.Notes, now), nil
	})
	if errMsg != "" {
		return c.JSON(code, echo.Map{"error": errMsg})
	}
	if changed {
		ev := queue.ReservationCancelledEvent{
			ReservationID: res.ID,
			RoomID:        res.RoomID,
			CustomerID:    res.CustomerID,
			CancelledAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if res.Notes != nil {
			ev.Notes = *res.Notes
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue_publisher.PublishReservationCancelled(ctx, ev)
		}()
	}
	return c.JSON(http.StatusOK, reservationResp(res))
}

// Pay handles POST /v1/reservations/:id/pay.  One-way UNPAID -> PAID;
// paying again is a no-op, paying a cancelled reservation is a conflict.
func (h *ReservationHandler) Pay(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, _, code, errMsg := h.transition(c, id, func(r *model.Reservation, _ time.Time) (bool, error) {
		return booking.Pay(r)
	})
	if errMsg != "" {
		return c.JSON(code, echo.Map{"error": errMsg})
	}
	return c.JSON(http.StatusOK, reservationResp(res))
}

// CheckIn handles PATCH /v1/reservations/:id/check-in (staff).  The
// acting employee is recorded as the handler when none is assigned yet.
func (h *ReservationHandler) CheckIn(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	employeeID, err := getEmployeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	res, _, code, errMsg := h.transition(c, id, func(r *model.Reservation, now time.Time) (bool, error) {
		changed, err := booking.CheckIn(r, h.Policy, now)
		if err != nil {
			return false, err
		}
		if changed && r.HandledByEmployeeID == nil {
			r.HandledByEmployeeID = &employeeID
		}
		return changed, nil
	})
	if errMsg != "" {
		return c.JSON(code, echo.Map{"error": errMsg})
	}
	return c.JSON(http.StatusOK, reservationResp(res))
}

// CheckOut handles PATCH /v1/reservations/:id/check-out (staff).
func (h *ReservationHandler) CheckOut(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, _, code, errMsg := h.transition(c, id, func(r *model.Reservation, now time.Time) (bool, error) {
		return booking.CheckOut(r, h.Policy, now)
	})
	if errMsg != "" {
		return c.JSON(code, echo.Map{"error": errMsg})
	}
	return c.JSON(http.StatusOK, reservationResp(res))
}

// AssignEmployee handles POST /v1/reservations/:id/assign-employee (staff).
func (h *ReservationHandler) AssignEmployee(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req struct {
		EmployeeID uint64 `json:"employeeId"`
	}
	if err := c.Bind(&req); err != nil || req.EmployeeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "employeeId is required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Employees.GetByID(ctx, req.EmployeeID); err != nil {
		if err == repository.ErrEmployeeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	res, _, code, errMsg := h.transition(c, id, func(r *model.Reservation, _ time.Time) (bool, error) {
		if r.HandledByEmployeeID != nil && *r.HandledByEmployeeID == req.EmployeeID {
			return false, nil
		}
		r.HandledByEmployeeID = &req.EmployeeID
		return true, nil
	})
	if errMsg != "" {
		return c.JSON(code, echo.Map{"error": errMsg})
	}
	return c.JSON(http.StatusOK, reservationResp(res))
}

// transition loads a reservation under an exclusive row lock, applies
// fn and persists the result when fn reports a change.  The lock
// serializes concurrent transitions on the same reservation, so a guard
// always sees the latest committed state rather than a stale snapshot.
// Room or date fields never change here, so no room lock is taken.
// Guard errors from the booking package map onto 409, everything else
// onto 500.
func (h *ReservationHandler) transition(c echo.Context, id uint64, fn func(*model.Reservation, time.Time) (bool, error)) (model.Reservation, bool, int, string) {
	ctx := c.Request().Context()
	var zero model.Reservation

	tx, err := h.Rooms.DB().BeginTx(ctx, nil)
	if err != nil {
		return zero, false, http.StatusInternalServerError, "failed to start transaction"
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		switch err {
		case repository.ErrReservationNotFound:
			return zero, false, http.StatusNotFound, "reservation not found"
		case repository.ErrLockWaitTimeout:
			return zero, false, http.StatusInternalServerError, "reservation is busy, retry the request"
		}
		return zero, false, http.StatusInternalServerError, "database error"
	}

	changed, err := fn(&res, time.Now().UTC())
	if err != nil {
		switch err {
		case booking.ErrReservationCancelled, booking.ErrNotActive, booking.ErrNotCheckedIn,
			booking.ErrBeforeStartDate, booking.ErrBeforeEndDate:
			return zero, false, http.StatusConflict, err.Error()
		}
		return zero, false, http.StatusInternalServerError, "transition failed"
	}

	if changed {
		if err := h.Reservations.UpdateTx(ctx, tx, &res); err != nil {
			return zero, false, http.StatusInternalServerError, "update reservation failed"
		}
	}
	if err := tx.Commit(); err != nil {
		return zero, false, http.StatusInternalServerError, "failed to commit transaction"
	}
	committed = true
	return res, changed, 0, ""
}
