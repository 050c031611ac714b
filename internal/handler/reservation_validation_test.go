package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// Validation runs before any repository call, so a zero-value handler is
// enough to drive the 400 paths.

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func getQuery(t *testing.T, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func errField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	msg, _ := body["error"].(string)
	return msg
}

func TestCreateReservationValidation(t *testing.T) {
	h := &ReservationHandler{}

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing room", `{"startDate":"2026-09-01","endDate":"2026-09-03"}`, "roomId is required"},
		{"bad start date", `{"roomId":1,"startDate":"09/01/2026","endDate":"2026-09-03"}`, "startDate must be YYYY-MM-DD"},
		{"bad end date", `{"roomId":1,"startDate":"2026-09-01","endDate":"nope"}`, "endDate must be YYYY-MM-DD"},
		{"end not after start", `{"roomId":1,"startDate":"2026-09-03","endDate":"2026-09-03"}`, ""},
		{"no customer", `{"roomId":1,"startDate":"2026-09-01","endDate":"2026-09-03"}`, "customerId or customer is required"},
		{"blank customer fields", `{"roomId":1,"startDate":"2026-09-01","endDate":"2026-09-03","customer":{"fullName":"  ","idNumber":"","email":""}}`, "customer fullName, idNumber and email are required"},
		{"bad id type", `{"roomId":1,"startDate":"2026-09-01","endDate":"2026-09-03","customer":{"fullName":"A B","idNumber":"X1","email":"a@b.com","idType":"LIBRARY_CARD","dateOfBirth":"1990-01-01"}}`, ""},
		{"bad date of birth", `{"roomId":1,"startDate":"2026-09-01","endDate":"2026-09-03","customer":{"fullName":"A B","idNumber":"X1","email":"a@b.com","idType":"PASSPORT","dateOfBirth":"Jan 1 1990"}}`, "customer dateOfBirth must be YYYY-MM-DD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON(t, "/v1/reservations", tc.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if tc.want != "" && errField(t, rec) != tc.want {
				t.Fatalf("error = %q, want %q", errField(t, rec), tc.want)
			}
		})
	}
}

func TestUpdateReservationValidation(t *testing.T) {
	h := &ReservationHandler{}

	cases := []struct {
		name string
		body string
		want string
	}{
		{"unknown status", `{"status":"NOT_A_STATUS"}`, `invalid status "NOT_A_STATUS"`},
		{"unknown payment status", `{"paymentStatus":"REFUNDED"}`, `invalid paymentStatus "REFUNDED"`},
		{"bad start date", `{"startDate":"soon"}`, "startDate must be YYYY-MM-DD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON(t, "/v1/reservations/7", tc.body)
			c.SetParamNames("id")
			c.SetParamValues("7")
			if err := h.Update(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if tc.want != "" && errField(t, rec) != tc.want {
				t.Fatalf("error = %q, want %q", errField(t, rec), tc.want)
			}
		})
	}
}

func TestListReservationsValidation(t *testing.T) {
	h := &ReservationHandler{}

	cases := []struct {
		name  string
		query string
	}{
		{"bad roomId", "roomId=abc"},
		{"bad customerId", "customerId=-4"},
		{"bad status", "status=PENDING"},
		{"bad payment status", "paymentStatus=REFUNDED"},
		{"fromDate without toDate", "fromDate=2026-09-01"},
		{"toDate without fromDate", "toDate=2026-09-10"},
		{"bad fromDate", "fromDate=soon&toDate=2026-09-10"},
		{"window reversed", "fromDate=2026-09-10&toDate=2026-09-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := getQuery(t, "/v1/reservations?"+tc.query)
			if err := h.List(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestTransitionEndpointsRejectBadID(t *testing.T) {
	h := &ReservationHandler{}

	endpoints := []struct {
		name string
		call func(echo.Context) error
	}{
		{"cancel", h.Cancel},
		{"pay", h.Pay},
		{"get", h.Get},
		{"delete", h.Delete},
	}
	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			c, rec := postJSON(t, "/v1/reservations/zero", `{}`)
			c.SetParamNames("id")
			c.SetParamValues("zero")
			if err := ep.call(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCheckInRequiresIdentity(t *testing.T) {
	h := &ReservationHandler{}
	c, rec := postJSON(t, "/v1/reservations/7/check-in", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAvailabilitySearchValidation(t *testing.T) {
	h := &AvailabilityHandler{}

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"missing dates", "", "startDate must be YYYY-MM-DD"},
		{"bad end date", "startDate=2026-09-01&endDate=tomorrow", "endDate must be YYYY-MM-DD"},
		{"reversed range", "startDate=2026-09-05&endDate=2026-09-01", ""},
		{"zero length stay", "startDate=2026-09-05&endDate=2026-09-05", ""},
		{"bad hotelId", "startDate=2026-09-01&endDate=2026-09-05&hotelId=h1", "invalid hotelId"},
		{"bad capacity", "startDate=2026-09-01&endDate=2026-09-05&capacity=0", "invalid capacity"},
		{"bad maxPrice", "startDate=2026-09-01&endDate=2026-09-05&maxPrice=cheap", "invalid maxPrice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := getQuery(t, "/v1/rooms/available?"+tc.query)
			if err := h.Search(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if tc.want != "" && errField(t, rec) != tc.want {
				t.Fatalf("error = %q, want %q", errField(t, rec), tc.want)
			}
		})
	}
}
