package repository

// Integration tests against a real MySQL instance.  They are skipped
// unless TEST_DATABASE_DSN is set, e.g.
//
//	TEST_DATABASE_DSN='root:secret@tcp(localhost:3306)/luxstay_test?parseTime=true&loc=UTC' go test ./internal/repository/
//
// The schema from scripts/schema.sql must already be applied.

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/luxstay/hotel-reservation/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixtures creates a chain, hotel and room and returns the room id.
// Created rows are removed on cleanup; reservations cascade.
func fixtures(t *testing.T, db *sql.DB) uint64 {
	t.Helper()
	ctx := context.Background()
	tag := fmt.Sprintf("t%d", time.Now().UnixNano())

	res, err := db.ExecContext(ctx, `INSERT INTO hotel_chains (name) VALUES (?)`, "Chain "+tag)
	if err != nil {
		t.Fatalf("insert chain: %v", err)
	}
	chainID, _ := res.LastInsertId()
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM hotel_chains WHERE id = ?`, chainID)
	})

	res, err = db.ExecContext(ctx,
		`INSERT INTO hotels (chain_id, name, address, city) VALUES (?, ?, ?, ?)`,
		chainID, "Hotel "+tag, "1 Test St", "Testville")
	if err != nil {
		t.Fatalf("insert hotel: %v", err)
	}
	hotelID, _ := res.LastInsertId()

	res, err = db.ExecContext(ctx,
		`INSERT INTO rooms (hotel_id, room_number, price, capacity) VALUES (?, ?, ?, ?)`,
		hotelID, 101, "150.00", 2)
	if err != nil {
		t.Fatalf("insert room: %v", err)
	}
	roomID, _ := res.LastInsertId()
	return uint64(roomID)
}

func testCustomer(t *testing.T, db *sql.DB) uint64 {
	t.Helper()
	tag := fmt.Sprintf("c%d", time.Now().UnixNano())
	res, err := db.Exec(
		`INSERT INTO customers (full_name, address, date_of_birth, id_number, id_type, email, registration_date)
		 VALUES (?, ?, ?, ?, ?, ?, CURDATE())`,
		"Guest "+tag, "2 Test St", "1990-01-15", tag, "PASSPORT", tag+"@example.com")
	if err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	id, _ := res.LastInsertId()
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	})
	return uint64(id)
}

// bookOnce runs the booking transaction the handler runs: lock the room,
// check for overlap, insert.
func bookOnce(db *sql.DB, roomID, customerID uint64, start, end time.Time) (bool, error) {
	ctx := context.Background()
	rooms := NewRoomRepo(db)
	reservations := NewReservationRepo(db)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := rooms.GetByIDForUpdateTx(ctx, tx, roomID); err != nil {
		return false, err
	}
	busy, err := reservations.ExistsOverlappingTx(ctx, tx, roomID, start, end, 0)
	if err != nil {
		return false, err
	}
	if busy {
		return false, nil
	}
	r := model.Reservation{
		RoomID:        roomID,
		CustomerID:    customerID,
		StartDate:     start,
		EndDate:       end,
		Status:        "ACTIVE",
		PaymentStatus: "UNPAID",
	}
	if err := reservations.CreateTx(ctx, tx, &r); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// Two concurrent overlapping bookings of the same room must resolve to
// exactly one success; the room lock serializes them and the loser sees
// the winner's row in its overlap check.
func TestConcurrentOverlappingBookings(t *testing.T) {
	db := openTestDB(t)
	roomID := fixtures(t, db)
	custA := testCustomer(t, db)
	custB := testCustomer(t, db)

	start := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 5, 12, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make([]bool, 2)
	errs := make([]error, 2)
	for i, cust := range []uint64{custA, custB} {
		wg.Add(1)
		go func(i int, cust uint64) {
			defer wg.Done()
			results[i], errs[i] = bookOnce(db, roomID, cust, start, end)
		}(i, cust)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
	}
	wins := 0
	for _, ok := range results {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("want exactly 1 successful booking, got %d", wins)
	}
}

// Back-to-back stays sharing a boundary date must both succeed.
func TestBoundaryDatesDoNotConflict(t *testing.T) {
	db := openTestDB(t)
	roomID := fixtures(t, db)
	cust := testCustomer(t, db)

	first := [2]time.Time{
		time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 6, 5, 0, 0, 0, 0, time.UTC),
	}
	second := [2]time.Time{
		time.Date(2030, 6, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 6, 8, 0, 0, 0, 0, time.UTC),
	}

	ok, err := bookOnce(db, roomID, cust, first[0], first[1])
	if err != nil || !ok {
		t.Fatalf("first booking: ok=%v err=%v", ok, err)
	}
	ok, err = bookOnce(db, roomID, cust, second[0], second[1])
	if err != nil || !ok {
		t.Fatalf("boundary booking should succeed: ok=%v err=%v", ok, err)
	}
}

// Concurrent bookings with the same identity block must resolve to a
// single customer row; the duplicate-key retry turns the loser's insert
// into a lookup.
func TestFindOrCreateCustomerConcurrent(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepo(db)

	tag := fmt.Sprintf("dup%d", time.Now().UnixNano())
	ids := make([]uint64, 2)
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := context.Background()
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				errs[i] = err
				return
			}
			defer func() { _ = tx.Rollback() }()
			c := model.Customer{
				FullName:    "Dup Guest",
				DateOfBirth: time.Date(1985, 3, 2, 0, 0, 0, 0, time.UTC),
				IDNumber:    tag,
				IDType:      "PASSPORT",
				Email:       tag + "@example.com",
			}
			if errs[i] = customers.FindOrCreateTx(ctx, tx, &c); errs[i] != nil {
				return
			}
			ids[i] = c.ID
			errs[i] = tx.Commit()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("find-or-create %d: %v", i, err)
		}
	}
	if ids[0] == 0 || ids[0] != ids[1] {
		t.Fatalf("want one shared customer id, got %d and %d", ids[0], ids[1])
	}
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM customers WHERE id = ?`, ids[0])
	})
}

// Identity normalization must fold mixed-case emails onto one customer
// row: a second request with the same id number and a differently-cased
// email resolves to the first row instead of creating another.
func TestFindOrCreateCustomerMixedCaseEmail(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepo(db)
	ctx := context.Background()

	tag := fmt.Sprintf("case%d", time.Now().UnixNano())
	create := func(email string) uint64 {
		t.Helper()
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("begin tx: %v", err)
		}
		defer func() { _ = tx.Rollback() }()
		c := model.Customer{
			FullName:    "Case Guest",
			DateOfBirth: time.Date(1985, 3, 2, 0, 0, 0, 0, time.UTC),
			IDNumber:    tag,
			IDType:      "PASSPORT",
			Email:       email,
		}
		if err := customers.FindOrCreateTx(ctx, tx, &c); err != nil {
			t.Fatalf("find-or-create %q: %v", email, err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
		return c.ID
	}

	first := create(tag + "@Example.COM")
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM customers WHERE id = ?`, first)
	})
	second := create("  " + tag + "@example.com ")
	if first == 0 || first != second {
		t.Fatalf("want one shared customer id, got %d and %d", first, second)
	}
}

// A transition that locked the reservation after a concurrent
// cancellation committed must observe CANCELLED, not the pre-lock
// snapshot; otherwise its full-row write would resurrect the booking.
func TestTransitionLockSeesCommittedCancel(t *testing.T) {
	db := openTestDB(t)
	reservations := NewReservationRepo(db)
	roomID := fixtures(t, db)
	cust := testCustomer(t, db)

	start := time.Date(2030, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 8, 4, 0, 0, 0, 0, time.UTC)
	ok, err := bookOnce(db, roomID, cust, start, end)
	if err != nil || !ok {
		t.Fatalf("seed booking: ok=%v err=%v", ok, err)
	}
	var resID uint64
	if err := db.QueryRow(`SELECT id FROM reservations WHERE room_id = ?`, roomID).Scan(&resID); err != nil {
		t.Fatalf("load reservation id: %v", err)
	}

	ctx := context.Background()
	tx1, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx1: %v", err)
	}
	defer func() { _ = tx1.Rollback() }()
	res1, err := reservations.GetByIDForUpdateTx(ctx, tx1, resID)
	if err != nil {
		t.Fatalf("lock in tx1: %v", err)
	}

	seen := make(chan string, 1)
	go func() {
		tx2, err := db.BeginTx(ctx, nil)
		if err != nil {
			seen <- "begin tx2: " + err.Error()
			return
		}
		defer func() { _ = tx2.Rollback() }()
		res2, err := reservations.GetByIDForUpdateTx(ctx, tx2, resID)
		if err != nil {
			seen <- "lock in tx2: " + err.Error()
			return
		}
		seen <- res2.Status
	}()

	// Cancel and commit while tx2 is blocked on the row lock.
	time.Sleep(200 * time.Millisecond)
	now := time.Now().UTC()
	res1.Status = "CANCELLED"
	res1.CancelledAt = &now
	if err := reservations.UpdateTx(ctx, tx1, &res1); err != nil {
		t.Fatalf("cancel in tx1: %v", err)
	}
	if err := tx1.Commit(); err != nil {
		t.Fatalf("commit tx1: %v", err)
	}

	if got := <-seen; got != "CANCELLED" {
		t.Fatalf("tx2 observed status %q after lock, want CANCELLED", got)
	}
}

// Availability must exclude a room with an overlapping ACTIVE
// reservation and include it again once the reservation is cancelled.
func TestBookedRoomIDsAvailability(t *testing.T) {
	db := openTestDB(t)
	reservations := NewReservationRepo(db)
	roomID := fixtures(t, db)
	cust := testCustomer(t, db)

	start := time.Date(2030, 7, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 7, 14, 0, 0, 0, 0, time.UTC)
	ok, err := bookOnce(db, roomID, cust, start, end)
	if err != nil || !ok {
		t.Fatalf("seed booking: ok=%v err=%v", ok, err)
	}

	ctx := context.Background()
	contains := func(ids []uint64, id uint64) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	}

	booked, err := reservations.BookedRoomIDs(ctx,
		time.Date(2030, 7, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 7, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("booked room ids: %v", err)
	}
	if !contains(booked, roomID) {
		t.Fatalf("room %d should be excluded for an overlapping range", roomID)
	}

	// Touching range only: [14,16) starts on the checkout day.
	booked, err = reservations.BookedRoomIDs(ctx,
		time.Date(2030, 7, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 7, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("booked room ids: %v", err)
	}
	if contains(booked, roomID) {
		t.Fatalf("room %d should be free for a touching range", roomID)
	}

	if _, err := db.Exec(`UPDATE reservations SET status = 'CANCELLED', cancelled_at = NOW() WHERE room_id = ?`, roomID); err != nil {
		t.Fatalf("cancel reservation: %v", err)
	}
	booked, err = reservations.BookedRoomIDs(ctx,
		time.Date(2030, 7, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 7, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("booked room ids: %v", err)
	}
	if contains(booked, roomID) {
		t.Fatalf("cancelled reservation must not block room %d", roomID)
	}
}
