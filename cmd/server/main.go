package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/luxstay/hotel-reservation/internal/booking"
	"github.com/luxstay/hotel-reservation/internal/config"
	"github.com/luxstay/hotel-reservation/internal/database"
	"github.com/luxstay/hotel-reservation/internal/handler"
	"github.com/luxstay/hotel-reservation/internal/imageurl"
	"github.com/luxstay/hotel-reservation/internal/middleware"
	"github.com/luxstay/hotel-reservation/internal/queue"
	"github.com/luxstay/hotel-reservation/internal/repository"
	"github.com/luxstay/hotel-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.LockWaitSeconds)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when unavailable both the availability cache and
	// the booking rate limiter become no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	images := imageurl.Load(cfg.ImageURLFile)

	chainRepo := repository.NewChainRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	pol := booking.Policy{
		EnforceCheckInAfterStart: cfg.EnforceCheckInAfterStart,
		EnforceCheckOutAfterEnd:  cfg.EnforceCheckOutAfterEnd,
	}

	authH := handler.NewAuthHandler(cfg, employeeRepo, tokenRepo)
	chainH := handler.NewChainHandler(chainRepo)
	hotelH := handler.NewHotelHandler(hotelRepo, roomRepo, images)
	roomH := handler.NewRoomHandler(roomRepo, images)
	customerH := handler.NewCustomerHandler(customerRepo)
	employeeH := handler.NewEmployeeHandler(employeeRepo)
	availH := handler.NewAvailabilityHandler(roomRepo, reservationRepo)
	resH := handler.NewReservationHandler(reservationRepo, roomRepo, customerRepo, hotelRepo, employeeRepo, pol)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, chainH, hotelH, roomH, availH, resH, cacheMW, rateMW)
	router.RegisterStaff(e, chainH, hotelH, roomH, customerH, employeeH, resH, cfg.JWTSecret)

	// Background consumer appends booked/cancelled events to the
	// reservations log; it reconnects on broker failure.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
