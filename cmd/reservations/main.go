package main

import (
	"time"

	bookingshandler "guesthouse/internal/bookings/handler"
	bookingsrepo "guesthouse/internal/bookings/repository"
	bookingsservice "guesthouse/internal/bookings/service"
	bookingsvalidator "guesthouse/internal/bookings/validator"
	inventoryhandler "guesthouse/internal/inventory/handler"
	inventoryrepo "guesthouse/internal/inventory/repository"
	inventoryservice "guesthouse/internal/inventory/service"
	inventoryvalidator "guesthouse/internal/inventory/validator"
	"guesthouse/internal/notify"
	occupancyhandler "guesthouse/internal/occupancy/handler"
	occupancyservice "guesthouse/internal/occupancy/service"
	usersrepo "guesthouse/internal/users/repository"
	"guesthouse/pkg/app"
	"guesthouse/pkg/auth"
	"guesthouse/pkg/clock"
	"guesthouse/pkg/config"
	"guesthouse/pkg/contracts"
)

const (
	ServiceName = "reservations"
	tokenTTL    = 24 * time.Hour
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")

	tokens := auth.NewTokenService(cfg.JWTSecret, tokenTTL)
	handlers, dispatcher := initServices(cfg)
	defer func() {
		if err := dispatcher.Close(); err != nil {
			cfg.Log.Warn("Failed to close notification dispatcher", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(tokens, handlers...)
	serverApp.Run()
}

func initServices(cfg *config.Config) ([]contracts.Handler, notify.Dispatcher) {
	resolver := clock.NewResolver(cfg.BusinessTZOffset)

	dispatcher, err := notify.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.KafkaNotificationTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize notification dispatcher", "error", err)
	}

	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepo.NewMongoBookingLockRepository(cfg)
	roomRepo := inventoryrepo.NewMongoRoomRepository(cfg)
	guestHouseRepo := inventoryrepo.NewMongoGuestHouseRepository(cfg)
	userRepo := usersrepo.NewMongoUserRepository(cfg)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		roomRepo,
		guestHouseRepo,
		userRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		dispatcher,
		resolver,
		cfg,
	)

	occupancyService := occupancyservice.NewOccupancyService(
		bookingRepo,
		roomRepo,
		guestHouseRepo,
		resolver,
		cfg,
	)

	inventoryValidator := inventoryvalidator.NewInventoryValidator(cfg.Log)
	roomService := inventoryservice.NewRoomService(roomRepo, guestHouseRepo, inventoryValidator, cfg)
	guestHouseService := inventoryservice.NewGuestHouseService(guestHouseRepo, roomRepo, bookingRepo, inventoryValidator, cfg)

	cfg.Log.Info("Reservation services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		occupancyhandler.NewOccupancyHandler(occupancyService, cfg.Log),
		inventoryhandler.NewRoomHandler(roomService, cfg.Log),
		inventoryhandler.NewGuestHouseHandler(guestHouseService, cfg.Log),
	}, dispatcher
}
