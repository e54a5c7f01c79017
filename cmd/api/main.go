package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MousScales/Momsites/internal/config"
	"github.com/MousScales/Momsites/internal/database"
	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/events"
	router "github.com/MousScales/Momsites/internal/http"
	"github.com/MousScales/Momsites/internal/modules/admin"
	"github.com/MousScales/Momsites/internal/modules/booking"
	"github.com/MousScales/Momsites/internal/modules/calendar"
	"github.com/MousScales/Momsites/internal/modules/pages"
	"github.com/MousScales/Momsites/internal/modules/payment"
	jwtsvc "github.com/MousScales/Momsites/internal/pkg/jwt"
	"github.com/MousScales/Momsites/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("level=fatal msg=config error err=%v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx := context.Background()
	var closers []io.Closer

	// Each component degrades to "not configured" instead of stopping the
	// process; the interfaces must stay untyped nil in that case.
	var gateway payment.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey)
	}

	store, closer := openBookingStore(ctx, cfg)
	if closer != nil {
		closers = append(closers, closer)
	}

	var (
		publisher booking.EventPublisher
		rabbit    *events.RabbitPublisher
	)
	if cfg.RabbitMQURL != "" {
		rabbit = events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQDialTimeout, log.Printf)
		if err := rabbit.Connect(); err != nil {
			log.Printf("level=warn msg=rabbitmq not reachable yet, will retry on publish err=%v", err)
		}
		publisher = rabbit
		log.Println("level=info msg=booking events enabled queue=" + events.BookingCreatedQueue)
	}

	var calendarEvents calendar.EventStore
	if cfg.CalendarEnabled() {
		ge, err := calendar.NewGoogleEvents(ctx, cfg.CalendarID, cfg.CalendarCredentials, cfg.CredentialsFile)
		if err != nil {
			log.Printf("level=error msg=google calendar unavailable, sync disabled err=%v", err)
		} else {
			calendarEvents = ge
			log.Printf("level=info msg=google calendar sync enabled calendar_id=%s", cfg.CalendarID)
		}
	}
	loc, err := time.LoadLocation(cfg.CalendarTimezone)
	if err != nil {
		log.Printf("level=warn msg=unknown CALENDAR_TIMEZONE, using local time zone tz=%s err=%v", cfg.CalendarTimezone, err)
		loc = time.Local
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		closers = append(closers, rdb)
	}

	var (
		jwtService *jwtsvc.Service
		tokens     admin.TokenIssuer
	)
	if cfg.AdminEnabled() {
		jwtService = jwtsvc.New(cfg.AdminJWTSecret, cfg.AdminTokenTTL)
		tokens = jwtService
	} else {
		log.Println("level=warn msg=admin login disabled, set ADMIN_JWT_SECRET and ADMIN_PASSWORD_HASH")
	}

	paymentService := payment.NewService(gateway, cfg.FrontendOrigin, log.Printf)
	bookingService := booking.NewService(store, publisher, cfg.RescheduleWindow, log.Printf)
	adminService := admin.NewService(bookingService, tokens, cfg.AdminPasswordHash, cfg.AdminTokenTTL, log.Printf)
	calendarService := calendar.NewService(calendarEvents, bookingService, loc, log.Printf)
	if calendarEvents != nil {
		bookingService.WithCalendar(calendarService)
	}

	r := router.NewRouter(router.Deps{
		Config:   cfg,
		Redis:    rdb,
		JWT:      jwtService,
		Payment:  payment.NewHandler(paymentService, log.Printf),
		Booking:  booking.NewHandler(bookingService),
		Admin:    admin.NewHandler(adminService),
		Calendar: calendar.NewHandler(calendarService),
		Pages:    pages.NewHandler(cfg.StaticDir),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("level=info msg=server listening addr=%s store=%s", cfg.Addr, cfg.BookingStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("level=fatal msg=server failed err=%v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("level=info msg=shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("level=error msg=shutdown failed err=%v", err)
	}
	if err := calendarService.Close(shutdownCtx); err != nil {
		log.Printf("level=warn msg=calendar resyncs not flushed err=%v", err)
	}
	if rabbit != nil {
		if err := rabbit.Close(shutdownCtx); err != nil {
			log.Printf("level=warn msg=booking events not flushed err=%v", err)
		}
	}
	for _, c := range closers {
		_ = c.Close()
	}
	log.Println("level=info msg=server stopped")
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

func openBookingStore(ctx context.Context, cfg *config.Config) (booking.Store, io.Closer) {
	switch cfg.BookingStore {
	case config.StoreMongo:
		client, err := database.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			log.Printf("level=error msg=mongo unavailable, bookings disabled err=%v", err)
			return nil, nil
		}
		col := client.Database(cfg.MongoDatabase).Collection(domain.BookingsCollection)
		return repository.NewMongoBookingRepository(col), closeFunc(func() error {
			return client.Disconnect(context.Background())
		})

	case config.StoreSQL:
		if cfg.DatabaseURL == "" {
			log.Println("level=error msg=DATABASE_URL is empty, bookings disabled")
			return nil, nil
		}
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("level=error msg=database unavailable, bookings disabled err=%v", err)
			return nil, nil
		}
		repo := repository.NewBookingRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			log.Printf("level=error msg=bookings migration failed err=%v", err)
			return nil, nil
		}
		sqlDB, err := db.DB()
		if err != nil {
			return repo, nil
		}
		return repo, sqlDB

	default:
		client, err := database.NewFirestore(ctx, cfg.CredentialsFile, cfg.FirestoreProjectID)
		if err != nil {
			log.Printf("level=error msg=firestore unavailable, bookings disabled err=%v", err)
			return nil, nil
		}
		return repository.NewFirestoreBookingRepository(client), client
	}
}
