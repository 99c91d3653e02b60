package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/homestay/homestay/internal/auth"
	"github.com/homestay/homestay/internal/booking"
	bookingStore "github.com/homestay/homestay/internal/booking/store"
	"github.com/homestay/homestay/internal/config"
	"github.com/homestay/homestay/internal/database"
	"github.com/homestay/homestay/internal/export"
	"github.com/homestay/homestay/internal/house"
	houseStore "github.com/homestay/homestay/internal/house/store"
	homestayHttp "github.com/homestay/homestay/internal/http"
	authHandler "github.com/homestay/homestay/internal/http/auth"
	bookingHandler "github.com/homestay/homestay/internal/http/booking"
	exportHandler "github.com/homestay/homestay/internal/http/export"
	houseHandler "github.com/homestay/homestay/internal/http/house"
	"github.com/homestay/homestay/internal/http/middleware"
	paymentHandler "github.com/homestay/homestay/internal/http/payment"
	userHandler "github.com/homestay/homestay/internal/http/user"
	"github.com/homestay/homestay/internal/importer"
	"github.com/homestay/homestay/internal/metrics"
	"github.com/homestay/homestay/internal/payment"
	paymentStore "github.com/homestay/homestay/internal/payment/store"
	"github.com/homestay/homestay/internal/user"
	userStore "github.com/homestay/homestay/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		m      = metrics.New()
		issuer = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	)

	var (
		userService    = user.NewService(userStore.New(db))
		houseService   = house.NewService(houseStore.New(db))
		bookingService = booking.NewService(bookingStore.New(db), m)
		paymentService = payment.NewService(paymentStore.New(db), m)
		importService  = importer.NewService()
		exportService  = export.NewService(bookingService, houseService, userService, paymentService)
	)

	handlers := homestayHttp.Handlers{
		Auth:     authHandler.NewHandler(userService, issuer),
		Users:    userHandler.NewHandler(userService),
		Houses:   houseHandler.NewHandler(houseService, importService),
		Bookings: bookingHandler.NewHandler(bookingService),
		Payments: paymentHandler.NewHandler(paymentService),
		Export:   exportHandler.NewHandler(exportService),
	}

	router := homestayHttp.New(handlers, homestayHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Authenticator:  middleware.NewAuthenticator(issuer),
		Metrics:        m,
		DB:             db,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
