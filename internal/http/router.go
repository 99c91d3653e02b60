package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/homestay/homestay/internal/http/auth"
	"github.com/homestay/homestay/internal/http/booking"
	"github.com/homestay/homestay/internal/http/export"
	"github.com/homestay/homestay/internal/http/house"
	"github.com/homestay/homestay/internal/http/middleware"
	"github.com/homestay/homestay/internal/http/payment"
	"github.com/homestay/homestay/internal/http/respond"
	"github.com/homestay/homestay/internal/http/user"
	"github.com/homestay/homestay/internal/metrics"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Auth     *auth.Handler
	Users    *user.Handler
	Houses   *house.Handler
	Bookings *booking.Handler
	Payments *payment.Handler
	Export   *export.Handler
}

type Options struct {
	AllowedOrigins []string
	Authenticator  *middleware.Authenticator
	Metrics        *metrics.Metrics
	DB             Pinger
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(opts.Metrics.Middleware)

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(opts.Authenticator.Authenticate)

		r.Get("/health", health(opts.DB))

		r.Route("/auth", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		r.Route("/users", h.Users.Routes)

		// bulk-upload takes multipart forms, so no content type restriction.
		r.Route("/houses", h.Houses.Routes)

		r.Route("/bookings", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Bookings.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Payments.Routes(r)
		})

		r.Route("/export", h.Export.Routes)
	})

	return router
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := struct {
			Status   string `json:"status"`
			Database string `json:"database"`
		}{Status: "ok", Database: "up"}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				status.Status, status.Database = "degraded", "down"
				respond.JSON(w, http.StatusServiceUnavailable, status)

				return
			}
		}

		respond.JSON(w, http.StatusOK, status)
	}
}
