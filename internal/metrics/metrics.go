// Package metrics exposes the Prometheus collectors of the API. All methods
// are safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "homestay"

type Metrics struct {
	registry *prometheus.Registry

	bookingsCreated     prometheus.Counter
	bookingsRejected    *prometheus.CounterVec
	availabilityChecks  *prometheus.CounterVec
	paymentsCreated     *prometheus.CounterVec
	paymentAmount       *prometheus.CounterVec
	paymentsFailed      *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New builds the collectors on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Bookings created and auto-confirmed.",
		}),
		bookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "rejected_total",
			Help:      "Booking writes rejected because of overlapping reservations.",
		}, []string{"reason"}),
		availabilityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "availability_checks_total",
			Help:      "Availability checks by outcome.",
		}, []string{"available"}),
		paymentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "created_total",
			Help:      "Payments recorded by method.",
		}, []string{"method"}),
		paymentAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "amount_total",
			Help:      "Sum of recorded payment amounts by method.",
		}, []string{"method"}),
		paymentsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "failed_total",
			Help:      "Payment attempts that did not complete.",
		}, []string{"reason"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bookingsCreated,
		m.bookingsRejected,
		m.availabilityChecks,
		m.paymentsCreated,
		m.paymentAmount,
		m.paymentsFailed,
		m.httpRequestDuration,
	)

	return m
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}

	m.bookingsCreated.Inc()
}

func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}

	m.bookingsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) AvailabilityChecked(available bool) {
	if m == nil {
		return
	}

	m.availabilityChecks.WithLabelValues(strconv.FormatBool(available)).Inc()
}

func (m *Metrics) PaymentCreated(method string, amount int64) {
	if m == nil {
		return
	}

	m.paymentsCreated.WithLabelValues(method).Inc()
	m.paymentAmount.WithLabelValues(method).Add(float64(amount))
}

func (m *Metrics) PaymentFailed(reason string) {
	if m == nil {
		return
	}

	m.paymentsFailed.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request latency labelled by the matched chi route
// pattern, keeping path parameters out of the label set.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
