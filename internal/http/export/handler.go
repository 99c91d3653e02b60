package export

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homestay/homestay/internal/export"
	"github.com/homestay/homestay/internal/http/middleware"
	"github.com/homestay/homestay/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.RequireRole(middleware.RoleAdmin))

	r.Get("/bookings", h.sheet(export.SheetBookings))
	r.Get("/houses", h.sheet(export.SheetHouses))
	r.Get("/users", h.sheet(export.SheetUsers))
	r.Get("/report", h.report)
	r.Get("/download", h.download)
}

// attach writes body as a file download. Exports are rendered into memory
// first so a failure can still produce a JSON error.
func attach(w http.ResponseWriter, contentType, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

func (h *Handler) sheet(sheet export.Sheet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := h.svc.WriteCSV(r.Context(), sheet, &buf); err != nil {
			respond.Internal(w, r, err)
			return
		}

		attach(w, "text/csv; charset=utf-8", h.svc.Filename(sheet, "csv"), &buf)
	}
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, report)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.WriteArchive(r.Context(), &buf); err != nil {
		respond.Internal(w, r, err)
		return
	}

	attach(w, "application/zip", h.svc.Filename("export", "zip"), &buf)
}
