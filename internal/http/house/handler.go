package house

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/house"
	"github.com/homestay/homestay/internal/http/middleware"
	"github.com/homestay/homestay/internal/http/respond"
	"github.com/homestay/homestay/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc       *house.Service
	importSvc *importer.Service
}

func NewHandler(svc *house.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(middleware.RoleAdmin))

		r.Post("/", h.create)
		r.Post("/delete-multiple", h.deleteMany)
		r.Post("/bulk-upload", h.bulkUpload)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, house.ErrInvalidInput):
		respond.Invalid(w, err)
	case errors.Is(err, house.ErrNotFound):
		respond.Message(w, http.StatusNotFound, "house not found")
	default:
		respond.Internal(w, r, err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	houses, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(houses))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	hs, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(hs))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in house.Input
	if err := respond.Decode(r, &in); err != nil {
		respond.Invalid(w, err)
		return
	}

	hs, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, struct {
		Message string        `json:"message"`
		House   houseResponse `json:"house"`
	}{
		Message: "House created.",
		House:   toResponse(hs),
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var params house.UpdateParams
	if err := respond.Decode(r, &params); err != nil {
		respond.Invalid(w, err)
		return
	}

	hs, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, struct {
		Message string        `json:"message"`
		House   houseResponse `json:"house"`
	}{
		Message: "House updated.",
		House:   toResponse(hs),
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "House deleted.")
}

type deleteManyRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *Handler) deleteMany(w http.ResponseWriter, r *http.Request) {
	var req deleteManyRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, err)
		return
	}

	deleted, err := h.svc.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, struct {
		Message      string `json:"message"`
		DeletedCount int64  `json:"deletedCount"`
	}{
		Message:      fmt.Sprintf("Deleted %d houses.", deleted),
		DeletedCount: deleted,
	})
}

// bulkUpload accepts either a JSON document or a multipart form whose "file"
// field holds a CSV or JSON file.
func (h *Handler) bulkUpload(w http.ResponseWriter, r *http.Request) {
	var (
		format = importer.FormatJSON
		body   io.Reader
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respond.Message(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		format = importer.FormatFromFilename(header.Filename)
		body = file
	} else {
		body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	}

	rows, err := h.importSvc.Import(format, body)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.BulkCreate(r.Context(), rows)
	if err != nil {
		if errors.Is(err, house.ErrInvalidInput) {
			resp := bulkUploadResponse{Message: "No valid houses to upload."}
			if res != nil {
				resp.Errors = res.Errors
			}

			respond.JSON(w, http.StatusBadRequest, resp)

			return
		}

		writeError(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, bulkUploadResponse{
		Message: fmt.Sprintf("Uploaded %d houses.", len(res.Created)),
		Created: len(res.Created),
		Houses:  toResponseList(res.Created),
		Errors:  res.Errors,
	})
}
