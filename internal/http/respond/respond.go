// Package respond writes the JSON envelopes shared by all handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/homestay/homestay/internal/validate"
)

type messageBody struct {
	Message string `json:"message"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationBody struct {
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageBody{Message: msg})
}

// Invalid writes a 400. Field level validation failures are listed under
// "errors" and the first one doubles as the message.
func Invalid(w http.ResponseWriter, err error) {
	var fieldErrs validate.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		Message(w, http.StatusBadRequest, err.Error())
		return
	}

	body := validationBody{
		Message: fieldErrs[0].Field + " " + fieldErrs[0].Message,
		Errors:  make([]fieldError, len(fieldErrs)),
	}

	for i, fe := range fieldErrs {
		body.Errors[i] = fieldError{Field: fe.Field, Message: fe.Message}
	}

	JSON(w, http.StatusBadRequest, body)
}

// Internal logs err and writes a generic 500.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	Message(w, http.StatusInternalServerError, "internal server error")
}

// Decode reads a JSON body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}

	return nil
}
