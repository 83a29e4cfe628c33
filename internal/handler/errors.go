package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"blogHub/internal/pagination"
	"blogHub/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Errors     []FieldError     `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, resp Response, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// WriteError sends a failure envelope. It is also used by the middleware.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, Response{Success: false, Message: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, Response{Success: true, Data: data}, statusCode)
}

func writeMessage(w http.ResponseWriter, message string, data interface{}, statusCode int) {
	writeJSON(w, Response{Success: true, Message: message, Data: data}, statusCode)
}

func writePaginated(w http.ResponseWriter, data interface{}, meta pagination.Meta) {
	writeJSON(w, Response{Success: true, Data: data, Pagination: &meta}, http.StatusOK)
}

// statusFor maps service sentinels to HTTP codes. Zero means unmapped.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrLastAdmin):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return 0
}

// writeServiceError answers with the status of a known service error. Anything else is logged and
// reported as a 500 without details.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == 0 {
		log.Printf("Unexpected error: %v", err)
		WriteError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	message := http.StatusText(status)
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	WriteError(w, message, status)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		WriteError(w, "Invalid request data", http.StatusBadRequest)
		return
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	writeJSON(w, Response{Success: false, Message: "Validation failed", Errors: fields}, http.StatusBadRequest)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return "is invalid"
}

// decode reads a JSON body into dst and validates it. It writes the error response itself and
// reports whether the handler may continue.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return false
	}
	if err := h.Validate.Struct(dst); err != nil {
		writeValidationError(w, err)
		return false
	}
	return true
}

func (h *Handlers) page(r *http.Request) pagination.Params {
	return pagination.FromQuery(r.URL.Query(), h.Cfg.Pagination.DefaultLimit, h.Cfg.Pagination.MaxLimit)
}
