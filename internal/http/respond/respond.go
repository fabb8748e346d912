package respond

import (
	"net/http"

	"github.com/go-chi/render"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a success or informational response using the common envelope.
func JSON(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	write(w, r, status, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	write(w, r, status, Envelope{Code: status, Message: message})
}

func write(w http.ResponseWriter, r *http.Request, status int, payload Envelope) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}
