package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/eugenenazirov/field-console/internal/frontend"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves the frontend configuration record and hands every other
// request to the static file handler.
type Handler struct {
	lookup frontend.Lookup
	static http.Handler
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithLookup overrides the environment source, primarily for tests.
func WithLookup(lookup frontend.Lookup) HandlerOption {
	return func(h *Handler) {
		h.lookup = lookup
	}
}

// NewHandler constructs a Handler. A nil static handler answers 404 for
// everything except the configuration record.
func NewHandler(static http.Handler, opts ...HandlerOption) *Handler {
	h := &Handler{
		lookup: os.LookupEnv,
		static: static,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.static == nil {
		h.static = http.NotFoundHandler()
	}
	return h
}

// handleConfig resolves the record on every request so the response always
// reflects the current process environment.
func (h *Handler) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, frontend.Resolve(h.lookup))
}

func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
