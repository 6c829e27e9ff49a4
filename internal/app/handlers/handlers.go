package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ilya-burinskiy/webapis/internal/app/configs"
	"github.com/ilya-burinskiy/webapis/internal/app/logger"
	"github.com/ilya-burinskiy/webapis/internal/app/services"
	"github.com/ilya-burinskiy/webapis/internal/app/storage"
)

type Handlers struct {
	config configs.Config
	store  storage.Storage
}

func NewHandlers(
	config configs.Config,
	store storage.Storage) Handlers {

	return Handlers{
		config: config,
		store:  store,
	}
}

// Root
func (h Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

// Ping storage
func (h Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("storage ping failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage is unavailable")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps service and storage errors to responses. notFound is the message
// for storage.ErrNotFound.
func handleError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	default:
		logger.FromContext(r.Context()).Error("request failed", zap.String("URI", r.RequestURI), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// intParam parses a path parameter as integer
func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// pathParam returns a path parameter decoded exactly once. chi routes by RawPath
// when the request has one, so only then the value is still escaped.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}

	return value
}
