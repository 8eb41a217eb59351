package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handler serves the REST collections out of a Repository
type Handler struct {
	repo   Repository
	logger *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger.Named("devserver")}
}

// Router builds the chi router for every collection
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	for _, collection := range Collections {
		collection := collection
		r.Route("/"+collection, func(r chi.Router) {
			r.Get("/", h.list(collection))
			r.Post("/", h.create(collection))
			r.Get("/{id}", h.get(collection))
			r.Put("/{id}", h.replace(collection))
			r.Delete("/{id}", h.delete(collection))
		})
	}
	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *Handler) list(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := h.repo.List(r.Context(), collection)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func (h *Handler) get(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.repo.Get(r.Context(), collection, chi.URLParam(r, "id"))
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func (h *Handler) create(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		created, err := h.repo.Create(r.Context(), collection, doc)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (h *Handler) replace(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		updated, err := h.repo.Replace(r.Context(), collection, chi.URLParam(r, "id"), doc)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (h *Handler) delete(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.repo.Delete(r.Context(), collection, chi.URLParam(r, "id")); err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Document{})
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, ErrConflict) {
		http.Error(w, "Conflict", http.StatusConflict)
		return
	}
	h.logger.Error("repository error", zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
