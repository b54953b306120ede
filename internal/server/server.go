// Package server exposes the task dataset as a JSON API, standing in for the
// backend the terminal client talks to in remote mode.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Query parameters accepted as shorthands next to the generic filter encoding.
const (
	paramTab    = "tab"
	paramColumn = "column"
	paramQuery  = "query"
)

// Handler serves the task API.
type Handler struct {
	store    taskstore.Store
	provider provider.Provider
	log      lgr.L
}

// NewHandler creates a Handler. Reads and updates go through p; single-task
// lookups read store directly.
func NewHandler(store taskstore.Store, p provider.Provider, log lgr.L) *Handler {
	if log == nil {
		log = lgr.NoOp
	}
	return &Handler{store: store, provider: p, log: log}
}

// Routes registers the API on a new mux wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", h.listTasks)
	mux.HandleFunc("GET /api/tasks/counts", h.counts)
	mux.HandleFunc("GET /api/tasks/{id}", h.getTask)
	mux.HandleFunc("PUT /api/tasks/{id}/status", h.updateStatus)
	return h.logRequests(mux)
}

// ParseListRequest converts query parameters into provider arguments.
// tab filters by status; column+query is a single-column search.
func ParseListRequest(r *http.Request) (*query.Sort, query.Page, query.Filters) {
	values := r.URL.Query()

	sort := query.DecodeSort(values)
	page := query.DecodePage(values, query.Page{Number: 1, Size: 0})
	filters := query.DecodeFilters(values)

	if tab := strings.TrimSpace(values.Get(paramTab)); tab != "" {
		filters[query.FieldStatus] = query.Match(tab)
	}
	if column := strings.TrimSpace(values.Get(paramColumn)); column != "" {
		filters[column] = query.Match(values.Get(paramQuery))
	}
	return sort, page, filters
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	sort, page, filters := ParseListRequest(r)

	res, err := h.provider.FetchTasks(r.Context(), sort, page, filters)
	if err != nil {
		h.writeProviderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, provider.TasksResponse{Tasks: res.Tasks, TotalCount: res.TotalCount})
}

func (h *Handler) counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.provider.FetchTaskCounts(r.Context())
	if err != nil {
		h.writeProviderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		h.writeProviderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body provider.StatusChange
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	task, err := h.provider.UpdateStatus(r.Context(), r.PathValue("id"), body.Status, body.Comment)
	if err != nil {
		h.writeProviderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) writeProviderErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taskstore.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, provider.ErrInvalidStatus),
		errors.Is(err, provider.ErrCommentRequired),
		errors.Is(err, taskstore.ErrValidation):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		// client went away, nothing to write
	default:
		h.log.Logf("[WARN] provider error: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()[:8]
		w.Header().Set("X-Request-Id", reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.log.Logf("[INFO] %s %s %s -> %d (%s)", reqID, r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// Serve runs the API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, log lgr.L) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Logf("[INFO] task api listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
