// Package web serves a collection.View as an HTML page with a label
// filter.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/frobware/prfilter/collection"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

type Handler struct {
	view *collection.View
	name string
	ctx  context.Context
}

// NewHandler serves view under the heading "Pull Requests from name".
// Reloads run under ctx.
func NewHandler(ctx context.Context, view *collection.View, name string) *Handler {
	return &Handler{
		view: view,
		name: name,
		ctx:  ctx,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/", h.Page)
	r.Post("/reload", h.Reload)
	r.Get("/healthz", h.Health)

	return r
}

type pageData struct {
	Name    string
	State   string
	Message string
	Labels  []string
	Filter  string
	Visible []collection.Record
}

// Page renders the list filtered by the "label" query parameter. The
// filter is applied to a copy of the view's state, so concurrent
// requests do not see each other's selection.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	snap := h.view.Snapshot().WithFilter(r.URL.Query().Get("label"))

	data := pageData{
		Name:    h.name,
		State:   snap.State.String(),
		Message: snap.Message,
		Labels:  snap.Labels,
		Filter:  snap.Filter,
		Visible: snap.Visible,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("render page: %v", err)
	}
}

// Reload replaces the collection with a fresh fetch and redirects back
// to the page.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := h.view.Load(h.ctx); err != nil && !errors.Is(err, collection.ErrClosed) && !errors.Is(err, collection.ErrSuperseded) {
			log.Printf("reload: %v", err)
		}
	}()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.view.Snapshot()
	status := http.StatusOK
	if snap.State == collection.Failed {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"state":   snap.State.String(),
		"records": len(snap.All),
		"labels":  len(snap.Labels),
	})
}
