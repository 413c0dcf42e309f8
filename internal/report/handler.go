package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/transport"
	"github.com/arifwid/opstrack/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Dashboard(actor *auth.Actor) (*Dashboard, error)
	Analytics(actor *auth.Actor) (*Analytics, error)
	Export(actor *auth.Actor, entityType, format string) (*Document, Renderer, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	d, err := h.Service.Dashboard(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.Service.Analytics(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// Export streams a rendered document. Format comes from the URL, entity type
// from the ?type= query parameter.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	format := chi.URLParam(r, "format")
	entityType := r.URL.Query().Get("type")

	doc, renderer, err := h.Service.Export(actor, entityType, format)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("%s.%s", strings.ToLower(strings.ReplaceAll(doc.Title, " ", "_")), renderer.FileExtension())
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := renderer.Render(w, *doc); err != nil {
		h.Logger.Error("export rendering failed", "error", err, "format", format)
	}
}
