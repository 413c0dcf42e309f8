package deployment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/transport"
	"github.com/arifwid/opstrack/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateDeployment(actor *auth.Actor, dto CreateDeploymentDTO) (*Deployment, error)
	GetDeployment(actor *auth.Actor, id int64) (*Deployment, error)
	ListDeployments(actor *auth.Actor, f ListFilters) ([]*Deployment, error)
	UpdateDeployment(actor *auth.Actor, id int64, dto UpdateDeploymentDTO) (*Deployment, error)
	DeleteDeployment(actor *auth.Actor, id int64) error
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

func (h *Handler) CreateDeployment(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDeploymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateDeployment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.CreateDeployment(actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) GetDeployment(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid deployment ID")
		return
	}

	d, err := h.Service.GetDeployment(actor, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) ListDeployments(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	f := ListFilters{
		Status:      q.Get("status"),
		Environment: q.Get("environment"),
	}

	from, err := internal.ParseOptionalDate("from", optional(q.Get("from")))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	f.From = from

	to, err := internal.ParseOptionalDate("to", optional(q.Get("to")))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	f.To = to

	deployments, err := h.Service.ListDeployments(actor, f)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"deployments": deployments})
}

func (h *Handler) UpdateDeployment(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid deployment ID")
		return
	}

	var dto UpdateDeploymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateDeployment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.UpdateDeployment(actor, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDeployment(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid deployment ID")
		return
	}

	if err := h.Service.DeleteDeployment(actor, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
