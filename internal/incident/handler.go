package incident

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
	CreateIncident(actor *auth.Actor, dto CreateIncidentDTO) (*Incident, error)
	GetIncident(actor *auth.Actor, id int64) (*Incident, error)
	ListIncidents(actor *auth.Actor, f ListFilters) ([]*Incident, error)
	UpdateIncident(actor *auth.Actor, id int64, dto UpdateIncidentDTO) (*Incident, error)
	DeleteIncident(actor *auth.Actor, id int64) error
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

func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateIncident: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inc, err := h.Service.CreateIncident(actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, inc)
}

func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident ID")
		return
	}

	inc, err := h.Service.GetIncident(actor, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	f := ListFilters{
		Status:   q.Get("status"),
		Severity: q.Get("severity"),
	}

	if raw := q.Get("assigned_to"); raw != "" {
		assignedTo, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid assigned_to filter")
			return
		}
		f.AssignedTo = &assignedTo
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

	incidents, err := h.Service.ListIncidents(actor, f)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"incidents": incidents})
}

func (h *Handler) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident ID")
		return
	}

	var dto UpdateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateIncident: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inc, err := h.Service.UpdateIncident(actor, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident ID")
		return
	}

	if err := h.Service.DeleteIncident(actor, id); err != nil {
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
