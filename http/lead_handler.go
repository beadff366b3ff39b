package http

import (
	"net/http"

	"realty-agent/domain"
	"realty-agent/notify"
	"realty-agent/service"
)

type LeadHandler struct {
	leads *service.LeadService
	hub   *notify.Hub
}

func NewLeadHandler(leads *service.LeadService, hub *notify.Hub) *LeadHandler {
	return &LeadHandler{leads: leads, hub: hub}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var lead domain.Lead
	if !decodeJSON(w, r, &lead) {
		return
	}

	created, err := h.leads.Create(r.Context(), lead)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// Update handles PATCH /admin/leads/{id} with {"status": ..., "notes": ...}.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.LeadUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	lead, err := h.leads.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Stream upgrades to a websocket that receives lead.created events.
func (h *LeadHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}
