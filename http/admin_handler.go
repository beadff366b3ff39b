package http

import (
	"net/http"

	"realty-agent/domain"
	"realty-agent/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminHandler struct {
	auth      *service.AuthService
	dashboard *service.DashboardService
	settings  *service.SettingsService
}

func NewAdminHandler(
	auth *service.AuthService,
	dashboard *service.DashboardService,
	settings *service.SettingsService,
) *AdminHandler {
	return &AdminHandler{auth: auth, dashboard: dashboard, settings: settings}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.SiteSettings
	if !decodeJSON(w, r, &settings) {
		return
	}

	saved, err := h.settings.Update(r.Context(), settings)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
