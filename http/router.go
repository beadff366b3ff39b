package http

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Calculator *CalculatorHandler
	Properties *PropertyHandler
	Leads      *LeadHandler
	Admin      *AdminHandler
	Auth       Authenticator
	Limiter    *RateLimiter
	// MediaDir is served read-only under /media/. Empty disables it.
	MediaDir string
	Logger   *slog.Logger
}

func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	limited := func(f http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(h.Limiter, f)
	}
	admin := func(f http.HandlerFunc) http.Handler {
		return RequireAdmin(h.Auth, f)
	}

	mux.Handle("POST /calculator/mortgage", limited(h.Calculator.CalculateMortgage))
	mux.Handle("POST /calculator/roi", limited(h.Calculator.CalculateRoi))
	mux.Handle("POST /calculator/recommend-term", limited(h.Calculator.RecommendTerm))
	mux.Handle("POST /calculator/amortization", limited(h.Calculator.Amortization))
	mux.HandleFunc("GET /calculator/defaults", h.Calculator.Defaults)

	mux.HandleFunc("GET /properties", h.Properties.List)
	mux.HandleFunc("GET /properties/{id}", h.Properties.Get)
	mux.Handle("GET /properties/{id}/roi", limited(h.Properties.Roi))

	mux.Handle("POST /leads", limited(h.Leads.Create))
	mux.HandleFunc("GET /settings", h.Admin.GetSettings)
	mux.HandleFunc("GET /health", health)

	if h.MediaDir != "" {
		mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(mediaDir(h.MediaDir))))
	}

	mux.Handle("POST /admin/login", limited(h.Admin.Login))
	mux.Handle("POST /admin/logout", admin(h.Admin.Logout))
	mux.Handle("GET /admin/dashboard", admin(h.Admin.Dashboard))
	mux.Handle("POST /admin/properties", admin(h.Properties.Create))
	mux.Handle("PUT /admin/properties/{id}", admin(h.Properties.Update))
	mux.Handle("DELETE /admin/properties/{id}", admin(h.Properties.Delete))
	mux.Handle("GET /admin/leads", admin(h.Leads.List))
	mux.Handle("GET /admin/leads/stream", RequireAdminStream(h.Auth, http.HandlerFunc(h.Leads.Stream)))
	mux.Handle("PATCH /admin/leads/{id}", admin(h.Leads.Update))
	mux.Handle("PUT /admin/settings", admin(h.Admin.UpdateSettings))

	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return LogRequests(logger, mux)
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mediaDir is an http.FileSystem that refuses directory listings.
type mediaDir string

func (d mediaDir) Open(name string) (http.File, error) {
	f, err := http.Dir(d).Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
