package domain

type SiteSettings struct {
	LogoURL       string `json:"logoUrl"` // URL o data URI base64
	AboutText     string `json:"aboutText"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	HeroImageURL  string `json:"heroImageUrl,omitempty"`
	AboutImageURL string `json:"aboutImageUrl,omitempty"`
}

type DashboardStats struct {
	Properties   int `json:"properties"`
	Leads        int `json:"leads"`
	NewLeads     int `json:"newLeads"`
	Calculations int `json:"calculations"`
}

// Calculation is a persisted record of a calculator run.
type Calculation struct {
	Kind   string `json:"kind"` // "mortgage" | "roi"
	Input  any    `json:"input"`
	Result any    `json:"result"`
}
