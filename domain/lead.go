package domain

import "time"

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadClosed    LeadStatus = "closed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadClosed:
		return true
	}
	return false
}

type Lead struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	Email                  string         `json:"email"`
	Phone                  string         `json:"phone"`
	Status                 LeadStatus     `json:"status"`
	QualificationResponses map[string]any `json:"qualificationResponses"`
	Notes                  string         `json:"notes"`
	PropertyID             string         `json:"propertyId,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
}

// LeadUpdate carries the admin-editable fields of a lead. Nil fields are left as is.
type LeadUpdate struct {
	Status *LeadStatus `json:"status,omitempty"`
	Notes  *string     `json:"notes,omitempty"`
}
