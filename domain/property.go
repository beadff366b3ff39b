package domain

import "time"

type PropertyType string

const (
	PropertyCondo PropertyType = "condo"
	PropertyHouse PropertyType = "house"
	PropertyLand  PropertyType = "land"
)

type PropertyStatus string

const (
	StatusForSale PropertyStatus = "for-sale"
	StatusSold    PropertyStatus = "sold"
)

type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Location    string         `json:"location"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Area        float64        `json:"area"` // m²
	Type        PropertyType   `json:"type"`
	Status      PropertyStatus `json:"status"`
	Description string         `json:"description"`
	Features    []string       `json:"features"`
	Images      []string       `json:"images"`
	IsFeatured  bool           `json:"isFeatured"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// PropertyFilter narrows a listing query. Zero values match everything.
type PropertyFilter struct {
	Type         PropertyType
	Status       PropertyStatus
	FeaturedOnly bool
	MinPrice     float64
	MaxPrice     float64
}

func (f PropertyFilter) Match(p Property) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.FeaturedOnly && !p.IsFeatured {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

// Upload is an image attached to a create or update request.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}
