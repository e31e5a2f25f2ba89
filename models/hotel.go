package models

import "strings"

// Hotel is an immutable snapshot from a hotel listing or availability search
type Hotel struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Brand        string   `json:"brand,omitempty"`
	AddressLine1 string   `json:"addressLine1,omitempty"`
	AddressLine2 string   `json:"addressLine2,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Country      string   `json:"country,omitempty"`
	PostalCode   string   `json:"postalCode,omitempty"`
	StarRating   *float64 `json:"starRating,omitempty"`

	// Address is FormattedAddress, filled when rendering
	Address string `json:"address,omitempty"`
}

// FormattedAddress joins the non-empty address parts with ", "
func (h Hotel) FormattedAddress() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{h.AddressLine1, h.AddressLine2, h.City, h.State, h.Country, h.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SearchText is the text the local filter matches against
func (h Hotel) SearchText() string {
	return h.City + " " + h.Name
}
