package models

import (
	"strings"

	"airhotel-web/constants"
)

// Reservation as returned by GET /reservations
type Reservation struct {
	ID           int64   `json:"id"`
	HotelID      int64   `json:"hotelId,omitempty"`
	HotelName    string  `json:"hotelName,omitempty"`
	RoomTypeID   int64   `json:"roomTypeId,omitempty"`
	RoomTypeName string  `json:"roomTypeName,omitempty"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	Nights       int     `json:"nights"`
	NumGuests    int     `json:"numGuests"`
	Currency     string  `json:"currency,omitempty"`
	PriceTotal   float64 `json:"priceTotal"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`

	// StatusClass is StatusTag, filled when rendering
	StatusClass string `json:"statusTag,omitempty"`
}

// IsCanceled reports whether the server marked the reservation canceled.
// Every other status is active.
func (r Reservation) IsCanceled() bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), constants.ReservationStatusCanceled)
}

// StatusTag is the lower-cased status used by the page for styling
func (r Reservation) StatusTag() string {
	return strings.ToLower(r.Status)
}
