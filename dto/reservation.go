package dto

// CreateReservationRequest is the POST /reservations body
type CreateReservationRequest struct {
	HotelID      int64   `json:"hotelId" validate:"required,gt=0"`
	RoomTypeID   int64   `json:"roomTypeId" validate:"required,gt=0"`
	CheckInDate  string  `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate string  `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	Nights       int     `json:"nights" validate:"gte=1"`
	NumGuests    int     `json:"numGuests" validate:"gte=1"`
	Currency     string  `json:"currency" validate:"required,len=3,uppercase"`
	PriceTotal   float64 `json:"priceTotal" validate:"gte=0"`
	Notes        string  `json:"notes"`
}

// PatchReservationRequest is the PATCH /reservations/{id} body
type PatchReservationRequest struct {
	CheckInDate  string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	Nights       int    `json:"nights" validate:"gte=1"`
	NumGuests    *int   `json:"numGuests,omitempty" validate:"omitempty,gte=1"`
}

// SessionEnvelope is the optional wrapper some responses use to surface a fresh session token
type SessionEnvelope struct {
	Session string `json:"session"`
}
