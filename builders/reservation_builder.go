package builders

import (
	"math"

	"airhotel-web/constants"
	"airhotel-web/dto"
	"airhotel-web/utils"
)

// ReservationRequestBuilder assembles create and modify bodies. Nights and
// price are always derived from the dates, never copied from older input.
type ReservationRequestBuilder struct {
	hotelID    int64
	roomTypeID int64
	checkIn    string
	checkOut   string
	numGuests  int
	guestsSet  bool
	baseRate   float64
	currency   string
	notes      string
}

// NewReservationRequestBuilder creates a builder with the default currency and one guest
func NewReservationRequestBuilder() *ReservationRequestBuilder {
	return &ReservationRequestBuilder{
		numGuests: constants.DefaultGuests,
		currency:  constants.DefaultCurrency,
	}
}

// WithHotel sets the hotel
func (b *ReservationRequestBuilder) WithHotel(hotelID int64) *ReservationRequestBuilder {
	b.hotelID = hotelID
	return b
}

// WithRoomType sets the room type
func (b *ReservationRequestBuilder) WithRoomType(roomTypeID int64) *ReservationRequestBuilder {
	b.roomTypeID = roomTypeID
	return b
}

// WithDates sets check-in and check-out
func (b *ReservationRequestBuilder) WithDates(checkIn, checkOut string) *ReservationRequestBuilder {
	b.checkIn = checkIn
	b.checkOut = checkOut
	return b
}

// WithGuests sets the guest count
func (b *ReservationRequestBuilder) WithGuests(numGuests int) *ReservationRequestBuilder {
	b.numGuests = numGuests
	b.guestsSet = true
	return b
}

// WithBaseRate sets the nightly rate used for the total
func (b *ReservationRequestBuilder) WithBaseRate(rate float64) *ReservationRequestBuilder {
	b.baseRate = rate
	return b
}

// WithCurrency overrides the currency
func (b *ReservationRequestBuilder) WithCurrency(currency string) *ReservationRequestBuilder {
	if currency != "" {
		b.currency = currency
	}
	return b
}

// WithNotes sets free text notes
func (b *ReservationRequestBuilder) WithNotes(notes string) *ReservationRequestBuilder {
	b.notes = notes
	return b
}

// Nights derived from the current dates
func (b *ReservationRequestBuilder) Nights() int {
	return utils.NightsBetween(b.checkIn, b.checkOut)
}

// PriceTotal is max(0, baseRate * nights), 0 for a NaN or infinite rate
func (b *ReservationRequestBuilder) PriceTotal() float64 {
	return PriceTotal(b.baseRate, b.Nights())
}

// Build returns the POST /reservations body
func (b *ReservationRequestBuilder) Build() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		HotelID:      b.hotelID,
		RoomTypeID:   b.roomTypeID,
		CheckInDate:  b.checkIn,
		CheckOutDate: b.checkOut,
		Nights:       b.Nights(),
		NumGuests:    b.numGuests,
		Currency:     b.currency,
		PriceTotal:   b.PriceTotal(),
		Notes:        b.notes,
	}
}

// BuildPatch returns the PATCH /reservations/{id} body. The guest count is
// only sent when WithGuests was called.
func (b *ReservationRequestBuilder) BuildPatch() dto.PatchReservationRequest {
	req := dto.PatchReservationRequest{
		CheckInDate:  b.checkIn,
		CheckOutDate: b.checkOut,
		Nights:       b.Nights(),
	}
	if b.guestsSet {
		guests := b.numGuests
		req.NumGuests = &guests
	}
	return req
}

// PriceTotal computes the reservation total for a nightly rate
func PriceTotal(baseRate float64, nights int) float64 {
	if math.IsNaN(baseRate) || math.IsInf(baseRate, 0) {
		return 0
	}
	total := baseRate * float64(nights)
	if total < 0 {
		return 0
	}
	return total
}
