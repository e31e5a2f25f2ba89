package validator

import (
	"testing"
	"time"

	"airhotel-web/dto"
	"airhotel-web/errors"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 5, 20, 15, 0, 0, 0, time.Local)

func TestValidateSearch(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		checkIn  string
		checkOut string
		code     errors.ErrorCode
		message  string
	}{
		{"empty city", "  ", "2025-06-01", "2025-06-03", errors.ErrCodeRequiredField, MsgCityRequired},
		{"missing checkout", "Paris", "2025-06-01", "", errors.ErrCodeRequiredField, MsgDatesRequired},
		{"bad format", "Paris", "06/01/2025", "2025-06-03", errors.ErrCodeInvalidFormat, MsgInvalidDate},
		{"past checkin", "Paris", "2025-05-19", "2025-06-03", errors.ErrCodeInvalidDateRange, MsgCheckInPast},
		{"reversed", "Paris", "2025-06-03", "2025-06-01", errors.ErrCodeInvalidDateRange, MsgCheckOutOrder},
		{"same day", "Paris", "2025-06-03", "2025-06-03", errors.ErrCodeInvalidDateRange, MsgCheckOutOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearch(tt.city, tt.checkIn, tt.checkOut, now)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, tt.message, errors.MessageOf(err))
			assert.True(t, errors.IsValidation(err))
		})
	}

	assert.NoError(t, ValidateSearch("Paris", "2025-06-01", "2025-06-03", now))
	assert.NoError(t, ValidateSearch("Paris", "2025-05-20", "2025-05-21", now), "today is a valid check-in")
}

func TestValidateGuests(t *testing.T) {
	assert.NoError(t, ValidateGuests(1))
	err := ValidateGuests(0)
	assert.Equal(t, MsgGuestsMinimum, errors.MessageOf(err))
	assert.Error(t, ValidateGuests(-3))
}

func TestStruct(t *testing.T) {
	ok := dto.CreateReservationRequest{
		HotelID: 1, RoomTypeID: 2, CheckInDate: "2025-06-01", CheckOutDate: "2025-06-03",
		Nights: 2, NumGuests: 1, Currency: "USD", PriceTotal: 200,
	}
	assert.NoError(t, Struct(ok))

	bad := ok
	bad.Currency = "usd"
	err := Struct(bad)
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
	assert.Contains(t, errors.MessageOf(err), "Currency")

	bad = ok
	bad.CheckInDate = "2025-6-1"
	assert.Error(t, Struct(bad))

	guests := 0
	patch := dto.PatchReservationRequest{CheckInDate: "2025-06-01", CheckOutDate: "2025-06-03", Nights: 2, NumGuests: &guests}
	assert.Error(t, Struct(patch))
	patch.NumGuests = nil
	assert.NoError(t, Struct(patch))
}
