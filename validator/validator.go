package validator

import (
	"strings"
	"sync"
	"time"

	"airhotel-web/errors"
	"airhotel-web/utils"

	playground "github.com/go-playground/validator/v10"
)

const (
	MsgCityRequired     = "Please enter a destination."
	MsgDatesRequired    = "Please select check-in and check-out dates."
	MsgCheckInPast      = "Check-in cannot be in the past."
	MsgCheckOutOrder    = "Check-out must be after check-in."
	MsgCheckInFirst     = "Select a check-in date first."
	MsgGuestsMinimum    = "Guests must be at least 1"
	MsgInvalidDate      = "Dates must use the YYYY-MM-DD format."
	MsgNoRoomTypeChosen = "Select a room type to continue."
)

var (
	once     sync.Once
	instance *playground.Validate
)

func get() *playground.Validate {
	once.Do(func() {
		instance = playground.New(playground.WithRequiredStructEnabled())
	})
	return instance
}

// Struct runs the tag based checks of a request body
func Struct(v interface{}) error {
	if err := get().Struct(v); err != nil {
		if fieldErrs, ok := err.(playground.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewAppError(errors.ErrCodeValidation, fe.Field()+" failed on "+fe.Tag(), err)
		}
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid request", err)
	}
	return nil
}

// ValidateDate checks a single YYYY-MM-DD value
func ValidateDate(value string) error {
	if _, ok := utils.ParseLocalDate(value); !ok {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, MsgInvalidDate, nil)
	}
	return nil
}

// ValidateDateRange checks that both dates parse, checkIn is not before
// today and checkOut is strictly after checkIn
func ValidateDateRange(checkIn, checkOut string, now time.Time) error {
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, MsgDatesRequired, nil)
	}
	if err := ValidateDate(checkIn); err != nil {
		return err
	}
	if err := ValidateDate(checkOut); err != nil {
		return err
	}
	if utils.IsPast(checkIn, now) {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, MsgCheckInPast, nil)
	}
	if utils.NightsBetween(checkIn, checkOut) < 1 {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, MsgCheckOutOrder, nil)
	}
	return nil
}

// ValidateSearch checks the inputs of an availability search
func ValidateSearch(city, checkIn, checkOut string, now time.Time) error {
	if strings.TrimSpace(city) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, MsgCityRequired, nil)
	}
	return ValidateDateRange(checkIn, checkOut, now)
}

// ValidateGuests checks the guest count of an availability query or edit
func ValidateGuests(numGuests int) error {
	if numGuests < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, MsgGuestsMinimum, nil)
	}
	return nil
}
