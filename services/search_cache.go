package services

import (
	"context"
	"time"

	"airhotel-web/dto"
	"airhotel-web/utils"
)

const (
	lastSearchKey = "last_search:"
	sessionKey    = "session_token:"
	lastSearchTTL = 30 * 24 * time.Hour
)

func SaveLastSearch(ctx context.Context, cache Cache, key string, fields dto.SearchFields) error {
	return cache.Set(ctx, lastSearchKey+key, fields, lastSearchTTL)
}

// GetLastSearch returns the remembered search, or nil when there is none
func GetLastSearch(ctx context.Context, cache Cache, key string) (*dto.SearchFields, error) {
	var fields dto.SearchFields
	found, err := cache.Get(ctx, lastSearchKey+key, &fields)
	if err != nil || !found {
		return nil, err
	}
	return &fields, nil
}

func ClearLastSearch(ctx context.Context, cache Cache, key string) error {
	return cache.Delete(ctx, lastSearchKey+key)
}

// MergeSearchFields applies a partial update on top of the current fields.
// A check-in that leaves less than one night before the kept check-out clears
// the check-out, and clearing the check-in clears the check-out too.
func MergeSearchFields(old dto.SearchFields, update dto.SearchFieldsRequest) dto.SearchFields {
	merged := old
	if update.City != nil {
		merged.City = *update.City
	}
	if update.CheckIn != nil {
		merged.CheckIn = *update.CheckIn
		if merged.CheckIn == "" {
			merged.CheckOut = ""
		} else if update.CheckOut == nil && CheckOutInvalidated(merged.CheckIn, merged.CheckOut) {
			merged.CheckOut = ""
		}
	}
	if update.CheckOut != nil {
		merged.CheckOut = *update.CheckOut
	}
	return merged
}

// CheckOutInvalidated reports whether checkOut falls before the first night
// after checkIn. The bound is strict: checkOut == checkIn+1 is a valid
// one-night stay and is kept.
func CheckOutInvalidated(checkIn, checkOut string) bool {
	if checkOut == "" {
		return false
	}
	minCheckOut := utils.AddDays(checkIn, 1)
	if minCheckOut == "" {
		return true
	}
	return checkOut < minCheckOut
}
