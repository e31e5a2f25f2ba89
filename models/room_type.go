package models

import "math"

// RoomType is one row of a room-type availability query
type RoomType struct {
	ID         int64    `json:"roomTypeId"`
	Code       string   `json:"code,omitempty"`
	Name       string   `json:"name"`
	BedType    string   `json:"bedType,omitempty"`
	Capacity   int      `json:"capacity,omitempty"`
	TotalRooms int      `json:"totalRooms,omitempty"`
	Available  int      `json:"available"`
	BaseRate   *float64 `json:"baseRate,omitempty"`
}

// RankRate is the rate used for ordering. A missing rate ranks last.
func (r RoomType) RankRate() float64 {
	if r.BaseRate == nil || math.IsNaN(*r.BaseRate) {
		return math.MaxFloat64
	}
	return *r.BaseRate
}

// Rate returns the base rate, or 0 when the server did not send one
func (r RoomType) Rate() float64 {
	if r.BaseRate == nil {
		return 0
	}
	return *r.BaseRate
}
