package dto

import "airhotel-web/models"

// SearchFields are the persisted search inputs
type SearchFields struct {
	City     string `json:"city"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// SearchFieldsRequest updates some of the search inputs. Nil fields are left alone.
type SearchFieldsRequest struct {
	City     *string `json:"city"`
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
}

// EditFieldsRequest updates the edit modal form
type EditFieldsRequest struct {
	CheckIn   *string `json:"checkIn"`
	CheckOut  *string `json:"checkOut"`
	NumGuests *int    `json:"numGuests"`
}

type ViewRequest struct {
	View string `json:"view" binding:"required" validate:"oneof=search reservations"`
}

type GuestsRequest struct {
	NumGuests int `json:"numGuests"`
}

type SelectRoomTypeRequest struct {
	RoomTypeID int64 `json:"roomTypeId" binding:"required"`
}

// WorkflowSnapshot is everything the page needs to render
type WorkflowSnapshot struct {
	View         string               `json:"view"`
	Session      models.SessionState  `json:"session"`
	Modal        ModalSnapshot        `json:"modal"`
	Search       SearchSnapshot       `json:"search"`
	Reservations ReservationsSnapshot `json:"reservations"`
	Toasts       []models.Toast       `json:"toasts"`
	LoginURL     string               `json:"loginUrl"`
}

type SearchSnapshot struct {
	SearchFields
	MinCheckIn   string         `json:"minCheckIn"`
	MinCheckOut  string         `json:"minCheckOut"`
	Hotels       []models.Hotel `json:"hotels"`
	HasFetched   bool           `json:"hasFetched"`
	Loading      bool           `json:"loading"`
	Error        string         `json:"error,omitempty"`
	EmptyMessage string         `json:"emptyMessage,omitempty"`
	Suggestion   string         `json:"suggestion,omitempty"`
}

type ReservationsSnapshot struct {
	Upcoming   []models.Reservation `json:"upcoming"`
	Past       []models.Reservation `json:"past"`
	Canceled   []models.Reservation `json:"canceled"`
	HasFetched bool                 `json:"hasFetched"`
	Loading    bool                 `json:"loading"`
	Error      string               `json:"error,omitempty"`
}

// ModalSnapshot flattens the open modal. Kind is one of none, edit,
// cancel-confirm and room-type, and only the matching fields are set.
type ModalSnapshot struct {
	Kind        string              `json:"kind"`
	Reservation *models.Reservation `json:"reservation,omitempty"`
	Hotel       *models.Hotel       `json:"hotel,omitempty"`
	CheckIn     string              `json:"checkIn,omitempty"`
	CheckOut    string              `json:"checkOut,omitempty"`
	NumGuests   int                 `json:"numGuests,omitempty"`
	Submitting  bool                `json:"submitting"`
	Error       string              `json:"error,omitempty"`
	RoomTypes   *RoomTypePage       `json:"roomTypes,omitempty"`
}

// RoomTypePage is the visible page of the room-type modal
type RoomTypePage struct {
	Items          []models.RoomType `json:"items"`
	Total          int               `json:"total"`
	Page           int               `json:"page"`
	TotalPages     int               `json:"totalPages"`
	SelectedID     int64             `json:"selectedRoomTypeId,omitempty"`
	Loading        bool              `json:"loading"`
	ShowPagination bool              `json:"showPagination"`
}
