package constants

import "time"

// Reservation status values as sent by the server. Only ReservationStatusCanceled is
// terminal for the client, every other value is treated as active.
const (
	ReservationStatusPending    = "PENDING"
	ReservationStatusConfirmed  = "CONFIRMED"
	ReservationStatusCanceled   = "CANCELED"
	ReservationStatusCheckedIn  = "CHECKED_IN"
	ReservationStatusCheckedOut = "CHECKED_OUT"
	ReservationStatusNoShow     = "NO_SHOW"
)

// Toast severity
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Workflow views
const (
	ViewSearch       = "search"
	ViewReservations = "reservations"
)

// Workflow modals
const (
	ModalNone          = "none"
	ModalEdit          = "edit"
	ModalCancelConfirm = "cancel-confirm"
	ModalRoomType      = "room-type"
)

const (
	RoomTypePageSize = 4
	DefaultCurrency  = "USD"
	DefaultGuests    = 1
	ToastDuration    = 3500 * time.Millisecond
	DateLayout       = "2006-01-02"
)
