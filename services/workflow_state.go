package services

import (
	"strings"
	"time"

	"airhotel-web/constants"
	"airhotel-web/dto"
	"airhotel-web/errors"
	"airhotel-web/models"
	"airhotel-web/utils"
	"airhotel-web/validator"
)

// Modal is the closed set of overlays. Exactly one is active at a time.
type Modal interface {
	Kind() string
	Generation() uint64
}

type NoModal struct{}

func (NoModal) Kind() string       { return constants.ModalNone }
func (NoModal) Generation() uint64 { return 0 }

// EditModal changes the dates or guests of one reservation
type EditModal struct {
	Seq         uint64
	Reservation models.Reservation
	CheckIn     string
	CheckOut    string
	NumGuests   int
	Submission  models.Submission
}

func (m *EditModal) Kind() string       { return constants.ModalEdit }
func (m *EditModal) Generation() uint64 { return m.Seq }

// CancelConfirmModal asks before canceling one reservation
type CancelConfirmModal struct {
	Seq         uint64
	Reservation models.Reservation
	Submission  models.Submission
}

func (m *CancelConfirmModal) Kind() string       { return constants.ModalCancelConfirm }
func (m *CancelConfirmModal) Generation() uint64 { return m.Seq }

// RoomTypeModal picks a room type of one hotel for the searched dates
type RoomTypeModal struct {
	Seq        uint64
	Hotel      models.Hotel
	CheckIn    string
	CheckOut   string
	NumGuests  int
	Selector   RoomTypeSelector
	Loading    int
	LoadError  string
	Submission models.Submission
}

func (m *RoomTypeModal) Kind() string       { return constants.ModalRoomType }
func (m *RoomTypeModal) Generation() uint64 { return m.Seq }

// SearchState is the search view: inputs, last result and banner
type SearchState struct {
	Fields     dto.SearchFields
	Hotels     []models.Hotel
	HasFetched bool
	Loading    int
	Error      string
}

// ReservationsState is the last fetched reservation set
type ReservationsState struct {
	Items      []models.Reservation
	HasFetched bool
	Loading    int
	Error      string
}

// WorkflowState is everything the orchestrator owns
type WorkflowState struct {
	View         string
	Modal        Modal
	Search       SearchState
	Reservations ReservationsState
}

func NewWorkflowState() WorkflowState {
	return WorkflowState{
		View:  constants.ViewSearch,
		Modal: NoModal{},
	}
}

// validateDateUpdate checks a partial date update against the merged result.
// Check-in may be today but not earlier, and check-out needs a check-in it
// comes at least one night after.
func validateDateUpdate(checkIn, checkOut *string, merged dto.SearchFields, now time.Time) error {
	if checkIn != nil && strings.TrimSpace(*checkIn) != "" {
		if err := validator.ValidateDate(*checkIn); err != nil {
			return err
		}
		if utils.IsPast(*checkIn, now) {
			return errors.NewAppError(errors.ErrCodeInvalidDateRange, validator.MsgCheckInPast, nil)
		}
	}
	if checkOut != nil && strings.TrimSpace(*checkOut) != "" {
		if err := validator.ValidateDate(*checkOut); err != nil {
			return err
		}
		if merged.CheckIn == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, validator.MsgCheckInFirst, nil)
		}
		if utils.NightsBetween(merged.CheckIn, *checkOut) < 1 {
			return errors.NewAppError(errors.ErrCodeInvalidDateRange, validator.MsgCheckOutOrder, nil)
		}
	}
	return nil
}

func minCheckOut(checkIn string, now time.Time) string {
	if checkIn != "" {
		if out := utils.AddDays(checkIn, 1); out != "" {
			return out
		}
	}
	return utils.AddDays(utils.Today(now), 1)
}

func emptyMessage(city string) string {
	target := "your filters"
	if city = strings.TrimSpace(city); city != "" {
		target = `"` + city + `"`
	}
	return "No hotels matched " + target + ". Try another city or adjust the travel dates."
}

// snapshot renders the state for the page. Partitions and the hotel filter
// are recomputed here on every call.
func (s *WorkflowState) snapshot(now time.Time) dto.WorkflowSnapshot {
	filtered := FilterHotels(s.Search.Hotels, s.Search.Fields.City)
	search := dto.SearchSnapshot{
		SearchFields: s.Search.Fields,
		MinCheckIn:   utils.Today(now),
		MinCheckOut:  minCheckOut(s.Search.Fields.CheckIn, now),
		Hotels:       displayHotels(filtered),
		HasFetched:   s.Search.HasFetched,
		Loading:      s.Search.Loading > 0,
		Error:        s.Search.Error,
	}
	if search.Error == "" && !search.Loading && search.HasFetched && len(filtered) == 0 {
		search.EmptyMessage = emptyMessage(s.Search.Fields.City)
		search.Suggestion = SuggestCity(s.Search.Hotels, s.Search.Fields.City)
	}

	partition := PartitionReservations(s.Reservations.Items, now)
	reservations := dto.ReservationsSnapshot{
		Upcoming:   displayReservations(partition.Upcoming),
		Past:       displayReservations(partition.Past),
		Canceled:   displayReservations(partition.Canceled),
		HasFetched: s.Reservations.HasFetched,
		Loading:    s.Reservations.Loading > 0,
		Error:      s.Reservations.Error,
	}

	return dto.WorkflowSnapshot{
		View:         s.View,
		Modal:        modalSnapshot(s.Modal),
		Search:       search,
		Reservations: reservations,
	}
}

func displayHotels(hotels []models.Hotel) []models.Hotel {
	out := make([]models.Hotel, len(hotels))
	for i, hotel := range hotels {
		hotel.Address = hotel.FormattedAddress()
		out[i] = hotel
	}
	return out
}

// displayReservations works on the partition's fresh slices
func displayReservations(reservations []models.Reservation) []models.Reservation {
	for i := range reservations {
		reservations[i].StatusClass = reservations[i].StatusTag()
	}
	return reservations
}

func modalSnapshot(modal Modal) dto.ModalSnapshot {
	switch m := modal.(type) {
	case *EditModal:
		reservation := m.Reservation
		return dto.ModalSnapshot{
			Kind:        m.Kind(),
			Reservation: &reservation,
			CheckIn:     m.CheckIn,
			CheckOut:    m.CheckOut,
			NumGuests:   m.NumGuests,
			Submitting:  m.Submission.InFlight(),
			Error:       m.Submission.Error,
		}
	case *CancelConfirmModal:
		reservation := m.Reservation
		return dto.ModalSnapshot{
			Kind:        m.Kind(),
			Reservation: &reservation,
			Submitting:  m.Submission.InFlight(),
			Error:       m.Submission.Error,
		}
	case *RoomTypeModal:
		hotel := m.Hotel
		errText := m.Submission.Error
		if errText == "" {
			errText = m.LoadError
		}
		return dto.ModalSnapshot{
			Kind:       m.Kind(),
			Hotel:      &hotel,
			CheckIn:    m.CheckIn,
			CheckOut:   m.CheckOut,
			NumGuests:  m.NumGuests,
			Submitting: m.Submission.InFlight(),
			Error:      errText,
			RoomTypes:  m.Selector.Snapshot(m.Loading > 0),
		}
	default:
		return dto.ModalSnapshot{Kind: constants.ModalNone}
	}
}
