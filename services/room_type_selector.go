package services

import (
	"context"
	"sort"

	"airhotel-web/constants"
	"airhotel-web/dto"
	"airhotel-web/errors"
	"airhotel-web/models"
	"airhotel-web/services/logger"
	"airhotel-web/utils"
	"airhotel-web/validator"
)

// SortRoomTypes returns a copy ordered by ascending base rate. Room types
// without a rate go last and ties keep the server order.
func SortRoomTypes(items []models.RoomType) []models.RoomType {
	sorted := make([]models.RoomType, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RankRate() < sorted[j].RankRate()
	})
	return sorted
}

// RoomTypeSelector pages through ranked room types and remembers the choice.
// The zero value is an empty selector on page 1.
type RoomTypeSelector struct {
	items      []models.RoomType
	page       int
	selectedID int64
	selected   bool
}

// Apply replaces the list, returns to page 1 and selects the cheapest room type
func (s *RoomTypeSelector) Apply(items []models.RoomType) {
	s.items = SortRoomTypes(items)
	s.page = 1
	s.selectedID = 0
	s.selected = false
	if len(s.items) > 0 {
		s.selectedID = s.items[0].ID
		s.selected = true
	}
}

// TotalPages is ceil(count / page size), never less than 1
func (s *RoomTypeSelector) TotalPages() int {
	pages := (len(s.items) + constants.RoomTypePageSize - 1) / constants.RoomTypePageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func (s *RoomTypeSelector) Page() int {
	if s.page < 1 {
		return 1
	}
	return s.page
}

func (s *RoomTypeSelector) PageItems() []models.RoomType {
	start := (s.Page() - 1) * constants.RoomTypePageSize
	if start >= len(s.items) {
		return []models.RoomType{}
	}
	end := start + constants.RoomTypePageSize
	if end > len(s.items) {
		end = len(s.items)
	}
	return s.items[start:end]
}

func (s *RoomTypeSelector) NextPage() int {
	if s.Page() < s.TotalPages() {
		s.page = s.Page() + 1
	}
	return s.Page()
}

func (s *RoomTypeSelector) PrevPage() int {
	if s.Page() > 1 {
		s.page = s.Page() - 1
	}
	return s.Page()
}

// Select chooses a room type from the current list. The page is unchanged.
func (s *RoomTypeSelector) Select(id int64) error {
	for _, item := range s.items {
		if item.ID == id {
			s.selectedID = id
			s.selected = true
			return nil
		}
	}
	return errors.NewAppError(errors.ErrCodeNotFound, "Room type is no longer available", errors.ErrRoomTypeNotFound)
}

func (s *RoomTypeSelector) Selected() (models.RoomType, bool) {
	if !s.selected {
		return models.RoomType{}, false
	}
	for _, item := range s.items {
		if item.ID == s.selectedID {
			return item, true
		}
	}
	return models.RoomType{}, false
}

// Snapshot renders the current page for the page
func (s *RoomTypeSelector) Snapshot(loading bool) *dto.RoomTypePage {
	page := &dto.RoomTypePage{
		Items:          append([]models.RoomType{}, s.PageItems()...),
		Total:          len(s.items),
		Page:           s.Page(),
		TotalPages:     s.TotalPages(),
		Loading:        loading,
		ShowPagination: len(s.items) > constants.RoomTypePageSize,
	}
	if selected, ok := s.Selected(); ok {
		page.SelectedID = selected.ID
	}
	return page
}

// RoomTypeAPI is the room type half of the REST client
type RoomTypeAPI interface {
	RoomTypeAvailability(ctx context.Context, hotelID int64, checkIn, checkOut string, numGuests int) ([]models.RoomType, error)
}

type RoomTypeServiceOptions struct {
	API     RoomTypeAPI
	Session SessionChecker
	Clock   utils.Clock
	Logger  logger.Logger
}

type RoomTypeService struct {
	api     RoomTypeAPI
	session SessionChecker
	clock   utils.Clock
	logger  logger.Logger
}

func NewRoomTypeService(opts RoomTypeServiceOptions) *RoomTypeService {
	s := &RoomTypeService{
		api:     opts.API,
		session: opts.Session,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}
	if s.clock == nil {
		s.clock = utils.RealClock{}
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	return s
}

// LoadAvailability fetches the room types of hotelID for the range and guest
// count, ranked by price
func (s *RoomTypeService) LoadAvailability(ctx context.Context, hotelID int64, checkIn, checkOut string, numGuests int) ([]models.RoomType, error) {
	if !s.session.RequireSession() {
		return nil, errors.ErrNoSession
	}
	if err := validator.ValidateGuests(numGuests); err != nil {
		return nil, err
	}
	if err := validator.ValidateDateRange(checkIn, checkOut, s.clock.Now()); err != nil {
		return nil, err
	}

	roomTypes, err := s.api.RoomTypeAvailability(ctx, hotelID, checkIn, checkOut, numGuests)
	if err != nil {
		s.logger.Warn("room types of hotel %d: %v", hotelID, err)
		return nil, err
	}
	return SortRoomTypes(roomTypes), nil
}
