package services

import (
	"context"
	"strings"

	"airhotel-web/errors"
	"airhotel-web/models"
	"airhotel-web/services/logger"
	"airhotel-web/utils"
	"airhotel-web/validator"
)

// HotelAPI is the hotel half of the REST client
type HotelAPI interface {
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	SearchAvailableHotels(ctx context.Context, city, startDate, endDate string) ([]models.Hotel, error)
}

// SessionChecker gates network calls
type SessionChecker interface {
	RequireSession() bool
}

type AvailabilityServiceOptions struct {
	API     HotelAPI
	Session SessionChecker
	Clock   utils.Clock
	Logger  logger.Logger
}

type AvailabilityService struct {
	api     HotelAPI
	session SessionChecker
	clock   utils.Clock
	logger  logger.Logger
}

func NewAvailabilityService(opts AvailabilityServiceOptions) *AvailabilityService {
	s := &AvailabilityService{
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

// Search asks the service for hotels with availability in city for the range.
// Without a session it returns ErrNoSession before any validation or call.
func (s *AvailabilityService) Search(ctx context.Context, city, checkIn, checkOut string) ([]models.Hotel, error) {
	if !s.session.RequireSession() {
		return nil, errors.ErrNoSession
	}
	city = strings.TrimSpace(city)
	if err := validator.ValidateSearch(city, checkIn, checkOut, s.clock.Now()); err != nil {
		return nil, err
	}

	hotels, err := s.api.SearchAvailableHotels(ctx, city, checkIn, checkOut)
	if err != nil {
		s.logger.Warn("search hotels in %q: %v", city, err)
		return nil, err
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	s.logger.Info("search %q %s..%s: %d hotels", city, checkIn, checkOut, len(hotels))
	return hotels, nil
}

// ListAll loads every hotel without a date range
func (s *AvailabilityService) ListAll(ctx context.Context) ([]models.Hotel, error) {
	if !s.session.RequireSession() {
		return nil, errors.ErrNoSession
	}
	hotels, err := s.api.ListHotels(ctx)
	if err != nil {
		s.logger.Warn("list hotels: %v", err)
		return nil, err
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	return hotels, nil
}

// FilterHotels keeps the hotels whose "{city} {name}" contains fragment,
// ignoring case and accents. An empty fragment returns hotels unchanged.
func FilterHotels(hotels []models.Hotel, fragment string) []models.Hotel {
	if strings.TrimSpace(fragment) == "" {
		return hotels
	}
	filtered := make([]models.Hotel, 0, len(hotels))
	for _, hotel := range hotels {
		if utils.ContainsFold(hotel.SearchText(), fragment) {
			filtered = append(filtered, hotel)
		}
	}
	return filtered
}

// SuggestCity proposes a known city close to fragment, for an empty filter result
func SuggestCity(hotels []models.Hotel, fragment string) string {
	cities := make([]string, 0, len(hotels))
	for _, hotel := range hotels {
		if hotel.City != "" {
			cities = append(cities, hotel.City)
		}
	}
	return utils.SuggestClosest(fragment, cities)
}
