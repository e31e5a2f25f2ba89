package services

import (
	"context"

	"airhotel-web/builders"
	"airhotel-web/commands"
	"airhotel-web/constants"
	"airhotel-web/errors"
	"airhotel-web/models"
	"airhotel-web/services/logger"
	"airhotel-web/utils"
	"airhotel-web/validator"
)

// ReservationAPI is the reservation half of the REST client
type ReservationAPI interface {
	commands.ReservationAPI
	ListReservations(ctx context.Context) ([]models.Reservation, error)
}

// Notifier receives the outcome of every mutation
type Notifier interface {
	Success(message string) models.Toast
	Error(message string) models.Toast
}

type ReservationServiceOptions struct {
	API      ReservationAPI
	Session  SessionChecker
	Toasts   Notifier
	Currency string
	Clock    utils.Clock
	Logger   logger.Logger
}

// ReservationService creates, modifies and cancels reservations. It never
// patches a local list: callers refetch after a success so the server stays
// the single source of truth.
type ReservationService struct {
	api      ReservationAPI
	session  SessionChecker
	toasts   Notifier
	currency string
	clock    utils.Clock
	logger   logger.Logger
}

// CreateInput is what the room-type modal submits
type CreateInput struct {
	Hotel     *models.Hotel
	RoomType  *models.RoomType
	CheckIn   string
	CheckOut  string
	NumGuests int
	Notes     string
}

// ModifyInput is what the edit modal submits. NumGuests is optional.
type ModifyInput struct {
	CheckIn   string
	CheckOut  string
	NumGuests *int
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	s := &ReservationService{
		api:      opts.API,
		session:  opts.Session,
		toasts:   opts.Toasts,
		currency: opts.Currency,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if s.currency == "" {
		s.currency = constants.DefaultCurrency
	}
	if s.clock == nil {
		s.clock = utils.RealClock{}
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	return s
}

// List fetches the reservations of the current session
func (s *ReservationService) List(ctx context.Context) ([]models.Reservation, error) {
	if !s.session.RequireSession() {
		return nil, errors.ErrNoSession
	}
	reservations, err := s.api.ListReservations(ctx)
	if err != nil {
		s.logger.Warn("list reservations: %v", err)
		return nil, err
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

// Create books the selected room type. Nights and price come from the dates
// and the room type's base rate.
func (s *ReservationService) Create(ctx context.Context, in CreateInput) (*models.Reservation, error) {
	if !s.session.RequireSession() {
		return nil, errors.ErrNoSession
	}
	if in.Hotel == nil {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "Select a hotel to continue.", errors.ErrHotelNotFound)
	}
	if in.RoomType == nil {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, validator.MsgNoRoomTypeChosen, errors.ErrRoomTypeNotFound)
	}
	if err := validator.ValidateDateRange(in.CheckIn, in.CheckOut, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := validator.ValidateGuests(in.NumGuests); err != nil {
		return nil, err
	}

	req := builders.NewReservationRequestBuilder().
		WithHotel(in.Hotel.ID).
		WithRoomType(in.RoomType.ID).
		WithDates(in.CheckIn, in.CheckOut).
		WithGuests(in.NumGuests).
		WithBaseRate(in.RoomType.Rate()).
		WithCurrency(s.currency).
		WithNotes(in.Notes).
		Build()
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	cmd := commands.NewCreateReservationCommand(s.api, req)
	if err := s.execute(ctx, cmd); err != nil {
		return nil, err
	}
	s.logger.Info("created reservation at hotel %d, %d nights, total %.2f", req.HotelID, req.Nights, req.PriceTotal)
	return cmd.Result, nil
}

// Modify moves a reservation to new dates, recomputing the nights
func (s *ReservationService) Modify(ctx context.Context, id int64, in ModifyInput) (*models.Reservation, error) {
	if !s.session.RequireSession() {
		return nil, errors.ErrNoSession
	}
	if err := validator.ValidateDateRange(in.CheckIn, in.CheckOut, s.clock.Now()); err != nil {
		return nil, err
	}

	builder := builders.NewReservationRequestBuilder().WithDates(in.CheckIn, in.CheckOut)
	if in.NumGuests != nil {
		if err := validator.ValidateGuests(*in.NumGuests); err != nil {
			return nil, err
		}
		builder.WithGuests(*in.NumGuests)
	}
	req := builder.BuildPatch()
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	cmd := commands.NewModifyReservationCommand(s.api, id, req)
	if err := s.execute(ctx, cmd); err != nil {
		return nil, err
	}
	s.logger.Info("modified reservation %d to %s..%s", id, req.CheckInDate, req.CheckOutDate)
	return cmd.Result, nil
}

// Cancel asks the server to cancel. The reservation stays in the local list
// until the next refresh reports its new status.
func (s *ReservationService) Cancel(ctx context.Context, id int64) error {
	if !s.session.RequireSession() {
		return errors.ErrNoSession
	}
	if err := s.execute(ctx, commands.NewCancelReservationCommand(s.api, id)); err != nil {
		return err
	}
	s.logger.Info("canceled reservation %d", id)
	return nil
}

func (s *ReservationService) execute(ctx context.Context, cmd commands.ReservationCommand) error {
	if err := cmd.Execute(ctx); err != nil {
		s.logger.Warn("reservation request failed: %v", err)
		s.notifyError(errors.MessageOf(err))
		return err
	}
	if observer, ok := s.session.(SessionObserver); ok && len(cmd.Payload()) > 0 {
		observer.ConfirmFromResponsePayload(cmd.Payload())
	}
	s.notifySuccess(cmd.SuccessMessage())
	return nil
}

func (s *ReservationService) notifySuccess(message string) {
	if s.toasts != nil {
		s.toasts.Success(message)
	}
}

func (s *ReservationService) notifyError(message string) {
	if s.toasts != nil {
		s.toasts.Error(message)
	}
}
