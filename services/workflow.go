package services

import (
	"context"
	"strings"
	"sync"

	"airhotel-web/constants"
	"airhotel-web/dto"
	"airhotel-web/errors"
	"airhotel-web/models"
	"airhotel-web/services/logger"
	"airhotel-web/services/notification"
	"airhotel-web/utils"
	"airhotel-web/validator"
)

// SessionController is the session gate as seen by the workflow
type SessionController interface {
	SessionChecker
	Initialize(ctx context.Context) models.SessionState
	Logout(ctx context.Context) error
	LoginURL() string
	State() models.SessionState
}

// ToastBoard is the notification queue as seen by the workflow
type ToastBoard interface {
	Notifier
	Dismiss(id string) bool
	List() []models.Toast
}

type WorkflowOptions struct {
	Session      SessionController
	Availability *AvailabilityService
	RoomTypes    *RoomTypeService
	Reservations *ReservationService
	Toasts       ToastBoard
	Cache        Cache
	CacheKey     string
	Broadcaster  notification.Service
	Clock        utils.Clock
	Logger       logger.Logger
}

// Workflow owns the state of one user's booking session. Every exported
// method is a user intent. Network calls run without the lock and their
// results are folded in once they settle, so the last response to arrive
// wins for searches and refreshes. Modal results are dropped when the modal
// they belong to has been closed or replaced.
type Workflow struct {
	session      SessionController
	availability *AvailabilityService
	roomTypes    *RoomTypeService
	reservations *ReservationService
	toasts       ToastBoard
	cache        Cache
	cacheKey     string
	broadcaster  notification.Service
	clock        utils.Clock
	logger       logger.Logger

	mu       sync.Mutex
	state    WorkflowState
	modalSeq uint64
}

func NewWorkflow(opts WorkflowOptions) *Workflow {
	w := &Workflow{
		session:      opts.Session,
		availability: opts.Availability,
		roomTypes:    opts.RoomTypes,
		reservations: opts.Reservations,
		toasts:       opts.Toasts,
		cache:        opts.Cache,
		cacheKey:     opts.CacheKey,
		broadcaster:  opts.Broadcaster,
		clock:        opts.Clock,
		logger:       opts.Logger,
		state:        NewWorkflowState(),
	}
	if w.cache == nil {
		w.cache = NewMemoryCache()
	}
	if w.clock == nil {
		w.clock = utils.RealClock{}
	}
	if w.logger == nil {
		w.logger = logger.Nop{}
	}
	return w
}

// Start recovers the session and the remembered search fields
func (w *Workflow) Start(ctx context.Context) dto.WorkflowSnapshot {
	state := w.session.Initialize(ctx)
	w.logger.Info("session recovered: %t", state.Authenticated)

	fields, err := GetLastSearch(ctx, w.cache, w.cacheKey)
	if err != nil {
		w.logger.Warn("restore last search: %v", err)
	}
	if fields != nil {
		restored := *fields
		if utils.IsPast(restored.CheckIn, w.clock.Now()) {
			restored.CheckIn = ""
			restored.CheckOut = ""
		}
		w.mu.Lock()
		w.state.Search.Fields = restored
		w.mu.Unlock()
	}
	return w.Snapshot()
}

// Snapshot renders the current state
func (w *Workflow) Snapshot() dto.WorkflowSnapshot {
	w.mu.Lock()
	snap := w.state.snapshot(w.clock.Now())
	w.mu.Unlock()

	snap.Session = w.session.State()
	snap.LoginURL = w.session.LoginURL()
	if w.toasts != nil {
		snap.Toasts = w.toasts.List()
	}
	if snap.Toasts == nil {
		snap.Toasts = []models.Toast{}
	}
	return snap
}

// LoginURL is where the page sends the browser to sign in
func (w *Workflow) LoginURL() string {
	return w.session.LoginURL()
}

// SwitchView activates a view. Entering the reservations view fetches the
// reservations once for that activation. Any open modal is closed.
func (w *Workflow) SwitchView(ctx context.Context, view string) (dto.WorkflowSnapshot, error) {
	if view != constants.ViewSearch && view != constants.ViewReservations {
		return w.Snapshot(), errors.NewAppError(errors.ErrCodeValidation, "Unknown view: "+view, nil)
	}

	w.mu.Lock()
	activated := w.state.View != view && view == constants.ViewReservations
	w.state.View = view
	w.closeModalLocked()
	w.mu.Unlock()

	if activated {
		if err := w.fetchReservations(ctx); err != nil {
			return w.Snapshot(), err
		}
	}
	return w.Snapshot(), nil
}

// UpdateSearchFields edits the search inputs. A new check-in that leaves no
// night before the kept check-out clears it. Nothing is fetched.
func (w *Workflow) UpdateSearchFields(ctx context.Context, req dto.SearchFieldsRequest) (dto.WorkflowSnapshot, error) {
	w.mu.Lock()
	merged := MergeSearchFields(w.state.Search.Fields, req)
	if err := validateDateUpdate(req.CheckIn, req.CheckOut, merged, w.clock.Now()); err != nil {
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	w.state.Search.Fields = merged
	w.mu.Unlock()

	w.rememberSearch(ctx, merged)
	return w.Snapshot(), nil
}

// Search queries the service for the current inputs. Validation failures
// and request failures go to the banner; the hotel list is only replaced by
// a successful response.
func (w *Workflow) Search(ctx context.Context) (dto.WorkflowSnapshot, error) {
	if !w.session.RequireSession() {
		return w.Snapshot(), nil
	}

	w.mu.Lock()
	fields := w.state.Search.Fields
	if err := validator.ValidateSearch(fields.City, fields.CheckIn, fields.CheckOut, w.clock.Now()); err != nil {
		w.state.Search.Error = errors.MessageOf(err)
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	w.state.Search.Loading++
	w.state.Search.Error = ""
	w.mu.Unlock()

	hotels, err := w.availability.Search(ctx, fields.City, fields.CheckIn, fields.CheckOut)
	w.foldHotels(hotels, err)
	if err == nil {
		w.rememberSearch(ctx, fields)
		w.changed("hotels")
	}
	return w.Snapshot(), ignoreNoSession(err)
}

// LoadAllHotels lists every hotel, without dates
func (w *Workflow) LoadAllHotels(ctx context.Context) (dto.WorkflowSnapshot, error) {
	if !w.session.RequireSession() {
		return w.Snapshot(), nil
	}
	w.mu.Lock()
	w.state.Search.Loading++
	w.state.Search.Error = ""
	w.mu.Unlock()

	hotels, err := w.availability.ListAll(ctx)
	w.foldHotels(hotels, err)
	if err == nil {
		w.changed("hotels")
	}
	return w.Snapshot(), ignoreNoSession(err)
}

func (w *Workflow) foldHotels(hotels []models.Hotel, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Search.Loading--
	if err != nil {
		if errors.CodeOf(err) != errors.ErrCodeNoSession {
			w.state.Search.Error = errors.MessageOf(err)
		}
		return
	}
	w.state.Search.Hotels = hotels
	w.state.Search.HasFetched = true
	w.state.Search.Error = ""
}

// OpenRoomTypeModal opens the room-type picker for a listed hotel and loads
// its availability for the searched dates with one guest.
func (w *Workflow) OpenRoomTypeModal(ctx context.Context, hotelID int64) (dto.WorkflowSnapshot, error) {
	if !w.session.RequireSession() {
		return w.Snapshot(), nil
	}

	w.mu.Lock()
	hotel, ok := w.findHotelLocked(hotelID)
	if !ok {
		w.mu.Unlock()
		return w.Snapshot(), errors.NewAppError(errors.ErrCodeNotFound, "Hotel not found", errors.ErrHotelNotFound)
	}
	w.modalSeq++
	w.state.Modal = &RoomTypeModal{
		Seq:       w.modalSeq,
		Hotel:     hotel,
		CheckIn:   w.state.Search.Fields.CheckIn,
		CheckOut:  w.state.Search.Fields.CheckOut,
		NumGuests: constants.DefaultGuests,
	}
	w.mu.Unlock()

	return w.RefreshRoomTypes(ctx)
}

// SetRoomTypeGuests changes the guest count used by the next refresh
func (w *Workflow) SetRoomTypeGuests(numGuests int) (dto.WorkflowSnapshot, error) {
	w.mu.Lock()
	modal, ok := w.state.Modal.(*RoomTypeModal)
	if ok {
		modal.NumGuests = numGuests
	}
	w.mu.Unlock()
	if !ok {
		return w.Snapshot(), noModalError()
	}
	return w.Snapshot(), nil
}

// RefreshRoomTypes reloads the open room-type modal. The page returns to 1
// and the cheapest room type becomes the selection.
func (w *Workflow) RefreshRoomTypes(ctx context.Context) (dto.WorkflowSnapshot, error) {
	if !w.session.RequireSession() {
		return w.Snapshot(), nil
	}

	w.mu.Lock()
	modal, ok := w.state.Modal.(*RoomTypeModal)
	if !ok {
		w.mu.Unlock()
		return w.Snapshot(), noModalError()
	}
	if err := validator.ValidateGuests(modal.NumGuests); err != nil {
		modal.LoadError = errors.MessageOf(err)
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	seq := modal.Seq
	hotelID, checkIn, checkOut, guests := modal.Hotel.ID, modal.CheckIn, modal.CheckOut, modal.NumGuests
	modal.Loading++
	modal.LoadError = ""
	w.mu.Unlock()

	items, err := w.roomTypes.LoadAvailability(ctx, hotelID, checkIn, checkOut, guests)

	w.mu.Lock()
	if current, ok := w.state.Modal.(*RoomTypeModal); ok && current.Seq == seq {
		current.Loading--
		if err != nil {
			current.LoadError = errors.MessageOf(err)
		} else {
			current.Selector.Apply(items)
		}
	}
	w.mu.Unlock()
	return w.Snapshot(), ignoreNoSession(err)
}

func (w *Workflow) NextRoomTypePage() (dto.WorkflowSnapshot, error) {
	return w.withRoomTypeModal(func(m *RoomTypeModal) error {
		m.Selector.NextPage()
		return nil
	})
}

func (w *Workflow) PrevRoomTypePage() (dto.WorkflowSnapshot, error) {
	return w.withRoomTypeModal(func(m *RoomTypeModal) error {
		m.Selector.PrevPage()
		return nil
	})
}

func (w *Workflow) SelectRoomType(roomTypeID int64) (dto.WorkflowSnapshot, error) {
	return w.withRoomTypeModal(func(m *RoomTypeModal) error {
		return m.Selector.Select(roomTypeID)
	})
}

func (w *Workflow) withRoomTypeModal(fn func(m *RoomTypeModal) error) (dto.WorkflowSnapshot, error) {
	w.mu.Lock()
	modal, ok := w.state.Modal.(*RoomTypeModal)
	var err error
	if ok {
		err = fn(modal)
	} else {
		err = noModalError()
	}
	w.mu.Unlock()
	return w.Snapshot(), err
}

// SubmitRoomType books the selected room type. On success the modal closes,
// the reservations view opens and the list is fetched once.
func (w *Workflow) SubmitRoomType(ctx context.Context) (dto.WorkflowSnapshot, error) {
	if !w.session.RequireSession() {
		return w.Snapshot(), nil
	}

	w.mu.Lock()
	modal, ok := w.state.Modal.(*RoomTypeModal)
	if !ok {
		w.mu.Unlock()
		return w.Snapshot(), noModalError()
	}
	selected, hasSelection := modal.Selector.Selected()
	if !hasSelection {
		w.mu.Unlock()
		return w.Snapshot(), errors.NewAppError(errors.ErrCodeRequiredField, validator.MsgNoRoomTypeChosen, nil)
	}
	if err := beginSubmission(&modal.Submission); err != nil {
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	seq := modal.Seq
	hotel := modal.Hotel
	input := CreateInput{
		Hotel:     &hotel,
		RoomType:  &selected,
		CheckIn:   modal.CheckIn,
		CheckOut:  modal.CheckOut,
		NumGuests: modal.NumGuests,
	}
	w.mu.Unlock()

	_, err := w.reservations.Create(ctx, input)
	if err != nil {
		w.settleFailure(seq, err)
		return w.Snapshot(), err
	}

	w.mu.Lock()
	if w.settleSuccessLocked(seq) {
		w.state.View = constants.ViewReservations
	}
	w.mu.Unlock()

	refreshErr := w.fetchReservations(ctx)
	return w.Snapshot(), refreshErr
}

// OpenEditModal starts editing a listed reservation with its current values
func (w *Workflow) OpenEditModal(reservationID int64) (dto.WorkflowSnapshot, error) {
	w.mu.Lock()
	reservation, err := w.findEditableLocked(reservationID)
	if err != nil {
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	guests := reservation.NumGuests
	if guests < 1 {
		guests = constants.DefaultGuests
	}
	w.modalSeq++
	w.state.Modal = &EditModal{
		Seq:         w.modalSeq,
		Reservation: reservation,
		CheckIn:     reservation.CheckInDate,
		CheckOut:    reservation.CheckOutDate,
		NumGuests:   guests,
	}
	w.mu.Unlock()
	return w.Snapshot(), nil
}

// UpdateEditFields edits the open edit modal with the same date cascade as
// the search inputs. Check-out cannot be chosen before check-in.
func (w *Workflow) UpdateEditFields(req dto.EditFieldsRequest) (dto.WorkflowSnapshot, error) {
	w.mu.Lock()
	modal, ok := w.state.Modal.(*EditModal)
	if !ok {
		w.mu.Unlock()
		return w.Snapshot(), noModalError()
	}
	current := dto.SearchFields{CheckIn: modal.CheckIn, CheckOut: modal.CheckOut}
	merged := MergeSearchFields(current, dto.SearchFieldsRequest{CheckIn: req.CheckIn, CheckOut: req.CheckOut})
	err := validateDateUpdate(req.CheckIn, req.CheckOut, merged, w.clock.Now())
	if err == nil && req.NumGuests != nil {
		err = validator.ValidateGuests(*req.NumGuests)
	}
	if err != nil {
		modal.Submission.SetInlineError(errors.MessageOf(err))
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	if req.NumGuests != nil {
		modal.NumGuests = *req.NumGuests
	}
	modal.CheckIn = merged.CheckIn
	modal.CheckOut = merged.CheckOut
	modal.Submission.SetInlineError("")
	w.mu.Unlock()
	return w.Snapshot(), nil
}

// SubmitEdit sends the edited dates and guests
func (w *Workflow) SubmitEdit(ctx context.Context) (dto.WorkflowSnapshot, error) {
	if !w.session.RequireSession() {
		return w.Snapshot(), nil
	}

	w.mu.Lock()
	modal, ok := w.state.Modal.(*EditModal)
	if !ok {
		w.mu.Unlock()
		return w.Snapshot(), noModalError()
	}
	if err := beginSubmission(&modal.Submission); err != nil {
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	seq := modal.Seq
	id := modal.Reservation.ID
	guests := modal.NumGuests
	input := ModifyInput{CheckIn: modal.CheckIn, CheckOut: modal.CheckOut, NumGuests: &guests}
	w.mu.Unlock()

	if _, err := w.reservations.Modify(ctx, id, input); err != nil {
		w.settleFailure(seq, err)
		return w.Snapshot(), err
	}

	w.mu.Lock()
	w.settleSuccessLocked(seq)
	w.mu.Unlock()

	refreshErr := w.fetchReservations(ctx)
	return w.Snapshot(), refreshErr
}

// OpenCancelModal asks for confirmation before canceling a reservation
func (w *Workflow) OpenCancelModal(reservationID int64) (dto.WorkflowSnapshot, error) {
	w.mu.Lock()
	reservation, err := w.findEditableLocked(reservationID)
	if err != nil {
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	w.modalSeq++
	w.state.Modal = &CancelConfirmModal{Seq: w.modalSeq, Reservation: reservation}
	w.mu.Unlock()
	return w.Snapshot(), nil
}

// ConfirmCancel cancels the reservation of the confirm modal. The list is
// refetched to show the status the server reports.
func (w *Workflow) ConfirmCancel(ctx context.Context) (dto.WorkflowSnapshot, error) {
	if !w.session.RequireSession() {
		return w.Snapshot(), nil
	}

	w.mu.Lock()
	modal, ok := w.state.Modal.(*CancelConfirmModal)
	if !ok {
		w.mu.Unlock()
		return w.Snapshot(), noModalError()
	}
	if err := beginSubmission(&modal.Submission); err != nil {
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	seq := modal.Seq
	id := modal.Reservation.ID
	w.mu.Unlock()

	if err := w.reservations.Cancel(ctx, id); err != nil {
		w.settleFailure(seq, err)
		return w.Snapshot(), err
	}

	w.mu.Lock()
	w.settleSuccessLocked(seq)
	w.mu.Unlock()

	refreshErr := w.fetchReservations(ctx)
	return w.Snapshot(), refreshErr
}

// CloseModal drops the open modal with its target, flags and errors
func (w *Workflow) CloseModal() dto.WorkflowSnapshot {
	w.mu.Lock()
	w.closeModalLocked()
	w.mu.Unlock()
	return w.Snapshot()
}

// RefreshReservations refetches the reservation list
func (w *Workflow) RefreshReservations(ctx context.Context) (dto.WorkflowSnapshot, error) {
	err := w.fetchReservations(ctx)
	return w.Snapshot(), err
}

// AutoRefresh refetches reservations while their view is shown and no modal
// is open. It is driven by the scheduler.
func (w *Workflow) AutoRefresh(ctx context.Context) error {
	w.mu.Lock()
	due := w.state.View == constants.ViewReservations && w.state.Modal.Kind() == constants.ModalNone
	w.mu.Unlock()
	if !due {
		return nil
	}
	return w.fetchReservations(ctx)
}

// DismissToast removes a toast before it expires
func (w *Workflow) DismissToast(id string) (dto.WorkflowSnapshot, error) {
	if w.toasts == nil || !w.toasts.Dismiss(id) {
		return w.Snapshot(), errors.NewAppError(errors.ErrCodeNotFound, "Notification not found", nil)
	}
	return w.Snapshot(), nil
}

// Logout ends the session. Only a successful logout clears hotels,
// reservations, search inputs and the open modal. Toasts already shown keep
// their own timers.
func (w *Workflow) Logout(ctx context.Context) (dto.WorkflowSnapshot, error) {
	if err := w.session.Logout(ctx); err != nil {
		w.logger.Warn("logout: %v", err)
		w.notifyError(errors.MessageOf(err))
		return w.Snapshot(), err
	}

	w.mu.Lock()
	w.state = NewWorkflowState()
	w.modalSeq++
	w.mu.Unlock()

	if err := ClearLastSearch(ctx, w.cache, w.cacheKey); err != nil {
		w.logger.Warn("clear last search: %v", err)
	}
	if w.toasts != nil {
		w.toasts.Success("You have been signed out.")
	}
	w.changed("logout")
	return w.Snapshot(), nil
}

// Repartition tells connected pages to re-render, used when the day changes
func (w *Workflow) Repartition(reason string) {
	w.changed(reason)
}

func (w *Workflow) fetchReservations(ctx context.Context) error {
	if !w.session.RequireSession() {
		return nil
	}
	w.mu.Lock()
	w.state.Reservations.Loading++
	w.state.Reservations.Error = ""
	w.mu.Unlock()

	items, err := w.reservations.List(ctx)

	w.mu.Lock()
	w.state.Reservations.Loading--
	if err != nil {
		if errors.CodeOf(err) != errors.ErrCodeNoSession {
			w.state.Reservations.Error = errors.MessageOf(err)
		}
	} else {
		w.state.Reservations.Items = items
		w.state.Reservations.HasFetched = true
		w.state.Reservations.Error = ""
	}
	w.mu.Unlock()

	if err == nil {
		w.changed("reservations")
	}
	return ignoreNoSession(err)
}

// settleFailure keeps the modal open with the error inline. Request
// failures were already reported as a toast by the reservation service.
func (w *Workflow) settleFailure(seq uint64, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	submission := w.submissionLocked(seq)
	if submission == nil {
		return
	}
	message := errors.MessageOf(err)
	if errors.CodeOf(err) == errors.ErrCodeNoSession {
		message = ""
	}
	if failErr := submission.Fail(message); failErr != nil {
		w.logger.Error("settle failed submission: %v", failErr)
	}
}

// settleSuccessLocked closes the modal the submission belongs to. It reports
// false when that modal is already gone.
func (w *Workflow) settleSuccessLocked(seq uint64) bool {
	submission := w.submissionLocked(seq)
	if submission == nil {
		return false
	}
	if err := submission.Succeed(); err != nil {
		w.logger.Error("settle submission: %v", err)
	}
	w.closeModalLocked()
	return true
}

func (w *Workflow) submissionLocked(seq uint64) *models.Submission {
	if w.state.Modal.Generation() != seq {
		return nil
	}
	switch m := w.state.Modal.(type) {
	case *EditModal:
		return &m.Submission
	case *CancelConfirmModal:
		return &m.Submission
	case *RoomTypeModal:
		return &m.Submission
	}
	return nil
}

func (w *Workflow) closeModalLocked() {
	w.state.Modal = NoModal{}
}

func (w *Workflow) findHotelLocked(id int64) (models.Hotel, bool) {
	for _, hotel := range w.state.Search.Hotels {
		if hotel.ID == id {
			return hotel, true
		}
	}
	return models.Hotel{}, false
}

func (w *Workflow) findEditableLocked(id int64) (models.Reservation, error) {
	for _, reservation := range w.state.Reservations.Items {
		if reservation.ID != id {
			continue
		}
		if reservation.IsCanceled() {
			return models.Reservation{}, errors.NewAppError(errors.ErrCodeInvalidOperation, "Canceled reservations cannot be changed.", nil)
		}
		return reservation, nil
	}
	return models.Reservation{}, errors.NewAppError(errors.ErrCodeNotFound, "Reservation not found", errors.ErrReservationNotFound)
}

func (w *Workflow) rememberSearch(ctx context.Context, fields dto.SearchFields) {
	if err := SaveLastSearch(ctx, w.cache, w.cacheKey, fields); err != nil {
		w.logger.Warn("remember search: %v", err)
	}
}

func (w *Workflow) notifyError(message string) {
	if w.toasts != nil && strings.TrimSpace(message) != "" {
		w.toasts.Error(message)
	}
}

func (w *Workflow) changed(reason string) {
	if w.broadcaster == nil {
		return
	}
	message := notification.NewMessageBuilder(notification.EventWorkflowChanged).WithReason(reason).Build()
	if err := w.broadcaster.SendMessage(message); err != nil {
		w.logger.Debug("broadcast workflow change: %v", err)
	}
}

func beginSubmission(submission *models.Submission) error {
	if err := submission.Begin(); err != nil {
		return errors.NewAppError(errors.ErrCodeSubmissionInFlight, "A request is already in progress.", err)
	}
	return nil
}

func noModalError() error {
	return errors.NewAppError(errors.ErrCodeInvalidOperation, "No matching dialog is open.", errors.ErrNoModal)
}

// ignoreNoSession turns the missing session case into a silent no-op
func ignoreNoSession(err error) error {
	if errors.CodeOf(err) == errors.ErrCodeNoSession {
		return nil
	}
	return err
}
