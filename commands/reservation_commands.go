package commands

import (
	"context"

	"airhotel-web/dto"
	"airhotel-web/models"
)

// ReservationAPI is the part of the REST client the commands need
type ReservationAPI interface {
	CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (*models.Reservation, []byte, error)
	PatchReservation(ctx context.Context, id int64, req dto.PatchReservationRequest) (*models.Reservation, []byte, error)
	CancelReservation(ctx context.Context, id int64) ([]byte, error)
}

// ReservationCommand is one mutating call against the reservations endpoint.
// Payload holds the raw response body once Execute succeeded.
type ReservationCommand interface {
	Execute(ctx context.Context) error
	Payload() []byte
	SuccessMessage() string
}

type payloadHolder struct {
	payload []byte
}

func (p *payloadHolder) Payload() []byte {
	return p.payload
}

// CreateReservationCommand issues POST /reservations
type CreateReservationCommand struct {
	payloadHolder
	api     ReservationAPI
	request dto.CreateReservationRequest
	Result  *models.Reservation
}

func NewCreateReservationCommand(api ReservationAPI, request dto.CreateReservationRequest) *CreateReservationCommand {
	return &CreateReservationCommand{
		api:     api,
		request: request,
	}
}

func (c *CreateReservationCommand) Execute(ctx context.Context) error {
	res, body, err := c.api.CreateReservation(ctx, c.request)
	if err != nil {
		return err
	}
	c.Result = res
	c.payload = body
	return nil
}

func (c *CreateReservationCommand) SuccessMessage() string {
	return "Reservation created."
}

// ModifyReservationCommand issues PATCH /reservations/{id}
type ModifyReservationCommand struct {
	payloadHolder
	api     ReservationAPI
	id      int64
	request dto.PatchReservationRequest
	Result  *models.Reservation
}

func NewModifyReservationCommand(api ReservationAPI, id int64, request dto.PatchReservationRequest) *ModifyReservationCommand {
	return &ModifyReservationCommand{
		api:     api,
		id:      id,
		request: request,
	}
}

func (c *ModifyReservationCommand) Execute(ctx context.Context) error {
	res, body, err := c.api.PatchReservation(ctx, c.id, c.request)
	if err != nil {
		return err
	}
	c.Result = res
	c.payload = body
	return nil
}

func (c *ModifyReservationCommand) SuccessMessage() string {
	return "Reservation updated."
}

// CancelReservationCommand issues DELETE /reservations/{id}
type CancelReservationCommand struct {
	payloadHolder
	api ReservationAPI
	id  int64
}

func NewCancelReservationCommand(api ReservationAPI, id int64) *CancelReservationCommand {
	return &CancelReservationCommand{
		api: api,
		id:  id,
	}
}

func (c *CancelReservationCommand) Execute(ctx context.Context) error {
	body, err := c.api.CancelReservation(ctx, c.id)
	if err != nil {
		return err
	}
	c.payload = body
	return nil
}

func (c *CancelReservationCommand) SuccessMessage() string {
	return "Reservation canceled."
}
