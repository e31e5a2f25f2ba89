package controllers

import (
	"net/http"
	"strconv"

	"airhotel-web/dto"
	"airhotel-web/errors"
	"airhotel-web/middleware"
	"airhotel-web/response"
	"airhotel-web/services"
	"airhotel-web/services/logger"
	"airhotel-web/validator"

	"github.com/gin-gonic/gin"
)

// WorkflowController turns local API calls into workflow intents
type WorkflowController struct {
	wf     *services.Workflow
	logger logger.Logger
}

func NewWorkflowController(wf *services.Workflow, log logger.Logger) *WorkflowController {
	if log == nil {
		log = logger.Nop{}
	}
	return &WorkflowController{wf: wf, logger: log}
}

func (ctl *WorkflowController) GetState(c *gin.Context) {
	response.Success(c, ctl.wf.Snapshot())
}

func (ctl *WorkflowController) SwitchView(c *gin.Context) {
	var req dto.ViewRequest
	if !bind(c, &req) {
		return
	}
	reply(c)(ctl.wf.SwitchView(c.Request.Context(), req.View))
}

func (ctl *WorkflowController) UpdateSearchFields(c *gin.Context) {
	var req dto.SearchFieldsRequest
	if !bind(c, &req) {
		return
	}
	reply(c)(ctl.wf.UpdateSearchFields(c.Request.Context(), req))
}

func (ctl *WorkflowController) Search(c *gin.Context) {
	reply(c)(ctl.wf.Search(c.Request.Context()))
}

func (ctl *WorkflowController) LoadAllHotels(c *gin.Context) {
	reply(c)(ctl.wf.LoadAllHotels(c.Request.Context()))
}

func (ctl *WorkflowController) OpenRoomTypeModal(c *gin.Context) {
	hotelID, ok := idParam(c)
	if !ok {
		return
	}
	reply(c)(ctl.wf.OpenRoomTypeModal(c.Request.Context(), hotelID))
}

func (ctl *WorkflowController) SetRoomTypeGuests(c *gin.Context) {
	var req dto.GuestsRequest
	if !bind(c, &req) {
		return
	}
	reply(c)(ctl.wf.SetRoomTypeGuests(req.NumGuests))
}

func (ctl *WorkflowController) RefreshRoomTypes(c *gin.Context) {
	reply(c)(ctl.wf.RefreshRoomTypes(c.Request.Context()))
}

func (ctl *WorkflowController) NextRoomTypePage(c *gin.Context) {
	reply(c)(ctl.wf.NextRoomTypePage())
}

func (ctl *WorkflowController) PrevRoomTypePage(c *gin.Context) {
	reply(c)(ctl.wf.PrevRoomTypePage())
}

func (ctl *WorkflowController) SelectRoomType(c *gin.Context) {
	var req dto.SelectRoomTypeRequest
	if !bind(c, &req) {
		return
	}
	reply(c)(ctl.wf.SelectRoomType(req.RoomTypeID))
}

func (ctl *WorkflowController) SubmitRoomType(c *gin.Context) {
	reply(c)(ctl.wf.SubmitRoomType(c.Request.Context()))
}

func (ctl *WorkflowController) RefreshReservations(c *gin.Context) {
	reply(c)(ctl.wf.RefreshReservations(c.Request.Context()))
}

func (ctl *WorkflowController) OpenEditModal(c *gin.Context) {
	reservationID, ok := idParam(c)
	if !ok {
		return
	}
	reply(c)(ctl.wf.OpenEditModal(reservationID))
}

func (ctl *WorkflowController) UpdateEditFields(c *gin.Context) {
	var req dto.EditFieldsRequest
	if !bind(c, &req) {
		return
	}
	reply(c)(ctl.wf.UpdateEditFields(req))
}

func (ctl *WorkflowController) SubmitEdit(c *gin.Context) {
	reply(c)(ctl.wf.SubmitEdit(c.Request.Context()))
}

func (ctl *WorkflowController) OpenCancelModal(c *gin.Context) {
	reservationID, ok := idParam(c)
	if !ok {
		return
	}
	reply(c)(ctl.wf.OpenCancelModal(reservationID))
}

func (ctl *WorkflowController) ConfirmCancel(c *gin.Context) {
	reply(c)(ctl.wf.ConfirmCancel(c.Request.Context()))
}

func (ctl *WorkflowController) CloseModal(c *gin.Context) {
	response.Success(c, ctl.wf.CloseModal())
}

func (ctl *WorkflowController) DismissToast(c *gin.Context) {
	reply(c)(ctl.wf.DismissToast(c.Param("id")))
}

// Login sends the browser to the identity provider
func (ctl *WorkflowController) Login(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, ctl.wf.LoginURL())
}

func (ctl *WorkflowController) Logout(c *gin.Context) {
	reply(c)(ctl.wf.Logout(c.Request.Context()))
}

// reply writes the snapshot, or hands the error to middleware.ErrorHandler
// with the snapshot attached
func reply(c *gin.Context) func(dto.WorkflowSnapshot, error) {
	return func(snapshot dto.WorkflowSnapshot, err error) {
		if err != nil {
			c.Set(middleware.SnapshotKey, snapshot)
			_ = c.Error(err)
			return
		}
		response.Success(c, snapshot)
	}
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(errors.NewAppError(errors.ErrCodeValidation, "Invalid request body", err))
		return false
	}
	if err := validator.Struct(req); err != nil {
		_ = c.Error(err)
		return false
	}
	return true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(errors.NewAppError(errors.ErrCodeValidation, "Invalid id", err))
		return 0, false
	}
	return id, true
}
