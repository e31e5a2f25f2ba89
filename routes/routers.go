package routes

import (
	"net/http"

	"airhotel-web/controllers"
	"airhotel-web/response"
	"airhotel-web/services"
	"airhotel-web/services/logger"
	"airhotel-web/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

func SetupRoutes(router *gin.Engine, wf *services.Workflow, m *melody.Melody, log logger.Logger) {
	if log == nil {
		log = logger.Nop{}
	}
	ctl := controllers.NewWorkflowController(wf, log)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/login", ctl.Login)

	// ws: toast and workflow events; a fresh socket is told to fetch the state
	router.GET("/ws", func(c *gin.Context) {
		if err := m.HandleRequest(c.Writer, c.Request); err != nil {
			log.Warn("websocket upgrade: %v", err)
		}
	})
	m.HandleConnect(func(s *melody.Session) {
		msg := notification.NewMessageBuilder(notification.EventWorkflowChanged).WithReason("connected").Build()
		if err := s.Write([]byte(msg)); err != nil {
			log.Debug("websocket greeting: %v", err)
		}
	})

	v1 := router.Group("/api/v1")
	v1.GET("/state", ctl.GetState)
	v1.POST("/view", ctl.SwitchView)
	v1.POST("/logout", ctl.Logout)

	v1.PUT("/search/fields", ctl.UpdateSearchFields)
	v1.POST("/search", ctl.Search)
	v1.POST("/hotels/all", ctl.LoadAllHotels)
	v1.POST("/hotels/:id/room-types", ctl.OpenRoomTypeModal)

	v1.POST("/reservations/refresh", ctl.RefreshReservations)
	v1.POST("/reservations/:id/edit", ctl.OpenEditModal)
	v1.POST("/reservations/:id/cancel", ctl.OpenCancelModal)

	modal := v1.Group("/modal")
	modal.DELETE("", ctl.CloseModal)
	modal.PUT("/room-types/guests", ctl.SetRoomTypeGuests)
	modal.POST("/room-types/refresh", ctl.RefreshRoomTypes)
	modal.POST("/room-types/page/next", ctl.NextRoomTypePage)
	modal.POST("/room-types/page/prev", ctl.PrevRoomTypePage)
	modal.PUT("/room-types/selection", ctl.SelectRoomType)
	modal.POST("/room-types/submit", ctl.SubmitRoomType)
	modal.PUT("/edit/fields", ctl.UpdateEditFields)
	modal.POST("/edit/submit", ctl.SubmitEdit)
	modal.POST("/cancel/confirm", ctl.ConfirmCancel)

	v1.DELETE("/toasts/:id", ctl.DismissToast)

	router.NoRoute(response.NotFound)
}
