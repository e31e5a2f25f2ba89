package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"airhotel-web/constants"
	"airhotel-web/dto"
	"airhotel-web/middleware"
	"airhotel-web/services"
	"airhotel-web/services/notification"
	"airhotel-web/utils"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/jarcoal/httpmock"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiBase = "http://api.test"

type envelope struct {
	Code int                  `json:"code"`
	Mess string               `json:"mess"`
	Data dto.WorkflowSnapshot `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := services.NewAPIClient(services.APIClientOptions{BaseURL: apiBase, HTTPClient: httpClient})
	require.NoError(t, err)
	cache := services.NewMemoryCache()
	gate := services.NewSessionGate(services.SessionGateOptions{API: client, Cache: cache, CacheKey: "test"})
	client.SetSessionObserver(gate)
	require.True(t, gate.ConfirmFromResponsePayload([]byte(`{"session":"tok"}`)))

	m := melody.New()
	toasts := notification.NewToastQueue(notification.ToastQueueOptions{
		Duration: time.Minute,
		Notifier: notification.NewMelodyService(m),
	})
	t.Cleanup(toasts.Close)

	clock := utils.FixedClock{T: time.Date(2025, 5, 20, 9, 30, 0, 0, time.Local)}
	wf := services.NewWorkflow(services.WorkflowOptions{
		Session:      gate,
		Availability: services.NewAvailabilityService(services.AvailabilityServiceOptions{API: client, Session: gate, Clock: clock}),
		RoomTypes:    services.NewRoomTypeService(services.RoomTypeServiceOptions{API: client, Session: gate, Clock: clock}),
		Reservations: services.NewReservationService(services.ReservationServiceOptions{API: client, Session: gate, Toasts: toasts, Clock: clock}),
		Toasts:       toasts,
		Cache:        cache,
		CacheKey:     "test",
		Broadcaster:  notification.NewMelodyService(m),
		Clock:        clock,
	})

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(nil))
	SetupRoutes(router, wf, m, nil)
	return router
}

func call(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPingAndLogin(t *testing.T) {
	router := newTestRouter(t)

	w, _ := call(t, router, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w, _ = call(t, router, http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, apiBase+"/oauth2/authorization/google", w.Header().Get("Location"))

	w, env := call(t, router, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, env.Code)
}

func TestStateAndView(t *testing.T) {
	router := newTestRouter(t)

	w, env := call(t, router, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Code)
	assert.Equal(t, constants.ViewSearch, env.Data.View)
	assert.True(t, env.Data.Session.Authenticated)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w, _ = call(t, router, http.MethodPost, "/api/v1/view", `{"view":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = call(t, router, http.MethodPost, "/api/v1/view", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	httpmock.RegisterResponder(http.MethodGet, apiBase+"/reservations",
		httpmock.NewStringResponder(200, `[{"id":1,"hotelId":1,"status":"CONFIRMED","checkInDate":"2025-06-01","checkOutDate":"2025-06-03"}]`))
	w, env = call(t, router, http.MethodPost, "/api/v1/view", `{"view":"reservations"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ViewReservations, env.Data.View)
	require.Len(t, env.Data.Reservations.Upcoming, 1)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSearchValidationIsBadRequestWithBanner(t *testing.T) {
	router := newTestRouter(t)

	w, env := call(t, router, http.MethodPost, "/api/v1/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a destination.", env.Mess)
	assert.Equal(t, "Please enter a destination.", env.Data.Search.Error)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestBookingThroughTheAPI(t *testing.T) {
	router := newTestRouter(t)
	httpmock.RegisterResponder(http.MethodGet, apiBase+"/hotels/search/available",
		httpmock.NewStringResponder(200, `[{"id":1,"name":"Le Meurice","city":"Paris"}]`))
	httpmock.RegisterResponder(http.MethodGet, apiBase+"/hotels/1/room-types/availability",
		httpmock.NewStringResponder(200, `[{"roomTypeId":5,"name":"Suite","baseRate":480},{"roomTypeId":6,"name":"Classic","baseRate":210.5}]`))
	httpmock.RegisterResponder(http.MethodPost, apiBase+"/reservations",
		httpmock.NewStringResponder(201, `{"id":9,"hotelId":1,"status":"PENDING"}`))
	httpmock.RegisterResponder(http.MethodGet, apiBase+"/reservations",
		httpmock.NewStringResponder(200, `[{"id":9,"hotelId":1,"status":"PENDING","checkInDate":"2025-06-01","checkOutDate":"2025-06-03"}]`))

	w, env := call(t, router, http.MethodPut, "/api/v1/search/fields",
		`{"city":"Paris","checkIn":"2025-06-01","checkOut":"2025-06-03"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Paris", env.Data.Search.City)

	w, env = call(t, router, http.MethodPost, "/api/v1/search", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.Data.Search.Hotels, 1)

	w, _ = call(t, router, http.MethodPost, "/api/v1/hotels/abc/room-types", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = call(t, router, http.MethodPost, "/api/v1/hotels/42/room-types", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = call(t, router, http.MethodPost, "/api/v1/hotels/1/room-types", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ModalRoomType, env.Data.Modal.Kind)
	require.NotNil(t, env.Data.Modal.RoomTypes)
	require.Len(t, env.Data.Modal.RoomTypes.Items, 2)
	assert.Equal(t, int64(6), env.Data.Modal.RoomTypes.Items[0].ID)

	assert.Equal(t, int64(6), env.Data.Modal.RoomTypes.SelectedID)

	w, env = call(t, router, http.MethodPut, "/api/v1/modal/room-types/selection", `{"roomTypeId":99}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, constants.ModalRoomType, env.Data.Modal.Kind)

	w, env = call(t, router, http.MethodPut, "/api/v1/modal/room-types/selection", `{"roomTypeId":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), env.Data.Modal.RoomTypes.SelectedID)

	w, env = call(t, router, http.MethodPost, "/api/v1/modal/room-types/submit", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ModalNone, env.Data.Modal.Kind)
	assert.Equal(t, constants.ViewReservations, env.Data.View)
	require.Len(t, env.Data.Reservations.Upcoming, 1)
	require.Len(t, env.Data.Toasts, 1)
	assert.Equal(t, "Reservation created.", env.Data.Toasts[0].Message)

	w, env = call(t, router, http.MethodDelete, "/api/v1/toasts/"+env.Data.Toasts[0].ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data.Toasts)
	w, _ = call(t, router, http.MethodDelete, "/api/v1/toasts/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModalRoutesWithoutModal(t *testing.T) {
	router := newTestRouter(t)

	w, _ := call(t, router, http.MethodPost, "/api/v1/modal/cancel/confirm", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env := call(t, router, http.MethodDelete, "/api/v1/modal", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ModalNone, env.Data.Modal.Kind)
}

func TestLogoutFailureIsBadGateway(t *testing.T) {
	router := newTestRouter(t)
	httpmock.RegisterResponder(http.MethodGet, apiBase+"/logout", httpmock.NewStringResponder(503, "maintenance"))

	w, env := call(t, router, http.MethodPost, "/api/v1/logout", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "maintenance", env.Mess)
	assert.True(t, env.Data.Session.Authenticated)
}
