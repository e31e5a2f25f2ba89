package services

import (
	"context"
	"net/http"
	"testing"

	"airhotel-web/dto"
	"airhotel-web/errors"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://api.test"

func newMockedClient(t *testing.T) *APIClient {
	t.Helper()
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := NewAPIClient(APIClientOptions{BaseURL: testBaseURL + "//", HTTPClient: httpClient})
	require.NoError(t, err)
	return client
}

type recordingObserver struct {
	payloads []string
}

func (o *recordingObserver) ConfirmFromResponsePayload(payload []byte) bool {
	o.payloads = append(o.payloads, string(payload))
	return true
}

func TestNewAPIClientRejectsBadURL(t *testing.T) {
	_, err := NewAPIClient(APIClientOptions{BaseURL: "not a url"})
	assert.Equal(t, errors.ErrCodeInvalidFormat, errors.CodeOf(err))
}

func TestSearchAvailableHotels(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/hotels/search/available",
		"city=Paris&startDate=2025-06-01&endDate=2025-06-03",
		httpmock.NewStringResponder(200, `[{"id":1,"name":"Le Meurice","city":"Paris"}]`))

	hotels, err := client.SearchAvailableHotels(context.Background(), "Paris", "2025-06-01", "2025-06-03")
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Le Meurice", hotels[0].Name)
	assert.Equal(t, "http://api.test", client.BaseURL())
}

func TestListDecodesEnvelopes(t *testing.T) {
	client := newMockedClient(t)
	observer := &recordingObserver{}
	client.SetSessionObserver(observer)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/hotels",
		httpmock.NewStringResponder(200, `{"session":"tok-1","hotels":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}`))
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/reservations",
		httpmock.NewStringResponder(200, `{"data":[{"id":7,"status":"CONFIRMED","checkInDate":"2025-06-01","checkOutDate":"2025-06-03"}]}`))

	hotels, err := client.ListHotels(context.Background())
	require.NoError(t, err)
	assert.Len(t, hotels, 2)

	reservations, err := client.ListReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, int64(7), reservations[0].ID)

	assert.Len(t, observer.payloads, 2)
	assert.Contains(t, observer.payloads[0], "tok-1")
}

func TestListRejectsUnknownShape(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/hotels", httpmock.NewStringResponder(200, `{"weird":true}`))

	_, err := client.ListHotels(context.Background())
	assert.Equal(t, errors.ErrCodeDecode, errors.CodeOf(err))
}

func TestRoomTypeAvailability(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/hotels/4/room-types/availability",
		"checkIn=2025-06-01&checkOut=2025-06-03&numGuests=2",
		httpmock.NewStringResponder(200, `[{"roomTypeId":10,"name":"Deluxe","baseRate":120.5,"available":3,"totalRooms":5}]`))

	roomTypes, err := client.RoomTypeAvailability(context.Background(), 4, "2025-06-01", "2025-06-03", 2)
	require.NoError(t, err)
	require.Len(t, roomTypes, 1)
	assert.Equal(t, int64(10), roomTypes[0].ID)
	assert.Equal(t, 120.5, roomTypes[0].Rate())
}

func TestErrorMessages(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/hotels",
		httpmock.NewStringResponder(409, "  No rooms left  "))
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/reservations",
		httpmock.NewStringResponder(500, ""))

	_, err := client.ListHotels(context.Background())
	assert.Equal(t, errors.ErrCodeHTTP, errors.CodeOf(err))
	assert.Equal(t, "No rooms left", errors.MessageOf(err))

	_, err = client.ListReservations(context.Background())
	assert.Equal(t, "Request failed with status 500", errors.MessageOf(err))
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Status)
}

func TestTransportError(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/reservations",
		httpmock.NewErrorResponder(assert.AnError))

	err := client.CheckSession(context.Background())
	assert.Equal(t, errors.ErrCodeTransport, errors.CodeOf(err))
	assert.Equal(t, MsgNetworkError, errors.MessageOf(err))
}

func TestCreateAndPatchReservation(t *testing.T) {
	client := newMockedClient(t)
	var gotCreate dto.CreateReservationRequest
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/reservations",
		func(req *http.Request) (*http.Response, error) {
			if err := decodeBody(req, &gotCreate); err != nil {
				return httpmock.NewStringResponse(400, err.Error()), nil
			}
			return httpmock.NewStringResponse(201, `{"data":{"id":11,"status":"PENDING"}}`), nil
		})
	var gotPatch map[string]interface{}
	httpmock.RegisterResponder(http.MethodPatch, testBaseURL+"/reservations/11",
		func(req *http.Request) (*http.Response, error) {
			if err := decodeBody(req, &gotPatch); err != nil {
				return httpmock.NewStringResponse(400, err.Error()), nil
			}
			return httpmock.NewStringResponse(200, `{"id":11,"status":"CONFIRMED"}`), nil
		})

	created, body, err := client.CreateReservation(context.Background(), dto.CreateReservationRequest{
		HotelID: 1, RoomTypeID: 2, CheckInDate: "2025-06-01", CheckOutDate: "2025-06-03",
		Nights: 2, NumGuests: 1, Currency: "USD", PriceTotal: 240,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(11), created.ID)
	assert.NotEmpty(t, body)
	assert.Equal(t, 240.0, gotCreate.PriceTotal)
	assert.Equal(t, 2, gotCreate.Nights)

	updated, _, err := client.PatchReservation(context.Background(), 11, dto.PatchReservationRequest{
		CheckInDate: "2025-06-02", CheckOutDate: "2025-06-05", Nights: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", updated.Status)
	assert.Equal(t, float64(3), gotPatch["nights"])
	_, hasGuests := gotPatch["numGuests"]
	assert.False(t, hasGuests)
}

func TestCancelAndLogout(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodDelete, testBaseURL+"/reservations/3", httpmock.NewStringResponder(204, ""))
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/logout", httpmock.NewStringResponder(200, ""))

	_, err := client.CancelReservation(context.Background(), 3)
	require.NoError(t, err)
	require.NoError(t, client.Logout(context.Background()))

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["DELETE "+testBaseURL+"/reservations/3"])
	assert.Equal(t, 1, info["GET "+testBaseURL+"/logout"])
}

func TestSessionCookie(t *testing.T) {
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := NewAPIClient(APIClientOptions{BaseURL: testBaseURL, HTTPClient: httpClient, SessionCookie: "SESSION=abc"})
	require.NoError(t, err)
	assert.True(t, client.HasSessionCookie())

	var sent string
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/reservations",
		func(req *http.Request) (*http.Response, error) {
			if cookie, err := req.Cookie("SESSION"); err == nil {
				sent = cookie.Value
			}
			return httpmock.NewStringResponse(200, `[]`), nil
		})
	require.NoError(t, client.CheckSession(context.Background()))
	assert.Equal(t, "abc", sent)

	client.ClearSession()
	assert.False(t, client.HasSessionCookie())
	assert.Equal(t, "http://api.test/oauth2/authorization/google", client.LoginURL("google"))
}
