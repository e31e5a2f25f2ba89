package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"airhotel-web/dto"
	"airhotel-web/errors"
	"airhotel-web/models"
	"airhotel-web/services/logger"

	"github.com/goccy/go-json"
	"golang.org/x/net/publicsuffix"
)

const (
	MsgNetworkError   = "Unable to reach the server. Please try again."
	defaultTimeout    = 10 * time.Second
	defaultCookieName = "JSESSIONID"
)

// listKeys are the envelope fields a list may be wrapped in
var listKeys = []string{"data", "hotels", "items", "results", "content", "reservations"}

// HTTPError is a non-2xx answer from the REST service
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// SessionObserver is told about every successful response body
type SessionObserver interface {
	ConfirmFromResponsePayload(payload []byte) bool
}

type APIClientOptions struct {
	BaseURL           string
	HTTPClient        *http.Client
	Timeout           time.Duration
	Logger            logger.Logger
	SessionCookie     string
	SessionCookieName string
}

// APIClient talks to the AirHotel REST service. Cookies set by the service
// are kept in the client's jar and sent back on every call.
type APIClient struct {
	baseURL    string
	base       *url.URL
	httpClient *http.Client
	jar        *sessionJar
	logger     logger.Logger
	cookieName string

	mu       sync.RWMutex
	observer SessionObserver
}

func NewAPIClient(opts APIClientOptions) (*APIClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid API base URL: "+opts.BaseURL, err)
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	jar, err := newSessionJar()
	if err != nil {
		return nil, err
	}
	client.Jar = jar
	// A 3xx from the service is the login redirect of a missing session, never data
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	cookieName := opts.SessionCookieName
	if cookieName == "" {
		cookieName = defaultCookieName
	}

	c := &APIClient{
		baseURL:    baseURL,
		base:       base,
		httpClient: client,
		jar:        jar,
		logger:     log,
		cookieName: cookieName,
	}

	if opts.SessionCookie != "" {
		name, value, ok := strings.Cut(opts.SessionCookie, "=")
		if !ok {
			name, value = cookieName, opts.SessionCookie
		}
		c.SetSessionCookie(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return c, nil
}

// sessionJar is a cookie jar that can be emptied while requests are in flight
type sessionJar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func newSessionJar() (*sessionJar, error) {
	inner, err := newCookieJar()
	if err != nil {
		return nil, err
	}
	return &sessionJar{inner: inner}, nil
}

func newCookieJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.inner.SetCookies(u, cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *sessionJar) reset() error {
	inner, err := newCookieJar()
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
	return nil
}

// SetSessionObserver registers the component told about every successful body
func (c *APIClient) SetSessionObserver(observer SessionObserver) {
	c.mu.Lock()
	c.observer = observer
	c.mu.Unlock()
}

func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// SessionCookieName is the cookie a token from a session field is stored under
func (c *APIClient) SessionCookieName() string {
	return c.cookieName
}

// SetSessionCookie stores a session cookie for the service's origin
func (c *APIClient) SetSessionCookie(name, value string) {
	if name == "" || value == "" {
		return
	}
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// HasSessionCookie reports whether the jar holds a non-empty cookie for the service
func (c *APIClient) HasSessionCookie() bool {
	for _, cookie := range c.jar.Cookies(c.base) {
		if cookie.Value != "" {
			return true
		}
	}
	return false
}

// ClearSession forgets every cookie
func (c *APIClient) ClearSession() {
	if err := c.jar.reset(); err != nil {
		c.logger.Error("reset cookie jar: %v", err)
	}
}

// LoginURL is the browser redirect that starts the identity provider flow
func (c *APIClient) LoginURL(provider string) string {
	return c.baseURL + "/oauth2/authorization/" + url.PathEscape(provider)
}

func (c *APIClient) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	body, err := c.do(ctx, http.MethodGet, "/hotels", nil, nil)
	if err != nil {
		return nil, err
	}
	var hotels []models.Hotel
	if err := decodeList(body, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *APIClient) SearchAvailableHotels(ctx context.Context, city, startDate, endDate string) ([]models.Hotel, error) {
	query := url.Values{}
	query.Set("city", city)
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	body, err := c.do(ctx, http.MethodGet, "/hotels/search/available", query, nil)
	if err != nil {
		return nil, err
	}
	var hotels []models.Hotel
	if err := decodeList(body, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *APIClient) RoomTypeAvailability(ctx context.Context, hotelID int64, checkIn, checkOut string, numGuests int) ([]models.RoomType, error) {
	query := url.Values{}
	query.Set("checkIn", checkIn)
	query.Set("checkOut", checkOut)
	query.Set("numGuests", strconv.Itoa(numGuests))

	path := "/hotels/" + strconv.FormatInt(hotelID, 10) + "/room-types/availability"
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	var roomTypes []models.RoomType
	if err := decodeList(body, &roomTypes); err != nil {
		return nil, err
	}
	return roomTypes, nil
}

func (c *APIClient) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	body, err := c.do(ctx, http.MethodGet, "/reservations", nil, nil)
	if err != nil {
		return nil, err
	}
	var reservations []models.Reservation
	if err := decodeList(body, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (c *APIClient) CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (*models.Reservation, []byte, error) {
	body, err := c.do(ctx, http.MethodPost, "/reservations", nil, req)
	if err != nil {
		return nil, nil, err
	}
	return decodeReservation(body), body, nil
}

func (c *APIClient) PatchReservation(ctx context.Context, id int64, req dto.PatchReservationRequest) (*models.Reservation, []byte, error) {
	body, err := c.do(ctx, http.MethodPatch, "/reservations/"+strconv.FormatInt(id, 10), nil, req)
	if err != nil {
		return nil, nil, err
	}
	return decodeReservation(body), body, nil
}

func (c *APIClient) CancelReservation(ctx context.Context, id int64) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, "/reservations/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *APIClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/logout", nil, nil)
	return err
}

// CheckSession issues one read of an authenticated endpoint and discards the body
func (c *APIClient) CheckSession(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/reservations", nil, nil)
	return err
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "Unable to encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeTransport, MsgNetworkError, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("%s %s failed: %v", method, path, err)
		return nil, errors.NewAppError(errors.ErrCodeTransport, MsgNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeTransport, MsgNetworkError, err)
	}
	c.logger.Debug("%s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Status: resp.StatusCode, Message: errorText(resp.StatusCode, body)}
		return nil, errors.NewAppError(errors.ErrCodeHTTP, httpErr.Message, httpErr)
	}

	c.mu.RLock()
	observer := c.observer
	c.mu.RUnlock()
	if observer != nil && len(body) > 0 {
		observer.ConfirmFromResponsePayload(body)
	}
	return body, nil
}

// errorText prefers the body text. Redirect bodies are HTML stubs and are ignored.
func errorText(status int, body []byte) string {
	if status >= 300 && status < 400 {
		return "Request failed with status " + strconv.Itoa(status)
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return "Request failed with status " + strconv.Itoa(status)
}

// decodeList accepts a bare array or an object wrapping the array under one of listKeys
func decodeList(body []byte, target interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, target); err != nil {
			return errors.NewAppError(errors.ErrCodeDecode, "Unexpected response from server", err)
		}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return errors.NewAppError(errors.ErrCodeDecode, "Unexpected response from server", err)
	}
	for _, key := range listKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return errors.NewAppError(errors.ErrCodeDecode, "Unexpected response from server", err)
		}
		return nil
	}
	return errors.NewAppError(errors.ErrCodeDecode, "Unexpected response from server", nil)
}

// decodeReservation reads a single reservation, unwrapping a data field.
// Mutations are followed by a full refresh, so an unreadable body is not an error.
func decodeReservation(body []byte) *models.Reservation {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var envelope struct {
		Data *models.Reservation `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data
	}
	var reservation models.Reservation
	if err := json.Unmarshal(trimmed, &reservation); err != nil {
		return nil
	}
	return &reservation
}
