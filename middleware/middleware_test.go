package middleware

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"airhotel-web/errors"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusOf(t *testing.T) {
	cases := map[errors.ErrorCode]int{
		errors.ErrCodeValidation:         http.StatusBadRequest,
		errors.ErrCodeInvalidDateRange:   http.StatusBadRequest,
		errors.ErrCodeNoSession:          http.StatusUnauthorized,
		errors.ErrCodeNotFound:           http.StatusNotFound,
		errors.ErrCodeSubmissionInFlight: http.StatusConflict,
		errors.ErrCodeInvalidOperation:   http.StatusConflict,
		errors.ErrCodeHTTP:               http.StatusBadGateway,
		errors.ErrCodeTransport:          http.StatusBadGateway,
	}
	for code, status := range cases {
		assert.Equal(t, status, StatusOf(errors.NewAppError(code, "x", nil)), code)
	}
	assert.Equal(t, http.StatusInternalServerError, StatusOf(stderrors.New("boom")))
}

func TestErrorHandlerRendersSnapshot(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(nil))
	router.GET("/fail", func(c *gin.Context) {
		c.Set(SnapshotKey, map[string]string{"view": "search"})
		_ = c.Error(errors.NewAppError(errors.ErrCodeRequiredField, "Please enter a destination.", nil))
	})
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(stderrors.New("database exploded"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Code int               `json:"code"`
		Mess string            `json:"mess"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "Please enter a destination.", body.Mess)
	assert.Equal(t, "search", body.Data["view"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database exploded")
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
