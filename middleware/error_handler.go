package middleware

import (
	"net/http"

	"airhotel-web/errors"
	"airhotel-web/response"
	"airhotel-web/services/logger"

	"github.com/gin-gonic/gin"
)

// SnapshotKey holds the state rendered next to an error reply
const SnapshotKey = "snapshot"

// StatusOf maps an error code to the status of the local API reply
func StatusOf(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDateRange:
		return http.StatusBadRequest
	case errors.ErrCodeNoSession:
		return http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSubmissionInFlight, errors.ErrCodeInvalidOperation:
		return http.StatusConflict
	case errors.ErrCodeHTTP, errors.ErrCodeTransport, errors.ErrCodeDecode:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders the last error a handler attached with c.Error.
// The snapshot stored under SnapshotKey, if any, goes out as data.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop{}
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusOf(err)
		if status >= http.StatusInternalServerError {
			log.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		} else {
			log.Debug("%s %s: %v", c.Request.Method, c.FullPath(), err)
		}

		snapshot, _ := c.Get(SnapshotKey)
		message := errors.MessageOf(err)
		if !errors.IsAppError(err) {
			message = "Internal server error"
		}
		response.Fail(c, status, message, snapshot)
	}
}
