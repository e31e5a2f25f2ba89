package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every local API reply
type Response struct {
	Code int         `json:"code"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

// Success replies 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Fail replies with an error status. Data carries the state the client
// should render next to the message, when there is one.
func Fail(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
		Data: data,
	})
}

// NotFound replies 404
func NotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound, "Not found", nil)
}
