package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"airhotel-web/dto"
	"airhotel-web/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestIDParam(t *testing.T) {
	c := testContext("")
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	id, ok := idParam(c)
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		c = testContext("")
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok = idParam(c)
		assert.False(t, ok, raw)
		assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(c.Errors.Last().Err), raw)
	}
}

func TestBindRunsTagValidation(t *testing.T) {
	c := testContext(`{"view":"reservations"}`)
	var req dto.ViewRequest
	assert.True(t, bind(c, &req))
	assert.Equal(t, "reservations", req.View)

	c = testContext(`{"view":"calendar"}`)
	req = dto.ViewRequest{}
	assert.False(t, bind(c, &req))
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(c.Errors.Last().Err))

	c = testContext(`{"roomTypeId":`)
	var sel dto.SelectRoomTypeRequest
	assert.False(t, bind(c, &sel))
}
