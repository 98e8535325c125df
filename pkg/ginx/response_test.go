package ginx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSuccess(t *testing.T) {
	w, resp := record(t, func(c *gin.Context) {
		Success(c, gin.H{"id": "ORD-1"})
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 200, resp.Meta.Code)
	require.Equal(t, "OK", resp.Meta.Message)
	require.NotNil(t, resp.Data)
}

func TestProcessing(t *testing.T) {
	w, resp := record(t, func(c *gin.Context) {
		Processing(c, "ORD-1", "/api/v1/orders/ORD-1")
	})

	// Smart Wait 超时：HTTP 200 + 业务码 3001
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, CodeProcessing, resp.Meta.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "ORD-1", data["order_id"])
	require.Equal(t, "/api/v1/orders/ORD-1", data["poll_url"])
}

func TestErrorResponses(t *testing.T) {
	w, resp := record(t, func(c *gin.Context) {
		NotFound(c, "order not found")
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, http.StatusNotFound, resp.Meta.Code)
	require.Equal(t, "order not found", resp.Meta.Message)

	w, resp = record(t, func(c *gin.Context) {
		InternalError(c, "boom")
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "boom", resp.Meta.Message)

	w, resp = record(t, func(c *gin.Context) {
		BadRequest(c, "bad input")
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "bad input", resp.Meta.Message)
}

func TestBadRequestWithValidationDetails(t *testing.T) {
	type payload struct {
		CustomerID string `json:"customer_id" binding:"required"`
		Priority   string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/orders", nil)

	var req payload
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)

	BadRequestWithValidation(c, err)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
