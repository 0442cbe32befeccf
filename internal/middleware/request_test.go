package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"flowtasks/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString(middleware.RequestIDKey)})
	})
	r.GET("/fail", func(c *gin.Context) {
		middleware.Log(c).Warn().Msg("failing on purpose")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	// Arrange
	router := setupRouter()
	req, _ := http.NewRequest("GET", "/ping", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	id := resp.Header().Get(middleware.RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Contains(t, resp.Body.String(), id)
}

func TestRequestID_ReusesCallerID(t *testing.T) {
	router := setupRouter()
	id := uuid.NewString()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, id)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, id, resp.Header().Get(middleware.RequestIDHeader))
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	router := setupRouter()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "not-a-uuid\nInjected: yes")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	_, err := uuid.Parse(resp.Header().Get(middleware.RequestIDHeader))
	assert.NoError(t, err)
}

func TestLogger_PassesThroughErrors(t *testing.T) {
	router := setupRouter()
	req, _ := http.NewRequest("GET", "/fail", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "boom")
}
