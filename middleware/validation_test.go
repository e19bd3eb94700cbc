package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMaxRequestSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(MaxRequestSize(1024))
	router.POST("/test", func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"size": len(body)})
	})

	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("POST", "/test", bytes.NewBufferString(strings.Repeat("a", 500)))
	router.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)

	// Declared length over the limit is rejected up front.
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("POST", "/test", bytes.NewBufferString(strings.Repeat("a", 2000)))
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w2.Code)

	// Unknown length is cut off while reading.
	w3 := httptest.NewRecorder()
	req3, _ := http.NewRequest("POST", "/test", bytes.NewBufferString(strings.Repeat("a", 2000)))
	req3.ContentLength = -1
	router.ServeHTTP(w3, req3)
	assert.Equal(t, http.StatusBadRequest, w3.Code)
}

func TestValidateJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ValidateJSON())
	router.POST("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok"})
	})
	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok"})
	})
	router.OPTIONS("/test", func(c *gin.Context) {
		c.Status(204)
	})

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{name: "json post", method: "POST", contentType: "application/json", wantStatus: http.StatusOK},
		{name: "json with charset", method: "POST", contentType: "application/json; charset=utf-8", wantStatus: http.StatusOK},
		{name: "missing content type", method: "POST", wantStatus: http.StatusBadRequest},
		{name: "form post", method: "POST", contentType: "application/x-www-form-urlencoded", wantStatus: http.StatusBadRequest},
		{name: "get skips validation", method: "GET", wantStatus: http.StatusOK},
		{name: "options skips validation", method: "OPTIONS", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, "/test", bytes.NewBufferString("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "Content-Type must be application/json")
			}
		})
	}
}
