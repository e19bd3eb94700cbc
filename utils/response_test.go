package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		write       func(c *gin.Context)
		wantStatus  int
		wantMessage string
		wantDetails string
	}{
		{
			name:        "success",
			write:       func(c *gin.Context) { SuccessMessage(c, "done") },
			wantStatus:  http.StatusOK,
			wantMessage: "done",
		},
		{
			name:        "bad request has no details",
			write:       func(c *gin.Context) { BadRequestError(c, "Invalid input.") },
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid input.",
		},
		{
			name: "internal error carries details",
			write: func(c *gin.Context) {
				InternalServerError(c, "Error generating responses.", errors.New("boom"))
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error generating responses.",
			wantDetails: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body["message"])
			if tt.wantDetails == "" {
				assert.NotContains(t, body, "details")
			} else {
				assert.Equal(t, tt.wantDetails, body["details"])
			}
		})
	}
}

func TestLoggerDefaultsToNop(t *testing.T) {
	assert.NotNil(t, Logger())
	LogInfo("noop before init")
}
