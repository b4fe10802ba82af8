package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind     apperr.Kind
		expected int
	}{
		{apperr.Validation, http.StatusBadRequest},
		{apperr.InvalidReference, http.StatusBadRequest},
		{apperr.InvalidCredentials, http.StatusUnauthorized},
		{apperr.Unauthenticated, http.StatusUnauthorized},
		{apperr.Forbidden, http.StatusForbidden},
		{apperr.NotFound, http.StatusNotFound},
		{apperr.Conflict, http.StatusConflict},
		{apperr.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.kind))
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "Not found",
			err:            apperr.New(apperr.NotFound, "Laboratory not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]interface{}{"success": false, "message": "Laboratory not found"},
		},
		{
			name:           "Untagged error is internal and carries diagnostics",
			err:            errors.New("disk on fire"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"success": false, "message": "Internal server error", "error": "disk on fire"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestListResponseCount(t *testing.T) {
	body, err := json.Marshal(NewListResponse([]int{3, 2, 1}, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[3,2,1],"count":3}`, string(body))

	body, err = json.Marshal(NewListResponse([]int{}, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, string(body))
}
