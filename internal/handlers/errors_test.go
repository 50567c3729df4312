package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"figure-forge-backend/internal/services"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &services.ValidationError{Field: "name", Reason: "required"}, http.StatusBadRequest},
		{"authorization", &services.AuthorizationError{Reason: "operator role required"}, http.StatusForbidden},
		{"not found", &services.NotFoundError{Entity: "order", ID: "x"}, http.StatusNotFound},
		{"precondition", &services.PreconditionError{Check: "order status must be completed"}, http.StatusConflict},
		{"upload", &services.UploadError{Path: "a/b.png", Err: errors.New("refused")}, http.StatusBadGateway},
		{"persistence", &services.PersistenceError{Op: "insert", Err: errors.New("down")}, http.StatusInternalServerError},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}
