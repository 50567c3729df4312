package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"figure-forge-backend/internal/models"
	"figure-forge-backend/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr    *services.ValidationError
		authorizationErr *services.AuthorizationError
		preconditionErr  *services.PreconditionError
		notFoundErr      *services.NotFoundError
		uploadErr        *services.UploadError
		persistenceErr   *services.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Message: validationErr.Error()})
	case errors.As(err, &authorizationErr):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden", Message: authorizationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found", Message: notFoundErr.Error()})
	case errors.As(err, &preconditionErr):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "precondition failed", Message: preconditionErr.Error()})
	case errors.As(err, &uploadErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "storage failure", Message: uploadErr.Error()})
	case errors.As(err, &persistenceErr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database failure", Message: persistenceErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}
