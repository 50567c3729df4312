package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"figure-forge-backend/internal/models"
)

// HealthHandler godoc
// @Summary     Health check
// @Description Returns ok when the server is up
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
