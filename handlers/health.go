package handlers

import (
	"net/http"

	"github.com/See2Code/transport-platform-sub000/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the latest dependency snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
