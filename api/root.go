package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root is used by load balancers and uptime checks.
func (a *API) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Server is running successfully",
	})
}
