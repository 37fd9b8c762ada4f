package backendtest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ServiceName = "notespace-backendtest"

func (srv *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}
