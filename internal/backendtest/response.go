package backendtest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies follow the REST framework shapes the client parses:
// {"detail": "..."} or {"field": ["..."]}.

const (
	msgRequired     = "This field is required."
	msgBlank        = "This field may not be blank."
	msgUserExists   = "A user with that username already exists."
	msgBadLogin     = "No active account found with the given credentials"
	msgNoCredential = "Authentication credentials were not provided."
	msgBadToken     = "Given token not valid for any token type"
	msgNotFound     = "No Note matches the given query."
)

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

func fieldErrors(c *gin.Context, errs map[string]string) {
	body := make(gin.H, len(errs))
	for field, msg := range errs {
		body[field] = []string{msg}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	detail(c, http.StatusUnauthorized, msg)
}
