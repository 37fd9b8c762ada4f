package backendtest

import (
	"time"

	"github.com/gin-gonic/gin"
)

type hooks struct {
	failStatus int
	failBody   any
	failPath   string
	latency    time.Duration
	requests   []Request
}

// Request is what the backend recorded about one incoming call.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

// FailNext makes the next request whose path ends with pathSuffix (any
// request when empty) answer status with body instead of being handled.
func (srv *Server) FailNext(pathSuffix string, status int, body any) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.hooks.failPath = pathSuffix
	srv.hooks.failStatus = status
	srv.hooks.failBody = body
}

// SetLatency delays every response by d, or until the client gives up.
func (srv *Server) SetLatency(d time.Duration) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.hooks.latency = d
}

// ExpireTokens invalidates every access and refresh token issued so far.
func (srv *Server) ExpireTokens() {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.generation++
	srv.refresh.Purge()
}

// Requests returns the calls received so far, oldest first.
func (srv *Server) Requests() []Request {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	out := make([]Request, len(srv.hooks.requests))
	copy(out, srv.hooks.requests)
	return out
}

func (srv *Server) applyHooks() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		srv.mu.Lock()
		srv.hooks.requests = append(srv.hooks.requests, Request{
			Method:        c.Request.Method,
			Path:          path,
			Authorization: c.GetHeader("Authorization"),
		})
		latency := srv.hooks.latency
		status, body := 0, any(nil)
		if srv.hooks.failStatus != 0 && hasSuffix(path, srv.hooks.failPath) {
			status, body = srv.hooks.failStatus, srv.hooks.failBody
			srv.hooks.failStatus, srv.hooks.failBody, srv.hooks.failPath = 0, nil, ""
		}
		srv.mu.Unlock()

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}

		if status != 0 {
			if body == nil {
				c.AbortWithStatus(status)
				return
			}
			c.AbortWithStatusJSON(status, body)
			return
		}
		c.Next()
	}
}

func hasSuffix(path, suffix string) bool {
	return len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix
}
