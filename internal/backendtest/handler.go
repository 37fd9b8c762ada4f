package backendtest

import (
	"time"

	"github.com/gin-gonic/gin"
)

func (srv *Server) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv *Server) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.accessLog())
	srv.gin.Use(srv.applyHooks())
}

func (srv *Server) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
}

func (srv *Server) registerDomainRoutes() {
	api := srv.gin.Group(APIPrefix)

	api.POST("/token/", srv.obtainToken)
	api.POST("/token/refresh/", srv.refreshToken)
	api.POST("/users/", srv.createUser)

	authed := api.Group("", srv.requireAuth())
	authed.GET("/users/me/", srv.me)
	authed.GET("/notes/", srv.listNotes)
	authed.POST("/notes/", srv.createNote)
	authed.GET("/notes/:id/", srv.getNote)
	authed.PUT("/notes/:id/", srv.updateNote)
	authed.DELETE("/notes/:id/", srv.deleteNote)
}

func (srv *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		srv.l.Debugf(c.Request.Context(), "backendtest: %s %s -> %d in %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
