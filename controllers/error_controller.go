package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	msgPageNotFound     = "Page not found."
	msgMethodNotAllowed = "Method not allowed."
	msgInternal         = "Something went wrong, please try again later."
)

// RenderError renders the styled error page with status and message and
// stops the handler chain. The status passed here is the one the client sees.
func RenderError(c *gin.Context, status int, message string) {
	if c.Writer.Written() {
		log.WithFields(log.Fields{
			"path":    c.Request.URL.Path,
			"status":  status,
			"message": message,
		}).Warn("response already started, cannot render error page")
		c.Abort()
		return
	}
	c.HTML(status, "error.html", gin.H{"message": message})
	c.Abort()
}

func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, msgPageNotFound)
}

func MethodNotAllowed(c *gin.Context) {
	RenderError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

func InternalError(c *gin.Context) {
	RenderError(c, http.StatusInternalServerError, msgInternal)
}
