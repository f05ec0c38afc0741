package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
)

// internalError logs the failure server-side and answers with a generic 500
// so storage details never reach the client.
func internalError(c *gin.Context, err error) {
	log.Printf("HTTP 500 - %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(500, gin.H{"error": "Internal server error"})
}
