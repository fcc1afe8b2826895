package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health — GET /health
// Liveness only. The record store is local, so a running process is a
// healthy process.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
