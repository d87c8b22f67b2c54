package controllers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	db *sql.DB
}

func NewHealthController(db *sql.DB) *HealthController {
	return &HealthController{db: db}
}

// Check handles GET /api/health/check - pings the store
func (hc *HealthController) Check(c *gin.Context) {
	if err := hc.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
