package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/models"
)

func dashboardHandler(c *gin.Context) {
	dashboard, err := models.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_dashboard.go", "dashboardHandler", err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
