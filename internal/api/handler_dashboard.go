package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
)

// GetDashboard handles GET /api/dashboard.
func (h *Handler) GetDashboard(c *gin.Context) {
	stats, err := h.store.DashboardStats(c.Request.Context(), model.NewDate(h.now()))
	if err != nil {
		respondError(c, err, "Error al cargar el resumen")
		return
	}
	c.JSON(http.StatusOK, stats)
}
