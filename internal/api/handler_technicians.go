package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
)

// ListTechnicians handles GET /api/technicians?active=true.
func (h *Handler) ListTechnicians(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))
	techs, err := h.store.ListTechnicians(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "Error al cargar los técnicos")
		return
	}
	c.JSON(http.StatusOK, techs)
}

func (h *Handler) GetTechnician(c *gin.Context) {
	tech, err := h.store.GetTechnician(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al cargar el técnico")
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *Handler) CreateTechnician(c *gin.Context) {
	var in model.TechnicianInput
	if !bindJSON(c, &in) {
		return
	}
	tech, err := h.store.CreateTechnician(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Error al crear el técnico")
		return
	}
	c.JSON(http.StatusCreated, tech)
}

func (h *Handler) UpdateTechnician(c *gin.Context) {
	var in model.TechnicianInput
	if !bindJSON(c, &in) {
		return
	}
	tech, err := h.store.UpdateTechnician(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Error al actualizar el técnico")
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *Handler) DeleteTechnician(c *gin.Context) {
	if err := h.store.DeleteTechnician(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error al eliminar el técnico")
		return
	}
	c.Status(http.StatusNoContent)
}
