package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
)

func (h *Handler) ListParts(c *gin.Context) {
	parts, err := h.store.ListParts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al cargar las refacciones")
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *Handler) AddPart(c *gin.Context) {
	var in model.PartInput
	if !bindJSON(c, &in) {
		return
	}
	part, err := h.store.AddPart(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Error al agregar la refacción")
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (h *Handler) DeletePart(c *gin.Context) {
	if err := h.store.DeletePart(c.Request.Context(), c.Param("id"), c.Param("part_id")); err != nil {
		respondError(c, err, "Error al eliminar la refacción")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListLabor(c *gin.Context) {
	labor, err := h.store.ListLabor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al cargar la mano de obra")
		return
	}
	c.JSON(http.StatusOK, labor)
}

func (h *Handler) AddLabor(c *gin.Context) {
	var in model.LaborInput
	if !bindJSON(c, &in) {
		return
	}
	labor, err := h.store.AddLabor(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Error al agregar la mano de obra")
		return
	}
	c.JSON(http.StatusCreated, labor)
}

func (h *Handler) DeleteLabor(c *gin.Context) {
	if err := h.store.DeleteLabor(c.Request.Context(), c.Param("id"), c.Param("labor_id")); err != nil {
		respondError(c, err, "Error al eliminar la mano de obra")
		return
	}
	c.Status(http.StatusNoContent)
}
