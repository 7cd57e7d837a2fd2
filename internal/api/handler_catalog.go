package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
)

func (h *Handler) ListApplianceTypes(c *gin.Context) {
	types, err := h.store.ListApplianceTypes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error al cargar los tipos de equipo")
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *Handler) CreateApplianceType(c *gin.Context) {
	var in model.LookupInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.store.CreateApplianceType(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Error al crear el tipo de equipo")
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) DeleteApplianceType(c *gin.Context) {
	if err := h.store.DeleteApplianceType(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error al eliminar el tipo de equipo")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.store.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error al cargar las marcas")
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *Handler) CreateBrand(c *gin.Context) {
	var in model.LookupInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.store.CreateBrand(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Error al crear la marca")
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) DeleteBrand(c *gin.Context) {
	if err := h.store.DeleteBrand(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error al eliminar la marca")
		return
	}
	c.Status(http.StatusNoContent)
}
