package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
)

// ListClients handles GET /api/clients?search=.
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.store.ListClients(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err, "Error al cargar los clientes")
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) GetClient(c *gin.Context) {
	client, err := h.store.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al cargar el cliente")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var in model.ClientInput
	if !bindJSON(c, &in) {
		return
	}
	client, err := h.store.CreateClient(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Error al crear el cliente")
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	var in model.ClientInput
	if !bindJSON(c, &in) {
		return
	}
	client, err := h.store.UpdateClient(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Error al actualizar el cliente")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes the client and, with it, all of its orders.
func (h *Handler) DeleteClient(c *gin.Context) {
	if err := h.store.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error al eliminar el cliente")
		return
	}
	c.Status(http.StatusNoContent)
}
