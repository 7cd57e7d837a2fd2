package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
)

// PutSubscription registers the browser of a technician for visit notices.
func (h *Handler) PutSubscription(c *gin.Context) {
	var in model.SubscriptionInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.store.SaveSubscription(c.Request.Context(), c.Param("id"), in); err != nil {
		respondError(c, err, "Error al registrar las notificaciones")
		return
	}
	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription unregisters one of the technician's browsers.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.DeleteSubscription(c.Request.Context(), c.Param("id"), req.Endpoint); err != nil {
		respondError(c, err, "Error al desactivar las notificaciones")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubscriptions returns the endpoints registered for a technician.
func (h *Handler) ListSubscriptions(c *gin.Context) {
	subs, err := h.store.SubscriptionsForTechnician(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al cargar las notificaciones")
		return
	}
	endpoints := make([]string, len(subs))
	for i, s := range subs {
		endpoints[i] = s.Endpoint
	}
	c.JSON(http.StatusOK, gin.H{"endpoints": endpoints})
}
