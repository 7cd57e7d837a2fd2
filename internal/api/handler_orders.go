package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/billing"
	"appliance-service-backend/internal/model"
	"appliance-service-backend/internal/parse"
)

// ListOrders handles GET /api/orders with optional status, client_id and
// search filters.
func (h *Handler) ListOrders(c *gin.Context) {
	f := model.OrderFilter{
		ClientID: c.Query("client_id"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		st, err := parse.OrderStatus(raw)
		if err != nil {
			respondError(c, model.Invalid("status", err.Error()), "")
			return
		}
		f.Status = st
	}

	orders, err := h.store.ListOrders(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "Error al cargar las órdenes")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns the order with its client, lines and appointment.
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.store.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al cargar la orden")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var in model.OrderInput
	if !bindJSON(c, &in) {
		return
	}
	order, err := h.store.CreateOrder(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Error al crear la orden")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var in model.OrderInput
	if !bindJSON(c, &in) {
		return
	}
	order, err := h.store.UpdateOrder(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Error al actualizar la orden")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error al eliminar la orden")
		return
	}
	c.Status(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetOrderStatus handles PUT /api/orders/:id/status. Any status may follow
// any other.
func (h *Handler) SetOrderStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	if err := h.store.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "Error al actualizar el estado")
		return
	}
	st, _ := parse.OrderStatus(req.Status)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": st})
}

// costsResponse renders every amount with two decimals.
type costsResponse struct {
	LaborTotal string `json:"labor_total"`
	PartsTotal string `json:"parts_total"`
	Subtotal   string `json:"subtotal"`
	TaxRate    string `json:"tax_rate"`
	Tax        string `json:"tax"`
	Total      string `json:"total"`
}

func newCostsResponse(b billing.Breakdown) costsResponse {
	b = b.Rounded()
	return costsResponse{
		LaborTotal: b.LaborTotal.StringFixed(2),
		PartsTotal: b.PartsTotal.StringFixed(2),
		Subtotal:   b.Subtotal.StringFixed(2),
		TaxRate:    b.TaxRate.String(),
		Tax:        b.Tax.StringFixed(2),
		Total:      b.Total.StringFixed(2),
	}
}

// GetOrderCosts handles GET /api/orders/:id/costs.
func (h *Handler) GetOrderCosts(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	parts, err := h.store.ListParts(ctx, id)
	if err != nil {
		respondError(c, err, "Error al calcular los costos")
		return
	}
	labor, err := h.store.ListLabor(ctx, id)
	if err != nil {
		respondError(c, err, "Error al calcular los costos")
		return
	}
	c.JSON(http.StatusOK, newCostsResponse(h.calc.Compute(parts, labor)))
}
