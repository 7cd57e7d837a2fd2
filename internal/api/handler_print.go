package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/invoice"
	"appliance-service-backend/internal/model"
	"appliance-service-backend/internal/store"
)

// PrintOrder handles GET /api/orders/:id/print. The invoice is returned as
// JSON, or as a PDF document with ?format=pdf.
func (h *Handler) PrintOrder(c *gin.Context) {
	ctx := c.Request.Context()
	order, err := h.store.GetOrder(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al generar la impresión")
		return
	}

	var tech *model.Technician
	if a := order.Appointment; a != nil && a.TechnicianID != nil {
		tech, err = h.store.GetTechnician(ctx, *a.TechnicianID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			respondError(c, err, "Error al generar la impresión")
			return
		}
	}

	doc := invoice.Build(order, tech, h.calc, h.issuer)
	if c.Query("format") != "pdf" {
		c.JSON(http.StatusOK, doc)
		return
	}

	var buf bytes.Buffer
	if err := doc.RenderPDF(&buf); err != nil {
		h.log.WithError(err).WithField("order_number", order.OrderNumber).Error("pdf rendering failed")
		respondError(c, err, "Error al generar el PDF")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", order.OrderNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
