package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
	"appliance-service-backend/internal/parse"
)

func (h *Handler) GetAppointment(c *gin.Context) {
	appt, err := h.store.GetAppointmentForOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error al cargar la cita")
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ScheduleAppointment handles PUT /api/orders/:id/appointment. It creates the
// order's appointment or moves the existing one, and notifies the assigned
// technician.
func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var in model.ScheduleInput
	if !bindJSON(c, &in) {
		return
	}
	in.OrderID = c.Param("id")

	appt, err := h.store.ScheduleAppointment(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Error al agendar la cita")
		return
	}
	if appt.TechnicianID != nil && h.notifier != nil {
		h.notifier.Dispatch(appt.ID)
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	if err := h.store.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error al cancelar la cita")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAppointments handles GET /api/appointments?date=. Without a date the
// agenda of today is returned.
func (h *Handler) ListAppointments(c *gin.Context) {
	day := model.NewDate(h.now())
	if raw := c.Query("date"); raw != "" {
		d, err := parse.Date(raw)
		if err != nil {
			respondError(c, model.Invalid("date", err.Error()), "")
			return
		}
		day = d
	}

	views, err := h.store.ListAppointmentsForDate(c.Request.Context(), day)
	if err != nil {
		respondError(c, err, "Error al cargar la agenda")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day, "time_slots": model.TimeSlots, "appointments": views})
}
