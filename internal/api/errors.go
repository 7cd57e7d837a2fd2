package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/model"
	"appliance-service-backend/internal/store"
)

var notFoundText = map[string]string{
	"client":         "Cliente no encontrado",
	"order":          "Orden no encontrada",
	"part":           "Refacción no encontrada",
	"labor":          "Mano de obra no encontrada",
	"appointment":    "Cita no encontrada",
	"technician":     "Técnico no encontrado",
	"brand":          "Marca no encontrada",
	"appliance type": "Tipo de equipo no encontrado",
	"subscription":   "Suscripción no encontrada",
}

// respondError maps store errors to HTTP responses. failText is the message
// shown when the backend itself failed.
func respondError(c *gin.Context, err error, failText string) {
	_ = c.Error(err)

	var ve *model.ValidationError
	var nf *store.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Revisa los datos capturados",
			"fields": ve.Fields,
		})
	case errors.As(err, &nf):
		msg, ok := notFoundText[nf.Entity]
		if !ok {
			msg = "Registro no encontrado"
		}
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msg})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": failText})
	}
}

// bindJSON decodes the request body into dst, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return false
	}
	return true
}
