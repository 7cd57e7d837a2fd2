package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-service-backend/internal/auth"
)

// Login handles POST /api/auth/login by forwarding the credentials to the
// identity provider.
func (h *Handler) Login(c *gin.Context) {
	h.proxyCredentials(c, func(ctx context.Context, cred auth.Credentials) (*auth.TokenResponse, error) {
		return h.identity.SignIn(ctx, cred)
	}, "Correo o contraseña incorrectos")
}

func (h *Handler) Signup(c *gin.Context) {
	h.proxyCredentials(c, func(ctx context.Context, cred auth.Credentials) (*auth.TokenResponse, error) {
		return h.identity.SignUp(ctx, cred)
	}, "No se pudo crear la cuenta")
}

func (h *Handler) proxyCredentials(c *gin.Context, call func(context.Context, auth.Credentials) (*auth.TokenResponse, error), rejectText string) {
	if h.identity == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Autenticación no configurada"})
		return
	}
	var cred auth.Credentials
	if err := c.ShouldBindJSON(&cred); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correo y contraseña son obligatorios"})
		return
	}
	tok, err := call(c.Request.Context(), cred)
	if err != nil {
		var pe *auth.ProviderError
		if errors.As(err, &pe) && pe.Status >= 400 && pe.Status < 500 {
			c.JSON(pe.Status, gin.H{"error": rejectText, "detail": pe.Message})
			return
		}
		h.log.WithError(err).Error("identity provider unavailable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "El servicio de autenticación no responde"})
		return
	}
	c.JSON(http.StatusOK, tok)
}

// Logout ends the caller's session at the provider and drops everything
// cached for it.
func (h *Handler) Logout(c *gin.Context) {
	s := auth.SessionFrom(c)
	if s == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión requerida"})
		return
	}
	if h.identity != nil {
		if err := h.identity.SignOut(c.Request.Context(), s.Token); err != nil {
			h.log.WithError(err).WithField("user_id", s.UserID).Warn("provider sign out failed")
		}
	}
	if h.cache != nil {
		h.cache.InvalidateScope(s.UserID)
	}
	c.Status(http.StatusNoContent)
}

// Me returns the session of the caller.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.SessionFrom(c))
}
