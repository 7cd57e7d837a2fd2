package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"appliance-service-backend/config"
	"appliance-service-backend/internal/auth"
	"appliance-service-backend/internal/mw"
)

// SessionScope keys per-user middleware state by the authenticated user.
func SessionScope(c *gin.Context) string {
	if s := auth.SessionFrom(c); s != nil {
		return s.UserID
	}
	return ""
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, verifier *auth.Verifier, cfg config.ServerConfig, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestLogger(log, SessionScope))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.MaxAge = 12 * time.Hour
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", h.Health)

	limit := rate.Limit(cfg.RateLimitPerSec)

	public := r.Group("/api")
	public.Use(mw.RateLimiter(limit, cfg.RateLimitBurst, nil))
	{
		public.POST("/auth/login", h.Login)
		public.POST("/auth/signup", h.Signup)
		public.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	api := r.Group("/api")
	api.Use(verifier.Middleware(), mw.RateLimiter(limit, cfg.RateLimitBurst, SessionScope))
	if h.cache != nil {
		api.Use(h.cache.Middleware())
	}
	{
		api.POST("/auth/logout", h.Logout)
		api.GET("/me", h.Me)

		api.GET("/clients", h.ListClients)
		api.POST("/clients", h.CreateClient)
		api.GET("/clients/:id", h.GetClient)
		api.PUT("/clients/:id", h.UpdateClient)
		api.DELETE("/clients/:id", h.DeleteClient)

		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)
		api.PUT("/orders/:id/status", h.SetOrderStatus)
		api.GET("/orders/:id/costs", h.GetOrderCosts)
		api.GET("/orders/:id/print", h.PrintOrder)

		api.GET("/orders/:id/parts", h.ListParts)
		api.POST("/orders/:id/parts", h.AddPart)
		api.DELETE("/orders/:id/parts/:part_id", h.DeletePart)
		api.GET("/orders/:id/labor", h.ListLabor)
		api.POST("/orders/:id/labor", h.AddLabor)
		api.DELETE("/orders/:id/labor/:labor_id", h.DeleteLabor)

		api.GET("/orders/:id/appointment", h.GetAppointment)
		api.PUT("/orders/:id/appointment", h.ScheduleAppointment)
		api.DELETE("/orders/:id/appointment", h.DeleteAppointment)
		api.GET("/appointments", h.ListAppointments)

		api.GET("/technicians", h.ListTechnicians)
		api.POST("/technicians", h.CreateTechnician)
		api.GET("/technicians/:id", h.GetTechnician)
		api.PUT("/technicians/:id", h.UpdateTechnician)
		api.DELETE("/technicians/:id", h.DeleteTechnician)
		api.GET("/technicians/:id/subscriptions", h.ListSubscriptions)
		api.PUT("/technicians/:id/subscriptions", h.PutSubscription)
		api.DELETE("/technicians/:id/subscriptions", h.DeleteSubscription)

		api.GET("/appliance-types", h.ListApplianceTypes)
		api.POST("/appliance-types", h.CreateApplianceType)
		api.DELETE("/appliance-types/:id", h.DeleteApplianceType)
		api.GET("/brands", h.ListBrands)
		api.POST("/brands", h.CreateBrand)
		api.DELETE("/brands/:id", h.DeleteBrand)

		api.GET("/dashboard", h.GetDashboard)
	}

	return r
}
