package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/MousScales/Momsites/internal/config"
	"github.com/MousScales/Momsites/internal/middleware"
	"github.com/MousScales/Momsites/internal/modules/admin"
	"github.com/MousScales/Momsites/internal/modules/booking"
	"github.com/MousScales/Momsites/internal/modules/calendar"
	"github.com/MousScales/Momsites/internal/modules/pages"
	"github.com/MousScales/Momsites/internal/modules/payment"
	"github.com/MousScales/Momsites/internal/pkg/jwt"
)

type Deps struct {
	Config   *config.Config
	Redis    *redis.Client
	JWT      *jwt.Service
	Payment  *payment.Handler
	Booking  *booking.Handler
	Admin    *admin.Handler
	Calendar *calendar.Handler
	Pages    *pages.Handler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS(d.Config.CORSAllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.RateLimit(d.Config.RateLimit, d.Redis))
	d.Payment.RegisterRoutes(api)
	d.Booking.RegisterRoutes(api)

	adminPublic := api.Group("/admin")
	adminProtected := api.Group("/admin")
	if d.JWT != nil {
		adminProtected.Use(middleware.JWTAuth(d.JWT), middleware.AdminOnly())
	} else {
		adminProtected.Use(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access is not configured"})
		})
	}
	d.Admin.RegisterRoutes(adminPublic, adminProtected)
	if d.Calendar != nil {
		d.Calendar.RegisterRoutes(api, adminProtected)
	}

	d.Pages.RegisterRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}
