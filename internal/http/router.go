package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "blackpiston/internal/config"
	h "blackpiston/internal/http/handlers"
	"blackpiston/internal/http/middleware"
	"blackpiston/internal/metrics"
)

func NewRouter(env intconfig.Env, a *h.API, rec *metrics.Recorder) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(rec),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Latency(env.MockLatency),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	if rec != nil {
		r.GET("/metrics", gin.WrapH(rec.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/store-check", a.StoreCheck)
		api.GET("/routes", h.Routes)

		// Public storefront
		vehicles := api.Group("/vehicles")
		vehicles.GET("", a.GetVehicles)
		vehicles.GET("/facets", a.GetFacets)
		vehicles.GET("/featured", a.GetFeatured)
		vehicles.GET("/:id", a.GetVehicle)
		api.POST("/listings", middleware.Auth(a.Auth, false), a.CreateListing)

		// Admin login is always open
		admin := api.Group("/admin")
		admin.POST("/login", a.Login)
		admin.POST("/verify-2fa", a.VerifyTwoFactor)

		secured := admin.Group("")
		secured.Use(middleware.Auth(a.Auth, env.AuthRequired))
		if env.AuthRequired {
			secured.Use(middleware.RequireRoles("admin", "moderator"))
		}
		mountAdmin(secured, a)
	}

	h.SetRouter(r)
	return r
}

func mountAdmin(g *gin.RouterGroup, a *h.API) {
	g.GET("/kpis", a.GetKPIs)
	g.GET("/charts/revenue", a.GetRevenueChart)
	g.GET("/charts/top-models", a.GetTopModels)

	listings := g.Group("/listings")
	listings.GET("", a.GetListings)
	listings.GET("/export", a.ExportListings)
	listings.POST("/bulk-action", a.BulkListings)
	listings.GET("/:id", a.GetListing)
	listings.PATCH("/:id", a.PatchListing)

	users := g.Group("/users")
	users.GET("", a.GetUsers)
	users.GET("/export", a.ExportUsers)
	users.POST("/bulk-action", a.BulkUsers)
	users.GET("/:id", a.GetUser)
	users.PATCH("/:id", a.PatchUser)

	g.GET("/sellers", a.GetSellers)
	g.GET("/transactions", a.GetTransactions)
	g.GET("/audit-logs", a.GetAuditLogs)
}
