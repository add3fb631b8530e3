package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"bizops-platform/internal/httpapi"
	"bizops-platform/internal/rbac"
	"bizops-platform/internal/routing"
	"bizops-platform/pkg/utils"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc, db *sql.DB, rdb *redis.Client) {
	// Client IP travels in the request context so audit events can record it.
	r.Use(func(c *gin.Context) {
		ctx := routing.WithClientIP(c.Request.Context(), c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// public
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "bizops-platform",
			"status":  "running",
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Deep health: checks backing stores, for load balancers and orchestrators.
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		out := gin.H{"postgres": "ok", "redis": "ok"}
		if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
			out["postgres"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			out["redis"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, out)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// token issuance
	authGroup := r.Group("/v1/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}

	// protected API
	api := r.Group("/")
	api.Use(authMW)
	{
		api.GET("/agents", h.ListAgents)
		api.POST("/research", h.Research)
		api.POST("/write", h.Write)
		api.POST("/collaborate", h.Collaborate)
		api.POST("/chat", h.PostChat)
		api.POST("/chat/analyze", h.ChatAnalyze)
		api.POST("/chat/reset", h.ChatReset)

		v1 := api.Group("/v1")
		{
			leadsGroup := v1.Group("/leads")
			leadsGroup.Use(rbac.RequireWorkspace())
			leadsGroup.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleDepartmentHead, rbac.RoleOperator, rbac.RoleSuperAdmin))
			{
				leadsGroup.POST("", h.IntakeLead)
				leadsGroup.GET("/:lead_id", h.GetLead)
			}

			reports := v1.Group("/reports")
			reports.Use(rbac.RequireWorkspace())
			reports.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleDepartmentHead, rbac.RoleAnalyst, rbac.RoleSuperAdmin))
			{
				reports.GET("/routing", h.RoutingReport)
			}
		}
	}
}
