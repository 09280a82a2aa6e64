package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowOrigins),
		c.HTTPMetrics.Middleware(),
		middleware.OptionalAuth(c.JWTManager, c.Blocklist),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	auth := middleware.RequireAuth(c.JWTManager, c.Blocklist)

	api := router.Group("/api")
	{
		setupAuthRoutes(api, c, auth)
		setupUserRoutes(api, c, auth)
		setupIngredientRoutes(api, c)
		setupTagRoutes(api, c)
		setupRecipeRoutes(api, c, auth)
	}

	return router
}

// ========================================
// AUTH
// ========================================

func setupAuthRoutes(rg *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	token := rg.Group("/auth/token")
	{
		token.POST("/login", c.UserHandler.Login)
		token.POST("/logout", auth, c.UserHandler.Logout)
	}
}

// ========================================
// USERS / SUBSCRIPTIONS
// ========================================

func setupUserRoutes(rg *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.GET("", c.UserHandler.List)
		users.POST("", c.UserHandler.Register)

		// static paths trước /:id
		users.GET("/me", auth, c.UserHandler.Me)
		users.GET("/subscriptions", auth, c.UserHandler.Subscriptions)

		users.GET("/:id", c.UserHandler.Get)
		users.POST("/:id/subscribe", auth, c.UserHandler.Subscribe)
		users.DELETE("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

// ========================================
// CATALOG (read-only)
// ========================================

func setupIngredientRoutes(rg *gin.RouterGroup, c *container.Container) {
	ingredients := rg.Group("/ingredients")
	{
		ingredients.GET("", c.IngredientHandler.List)
		ingredients.GET("/:id", c.IngredientHandler.Get)
	}
}

func setupTagRoutes(rg *gin.RouterGroup, c *container.Container) {
	tags := rg.Group("/tags")
	{
		tags.GET("", c.TagHandler.List)
		tags.GET("/:id", c.TagHandler.Get)
	}
}

// ========================================
// RECIPES / FAVORITES / SHOPPING CART
// ========================================

func setupRecipeRoutes(rg *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	h := c.RecipeHandler
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", auth, h.Create)
		recipes.GET("/download_shopping_cart", auth, h.DownloadShoppingCart)

		recipes.GET("/:id", h.Get)
		recipes.PATCH("/:id", auth, h.Update)
		recipes.DELETE("/:id", auth, h.Delete)

		recipes.POST("/:id/favorite", auth, h.AddFavorite)
		recipes.DELETE("/:id/favorite", auth, h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", auth, h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", auth, h.RemoveFromCart)
	}
}

// ========================================
// HEALTH
// ========================================

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check cache (redis hoặc memory fallback)
		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
