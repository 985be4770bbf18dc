package main

import (
	"net/http"
	"time"

	"storefront/internal/shared/middleware"
	"storefront/internal/shared/response"
	"storefront/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	// a redirect from /cart/ to /cart would turn a line delete into a clear
	router.RedirectTrailingSlash = false

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.SecurityHeaders(),
		middleware.Logger(),
		middleware.Latency(c.Config.Mock.Latency),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupCartRoutes(v1, c)
		setupOrderRoutes(v1, c)
		setupWebhookRoutes(v1, c)
	}

	return router
}

func authRequired(c *container.Container) gin.HandlerFunc {
	return middleware.AuthMiddleware(c.JWTManager, c.TokenRepo)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	auth.Use(c.AuthLimiter.Middleware())
	{
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.POST("/logout", c.UserHandler.Logout)
		auth.GET("/me", authRequired(c), c.UserHandler.Me)
	}
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CategoryHandler.List)

	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.ListProducts)
		products.GET("/:id", c.ProductHandler.GetProduct)
	}

	admin := v1.Group("/products")
	admin.Use(authRequired(c), middleware.AdminMiddleware())
	{
		admin.POST("", c.ProductHandler.CreateProduct)
		admin.PATCH("/:id", c.ProductHandler.UpdateProduct)
		admin.DELETE("/:id", c.ProductHandler.DeleteProduct)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/cart")
	cart.Use(authRequired(c))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("", c.CartHandler.AddItem)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.PATCH("/:itemId", c.CartHandler.UpdateItem)
		cart.DELETE("/:itemId", c.CartHandler.RemoveItem)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/checkout", authRequired(c), c.OrderHandler.Checkout)

	orders := v1.Group("/orders")
	orders.Use(authRequired(c))
	{
		orders.GET("", c.OrderHandler.ListOrders)
		orders.POST("", c.OrderHandler.CreateOrder)
		orders.GET("/:id", c.OrderHandler.GetOrder)
		orders.PATCH("/:id", middleware.AdminMiddleware(), c.OrderHandler.UpdateStatus)
	}
}

// ========================================
// WEBHOOK ROUTES
// ========================================
func setupWebhookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	webhooks := v1.Group("/webhooks")
	{
		webhooks.POST("/mock-payments", c.PaymentHandler.MockPaymentWebhook)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"uptime":    time.Since(appCtx.StartedAt).Round(time.Second).String(),
		})
	}
}
