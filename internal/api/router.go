// Package api contains the HTTP handlers and routing the host platform calls.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode, hostAPIKey string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))

	// Health and metrics (no auth required)
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Hooks the host calls during checkout and in its transaction screens
	hooks := router.Group("/hooks/paypal_pro")
	hooks.Use(HostAuthMiddleware(hostAPIKey))
	{
		hooks.GET("/refund-url", handler.RefundURL)
		hooks.POST("/transaction", CustomerMiddleware(), handler.ProcessTransaction)
		hooks.GET("/payment-button", handler.PaymentButton)
		hooks.GET("/status-label", handler.StatusLabel)
		hooks.GET("/cleared-for-delivery", handler.ClearedForDelivery)
		hooks.GET("/defaults", handler.Defaults)
	}

	// Admin settings page and setup wizard fragment
	admin := router.Group("/admin")
	admin.Use(HostAuthMiddleware(hostAPIKey))
	{
		admin.GET("/addons/paypal_pro/settings", handler.SettingsPage)
		admin.POST("/addons/paypal_pro/settings", handler.SaveSettings)
		admin.GET("/wizard/paypal_pro", handler.WizardFragment)
		admin.POST("/wizard/paypal_pro", handler.SaveWizard)
	}

	return router
}
