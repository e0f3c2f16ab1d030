package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/gallerium/marketplace-v2/internal/api/middleware"
)

// SetupRoutes registers all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, validator middleware.TokenValidator) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/offers", handler.ListOffers)
		v1.GET("/offers/:id", handler.GetOffer)
		v1.GET("/collections", handler.ListCollections)
		v1.GET("/trades", handler.ListTrades)
		v1.POST("/pay", handler.PayOffer)

		v1.POST("/admin/login", handler.Login)

		admin := v1.Group("/admin", middleware.AdminAuth(validator))
		{
			admin.GET("/collections", handler.AdminListCollections)
			admin.POST("/collections", handler.EnableCollection)
			admin.DELETE("/collections/:id", handler.DisableCollection)
			admin.POST("/tokens", handler.SetAllowedTokens)
			admin.POST("/offers/fixed", handler.MassListFixed)
			admin.POST("/offers/auction", handler.MassListAuction)
			admin.POST("/offers/fiat", handler.MassListFiat)
			admin.DELETE("/offers", handler.MassCancel)
			admin.DELETE("/offers/fiat", handler.MassCancelFiat)
		}
	}
}
