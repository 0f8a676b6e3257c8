package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("")
	secured.Use(APIKeyAuthMiddleware(h.cfg, h.logger))

	// Маршруты для тревог
	alerts := secured.Group("/alerts")
	{
		alerts.POST("", h.createAlert)
		alerts.GET("", h.listAlerts)
	}

	// Убежища и опрос внешних источников
	secured.GET("/shelters", h.listShelters)
	secured.POST("/sources/refresh", h.refreshSources)

	// Аналитическая поверхность
	analytics := secured.Group("/analytics")
	{
		analytics.GET("/dashboard", h.getDashboard)
		analytics.GET("/risk", h.getRisk)
		analytics.GET("/correlation", h.getCorrelation)
	}

	// Ролевые рекомендации
	secured.POST("/recommendations", h.getRecommendations)
}
