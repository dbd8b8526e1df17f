package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Публичное чтение компании
	api.GET("/company/:id", h.getCompany)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	authed := api.Group("")
	authed.Use(BearerAuthMiddleware(h.cfg, h.logger))
	{
		authed.POST("/user/location", h.recordLocation)

		dtr := authed.Group("/dtr")
		{
			dtr.GET("/my-records", h.myRecords)
			dtr.POST("/time-in", h.timeIn)
			dtr.POST("/time-out", h.timeOut)
		}

		companies := authed.Group("/company")
		{
			companies.GET("", h.listCompanies)
			companies.GET("/:id/students", h.listCompanyStudents)
			companies.PUT("/:id/safe-zone", h.updateSafeZone)
		}
	}
}
