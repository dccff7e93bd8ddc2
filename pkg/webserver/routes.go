package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ravi-codingcity/FreightPro-B/pkg/utils"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	api.Use(s.authMiddleware())
	{
		destinations := api.Group("/destinations")
		{
			destinations.GET("", s.getDestinations)
			destinations.POST("", s.createDestination)
			destinations.GET("/:id", s.getDestination)
			destinations.PUT("/:id", s.updateDestination)
			destinations.DELETE("/:id", s.deleteDestination)

			lines := destinations.Group("/:id/shipping-lines")
			{
				lines.POST("", s.addShippingLine)
				lines.POST("/bulk", s.addShippingLines)
				lines.PUT("/:lineId", s.updateShippingLine)
				lines.DELETE("/:lineId", s.deleteShippingLine)
			}
		}
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Route not found"))
	})
}
