package webserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ravi-codingcity/FreightPro-B/pkg/db"
	"github.com/ravi-codingcity/FreightPro-B/pkg/service"
	"github.com/ravi-codingcity/FreightPro-B/pkg/utils"
)

// getDestinations returns active destinations, optionally only those served by a shipping line
func (s *Server) getDestinations(c *gin.Context) {
	filter := db.DestinationFilter{ShippingLine: c.Query("shippingLine")}

	destinations, err := s.destinations.List(c.Request.Context(), filter)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(destinations, ""))
}

// getDestination returns a destination by id, including soft-deleted ones
func (s *Server) getDestination(c *gin.Context) {
	destination, err := s.destinations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(destination, ""))
}

// createDestination creates a destination with its optional initial shipping lines
func (s *Server) createDestination(c *gin.Context) {
	var req service.CreateDestinationInput
	if err := bindJSON(c, &req); err != nil {
		s.renderError(c, err)
		return
	}

	destination, err := s.destinations.Create(c.Request.Context(), req)
	if err != nil {
		s.logger.LogDestination("", currentUserID(c), "create", false, map[string]interface{}{
			"destination_name": req.DestinationName,
			"error":            err.Error(),
		})
		s.renderError(c, err)
		return
	}

	s.logger.LogDestination(destination.ID, currentUserID(c), "create", true, map[string]interface{}{
		"destination_name": destination.DestinationName,
		"shipping_lines":   len(destination.ShippingLines),
	})

	message := fmt.Sprintf("Destination created successfully with %d shipping lines", len(destination.ShippingLines))
	c.JSON(http.StatusCreated, utils.NewSuccessResponse(destination, message))
}

// updateDestination renames a destination and/or replaces its shipping lines
func (s *Server) updateDestination(c *gin.Context) {
	id := c.Param("id")

	var req service.UpdateDestinationInput
	if err := bindJSON(c, &req); err != nil {
		s.renderError(c, err)
		return
	}

	destination, err := s.destinations.Update(c.Request.Context(), id, req)
	if err != nil {
		s.logger.LogDestination(id, currentUserID(c), "update", false, map[string]interface{}{
			"error": err.Error(),
		})
		s.renderError(c, err)
		return
	}

	s.logger.LogDestination(id, currentUserID(c), "update", true, map[string]interface{}{
		"name_changed":   req.DestinationName != nil,
		"lines_replaced": req.ShippingLines != nil,
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse(destination, "Destination updated successfully"))
}

// deleteDestination soft-deletes a destination
func (s *Server) deleteDestination(c *gin.Context) {
	id := c.Param("id")

	if err := s.destinations.Delete(c.Request.Context(), id); err != nil {
		s.logger.LogDestination(id, currentUserID(c), "delete", false, map[string]interface{}{
			"error": err.Error(),
		})
		s.renderError(c, err)
		return
	}

	s.logger.LogDestination(id, currentUserID(c), "delete", true, nil)

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Destination deleted successfully"))
}
