package webserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ravi-codingcity/FreightPro-B/pkg/service"
	"github.com/ravi-codingcity/FreightPro-B/pkg/utils"
)

func (s *Server) addShippingLine(c *gin.Context) {
	id := c.Param("id")

	var req service.ShippingLineInput
	if err := bindJSON(c, &req); err != nil {
		s.renderError(c, err)
		return
	}

	destination, err := s.destinations.AddShippingLine(c.Request.Context(), id, req)
	if err != nil {
		s.logger.LogDestination(id, currentUserID(c), "add_shipping_line", false, map[string]interface{}{
			"line_name": req.LineName,
			"error":     err.Error(),
		})
		s.renderError(c, err)
		return
	}

	s.logger.LogDestination(id, currentUserID(c), "add_shipping_line", true, map[string]interface{}{
		"line_name": req.LineName,
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse(destination, "Shipping line added successfully"))
}

func (s *Server) addShippingLines(c *gin.Context) {
	id := c.Param("id")

	var req service.BulkShippingLinesInput
	if err := bindJSON(c, &req); err != nil {
		s.renderError(c, err)
		return
	}

	destination, err := s.destinations.AddShippingLines(c.Request.Context(), id, req)
	if err != nil {
		s.logger.LogDestination(id, currentUserID(c), "add_shipping_lines", false, map[string]interface{}{
			"lines": len(req.ShippingLines),
			"error": err.Error(),
		})
		s.renderError(c, err)
		return
	}

	s.logger.LogDestination(id, currentUserID(c), "add_shipping_lines", true, map[string]interface{}{
		"lines": len(req.ShippingLines),
	})

	message := fmt.Sprintf("%d shipping lines added successfully", len(req.ShippingLines))
	c.JSON(http.StatusOK, utils.NewSuccessResponse(destination, message))
}

func (s *Server) updateShippingLine(c *gin.Context) {
	id, lineID := c.Param("id"), c.Param("lineId")

	var req service.ShippingLinePatch
	if err := bindJSON(c, &req); err != nil {
		s.renderError(c, err)
		return
	}

	destination, err := s.destinations.UpdateShippingLine(c.Request.Context(), id, lineID, req)
	if err != nil {
		s.logger.LogDestination(id, currentUserID(c), "update_shipping_line", false, map[string]interface{}{
			"line_id": lineID,
			"error":   err.Error(),
		})
		s.renderError(c, err)
		return
	}

	s.logger.LogDestination(id, currentUserID(c), "update_shipping_line", true, map[string]interface{}{
		"line_id": lineID,
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse(destination, "Shipping line updated successfully"))
}

func (s *Server) deleteShippingLine(c *gin.Context) {
	id, lineID := c.Param("id"), c.Param("lineId")

	destination, err := s.destinations.RemoveShippingLine(c.Request.Context(), id, lineID)
	if err != nil {
		s.logger.LogDestination(id, currentUserID(c), "delete_shipping_line", false, map[string]interface{}{
			"line_id": lineID,
			"error":   err.Error(),
		})
		s.renderError(c, err)
		return
	}

	s.logger.LogDestination(id, currentUserID(c), "delete_shipping_line", true, map[string]interface{}{
		"line_id": lineID,
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse(destination, "Shipping line deleted successfully"))
}
