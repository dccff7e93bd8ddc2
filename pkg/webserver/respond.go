package webserver

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ravi-codingcity/FreightPro-B/pkg/apperrors"
	"github.com/ravi-codingcity/FreightPro-B/pkg/service"
	"github.com/ravi-codingcity/FreightPro-B/pkg/utils"
)

// bindJSON decodes the request body into dst. An empty body leaves dst zero so that
// missing fields are reported by field validation.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		message := typeErr.Field + " has an invalid type"
		if typeErr.Field == "isActive" || strings.HasSuffix(typeErr.Field, ".isActive") {
			message = service.MsgIsActiveMustBeBoolean
		}
		return apperrors.Validation(utils.ValidationMessage, apperrors.FieldError{
			Field:   typeErr.Field,
			Message: message,
		})
	}

	return apperrors.Validation("Invalid request body")
}

// renderError writes err in the response envelope. Internal failures are logged with their cause
// and reach the client only as a generic message.
func (s *Server) renderError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternal {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"request_id": c.GetString(requestIDHeader),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		}).Error(appErr.Message)
	}
	c.JSON(appErr.HTTPStatus(), utils.NewAppErrorResponse(appErr))
}
