package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campusconnect/venue-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response. AppErrors map to their status code and
// user-facing message; anything else becomes a logged 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if cause := appErr.Unwrap(); cause != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(),
				"error": cause,
			}).Error("request failed")
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err,
	}).Error("unhandled error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
