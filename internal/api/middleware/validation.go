package middleware

import (
	"net/http"

	"github.com/kpruthvi/portfolio/internal/api/constants"
	"github.com/kpruthvi/portfolio/internal/api/dto/common"
	"github.com/kpruthvi/portfolio/internal/api/dto/v1/contact"
	"github.com/kpruthvi/portfolio/internal/api/validation"
	"github.com/kpruthvi/portfolio/internal/logging"
	"github.com/kpruthvi/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	logger *logging.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(logger *logging.Logger) *ValidationMiddleware {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &ValidationMiddleware{logger: logger}
}

// ValidateSubmission binds the contact payload and stores it in the context.
// A body that is not valid JSON is treated as an unexpected failure (500).
// A missing, empty or non-string field is a client error (400).
func (m *ValidationMiddleware) ValidateSubmission() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.SubmissionRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			if validation.IsValidationError(err) {
				m.logger.Debug("Rejected submission from %s, missing %v", utils.GetRealIP(c), validation.MissingFields(err))
				utils.HandleErrorMessage(c, http.StatusBadRequest, common.MsgFieldsRequired)
				return
			}

			// Valid JSON of the wrong shape never yields four usable strings
			if validation.IsShapeError(err) {
				m.logger.Debug("Rejected submission from %s, malformed fields: %v", utils.GetRealIP(c), err)
				utils.HandleErrorMessage(c, http.StatusBadRequest, common.MsgFieldsRequired)
				return
			}

			utils.HandleAPIError(c, err, http.StatusInternalServerError, common.MsgUnexpected)
			return
		}

		c.Set(constants.ContextKeySubmission, &req)
		c.Next()
	}
}
