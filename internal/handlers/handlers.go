// internal/handlers/handlers.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fastpurchase/backend/internal/services"
	"github.com/fastpurchase/backend/internal/utils"
)

// handleServiceError maps the service taxonomy onto HTTP statuses. Conflicts
// surface as 400 to keep the public contract stable.
func handleServiceError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case services.ErrorKindValidation, services.ErrorKindConflict:
			utils.BadRequestResponse(c, svcErr.Message, svcErr.Details)
		case services.ErrorKindUnauthorized:
			utils.UnauthorizedResponse(c, svcErr.Message, svcErr.Details)
		case services.ErrorKindForbidden:
			utils.ForbiddenResponse(c, svcErr.Message, svcErr.Details)
		case services.ErrorKindNotFound:
			utils.NotFoundResponse(c, svcErr.Message, svcErr.Details)
		default:
			logrus.WithError(errors.Unwrap(svcErr)).Error("Internal service error")
			utils.InternalErrorResponse(c, svcErr.Details)
		}
		return
	}

	logrus.WithError(err).Error("Unexpected error")
	utils.InternalErrorResponse(c, []string{"An unexpected error occurred"})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
