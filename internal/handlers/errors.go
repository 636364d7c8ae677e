// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stagefolio/stagefolio-backend/internal/i18n"
	"github.com/stagefolio/stagefolio-backend/internal/services"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

// handleServiceError maps domain error kinds to machine-readable response
// codes. Everything except STORE_UNAVAILABLE is terminal for the request.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyProfileNotFound), nil)
	case errors.Is(err, services.ErrClaimNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyClaimNotFound), nil)
	case errors.Is(err, services.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyUserNotFound), nil)
	case errors.Is(err, services.ErrSlugTaken):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrAlreadyClaimed):
		utils.ErrorResponse(c, http.StatusBadRequest, "ALREADY_CLAIMED", i18n.T(lang, i18n.KeyProfileAlreadyClaimed), nil)
	case errors.Is(err, services.ErrDuplicatePendingClaim):
		utils.ErrorResponse(c, http.StatusBadRequest, "DUPLICATE_PENDING_CLAIM", i18n.T(lang, i18n.KeyClaimDuplicatePending), nil)
	case errors.Is(err, services.ErrClaimNotPending):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_STATE", i18n.T(lang, i18n.KeyClaimInvalidState), nil)
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrNotOwner):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrStoreUnavailable):
		utils.ServiceUnavailableResponse(c, "")
	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// currentUserID pulls the authenticated user's ID out of the gin context set
// by the auth middleware. A false return means the middleware did not run or
// the token carried a malformed subject.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
