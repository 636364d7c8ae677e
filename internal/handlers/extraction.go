// internal/handlers/extraction.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stagefolio/stagefolio-backend/internal/i18n"
	"github.com/stagefolio/stagefolio-backend/internal/services"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type ExtractionHandler struct {
	extractionService *services.ExtractionService
}

func NewExtractionHandler(extractionService *services.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// ExtractProfile handles POST /extraction/profile. The response is a draft
// for the client to review; nothing is persisted here.
func (h *ExtractionHandler) ExtractProfile(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	draft, err := h.extractionService.ExtractProfile(c.Request.Context(), req.Text)
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.ErrorResponse(c, http.StatusBadGateway, "EXTRACTION_FAILED",
			i18n.T(lang, i18n.KeyExtractionFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"draft":   draft,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyExtractionCompleted),
	})
}
