// internal/handlers/import.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stagefolio/stagefolio-backend/internal/i18n"
	"github.com/stagefolio/stagefolio-backend/internal/services"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type ImportHandler struct {
	importService *services.ImportService
}

func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportProfiles handles POST /admin/import/profiles. Accepts a multipart
// upload with a "file" field containing the CSV.
func (h *ImportHandler) ImportProfiles(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No CSV file provided", nil)
		return
	}
	defer file.Close()

	result, err := h.importService.ImportProfiles(adminID, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"result":  result,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyImportCompleted),
	})
}
