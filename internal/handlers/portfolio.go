// internal/handlers/portfolio.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/i18n"
	"github.com/stagefolio/stagefolio-backend/internal/services"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type PortfolioHandler struct {
	portfolioService *services.PortfolioService
	storageService   *services.StorageService
}

func NewPortfolioHandler(portfolioService *services.PortfolioService, storageService *services.StorageService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		storageService:   storageService,
	}
}

// AddMedia handles POST /profiles/:slug/media
func (h *PortfolioHandler) AddMedia(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	item, err := h.portfolioService.AddMedia(c.Param("slug"), callerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// UploadMediaFile handles POST /profiles/:slug/media/upload. The file lands
// in storage first; the caller then registers it with AddMedia using the
// returned URL.
func (h *PortfolioHandler) UploadMediaFile(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.UploadOptions{
		Folder:       "media",
		MaxSize:      50 * 1024 * 1024,
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".mov", ".webm"},
		IsPublic:     true,
	})
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"upload":  result,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyFileUploadSuccess),
	})
}

// AddChoreography handles POST /profiles/:slug/choreography
func (h *PortfolioHandler) AddChoreography(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddChoreographyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	credit, err := h.portfolioService.AddChoreography(c.Param("slug"), callerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, credit)
}

// AddAward handles POST /profiles/:slug/awards
func (h *PortfolioHandler) AddAward(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	award, err := h.portfolioService.AddAward(c.Param("slug"), callerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, award)
}

// AddWorkshop handles POST /profiles/:slug/workshops
func (h *PortfolioHandler) AddWorkshop(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	workshop, err := h.portfolioService.AddWorkshop(c.Param("slug"), callerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, workshop)
}

// RemoveSectionItem handles DELETE /profiles/:slug/:section/:item_id
func (h *PortfolioHandler) RemoveSectionItem(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid item ID", nil)
		return
	}

	err = h.portfolioService.RemoveSectionItem(c.Param("slug"), callerID, c.Param("section"), itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND",
				i18n.T(utils.GetLangFromContext(c), i18n.KeyPortfolioItemNotFound), nil)
			return
		}
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyPortfolioItemDeleted),
	})
}
