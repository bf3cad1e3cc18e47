// controllers/ai.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"aiinvoice-backend/models"
	"aiinvoice-backend/services"
	"aiinvoice-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type AIController struct {
	svc *services.DraftService
	db  *gorm.DB
	log zerolog.Logger
}

func NewAIController(svc *services.DraftService, db *gorm.DB, log zerolog.Logger) *AIController {
	return &AIController{svc: svc, db: db, log: log}
}

type generateDraftInput struct {
	Prompt string `json:"prompt"`
}

// GenerateDraft turns free text into a draft invoice JSON. The draft is only
// a pre-fill; the user submits it through the normal create endpoint.
func (ac *AIController) GenerateDraft(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input generateDraftInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Prompt) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Prompt is required")
		return
	}

	// Profile defaults are an enrichment; a missing profile is fine.
	var profile *models.BusinessProfile
	var stored models.BusinessProfile
	if err := ac.db.Where("owner = ?", owner).Order("created_at DESC").First(&stored).Error; err == nil {
		profile = &stored
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		ac.log.Warn().Err(err).Msg("business profile lookup failed, generating without defaults")
	}

	draft, model, err := ac.svc.GenerateDraft(c.Request.Context(), strings.TrimSpace(input.Prompt), profile)
	if err != nil {
		if errors.Is(err, services.ErrUpstream) {
			utils.RespondWithError(c, http.StatusBadGateway, "AI generation failed")
			return
		}
		ac.log.Error().Err(err).Msg("draft generation failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": draft, "model": model})
}
