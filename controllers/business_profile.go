// controllers/business_profile.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"aiinvoice-backend/models"
	"aiinvoice-backend/storage"
	"aiinvoice-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type BusinessProfileController struct {
	db    *gorm.DB
	files storage.Resolver
	log   zerolog.Logger
}

func NewBusinessProfileController(db *gorm.DB, files storage.Resolver, log zerolog.Logger) *BusinessProfileController {
	return &BusinessProfileController{db: db, files: files, log: log}
}

// CreateBusinessProfile stores issuer defaults for the caller
func (bc *BusinessProfileController) CreateBusinessProfile(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	body := requestPayload(c)
	files := uploadedFiles(c, bc.files)

	profile := models.BusinessProfile{
		ID:                  uuid.New(),
		Owner:               owner,
		BusinessName:        strings.ToLower(strings.TrimSpace(body.Str("businessName"))),
		Email:               body.Str("email"),
		PhoneNumber:         body.Str("phoneNumber"),
		Gst:                 body.Str("gst"),
		SignatureOwnerName:  body.Str("signatureOwnerName"),
		SignatureOwnerTitle: body.Str("signatureOwnerTitle"),
		DefaultTaxPercent:   body.Num("defaultTaxPercent", 18),
		LogoURL:             files["logoDataUrl"],
		StampURL:            files["stampDataUrl"],
		SignatureURL:        files["signatureDataUrl"],
	}

	if err := bc.db.Create(&profile).Error; err != nil {
		bc.log.Error().Err(err).Msg("create business profile failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create business profile")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Business profile created", "data": profile})
}

// GetMyBusinessProfile returns the caller's current (newest) profile
func (bc *BusinessProfileController) GetMyBusinessProfile(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var profile models.BusinessProfile
	err := bc.db.Where("owner = ?", owner).Order("created_at DESC").First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business profile not found")
		} else {
			bc.log.Error().Err(err).Msg("get business profile failed")
			utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// UpdateBusinessProfile applies explicitly supplied fields to an owned profile
func (bc *BusinessProfileController) UpdateBusinessProfile(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	var profile models.BusinessProfile
	err = bc.db.Where("id = ? AND owner = ?", id.String(), owner).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business profile not found")
		} else {
			bc.log.Error().Err(err).Msg("load business profile failed")
			utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	body := requestPayload(c)
	files := uploadedFiles(c, bc.files)

	if body.Has("businessName") {
		profile.BusinessName = strings.ToLower(strings.TrimSpace(body.Str("businessName")))
	}
	if body.Has("email") {
		profile.Email = body.Str("email")
	}
	if body.Has("phoneNumber") {
		profile.PhoneNumber = body.Str("phoneNumber")
	}
	if body.Has("gst") {
		profile.Gst = body.Str("gst")
	}
	if body.Has("signatureOwnerName") {
		profile.SignatureOwnerName = body.Str("signatureOwnerName")
	}
	if body.Has("signatureOwnerTitle") {
		profile.SignatureOwnerTitle = body.Str("signatureOwnerTitle")
	}
	if body.Has("defaultTaxPercent") {
		profile.DefaultTaxPercent = body.Num("defaultTaxPercent", profile.DefaultTaxPercent)
	}
	if u := files["logoDataUrl"]; u != "" {
		profile.LogoURL = u
	}
	if u := files["stampDataUrl"]; u != "" {
		profile.StampURL = u
	}
	if u := files["signatureDataUrl"]; u != "" {
		profile.SignatureURL = u
	}

	if err := bc.db.Save(&profile).Error; err != nil {
		bc.log.Error().Err(err).Msg("update business profile failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Business profile updated", "data": profile})
}
