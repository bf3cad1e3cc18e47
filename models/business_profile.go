package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessProfile holds the issuer defaults for a caller. Cardinality is
// relaxed: the newest profile for an owner is treated as current.
type BusinessProfile struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Owner string    `gorm:"index;not null" json:"owner"`

	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Gst          string `json:"gst"`

	LogoURL      string `gorm:"column:logo_url" json:"logoUrl"`
	StampURL     string `gorm:"column:stamp_url" json:"stampUrl"`
	SignatureURL string `gorm:"column:signature_url" json:"signatureUrl"`

	SignatureOwnerName  string `json:"signatureOwnerName"`
	SignatureOwnerTitle string `json:"signatureOwnerTitle"`

	DefaultTaxPercent float64 `gorm:"default:18" json:"defaultTaxPercent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
