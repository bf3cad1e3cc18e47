package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// LineItem is a single billable row on an invoice. Quantities and prices are
// whatever the client sent after coercion; malformed entries end up as zero
// contributions rather than errors.
type LineItem struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
}

// ItemList stores line items as a single JSON document column. Items are
// replaced wholesale on update, never patched element-wise.
type ItemList []LineItem

func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(ItemList{})
	}
	return json.Marshal(l)
}

func (l *ItemList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ClientInfo is the billed party. A bare string in the request becomes
// {name: string} before it gets here.
type ClientInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (c ClientInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ClientInfo) Scan(value interface{}) error {
	return scanJSON(value, c)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported source type for JSON column")
	}
}

type Invoice struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Owner string    `gorm:"index;not null" json:"owner"`

	// Human-facing identifier, globally unique across all owners.
	InvoiceNumber string `gorm:"uniqueIndex;not null" json:"invoiceNumber"`

	IssueDate string `json:"issueDate"`
	DueDate   string `json:"dueDate"`

	FromBusinessName string `json:"fromBusinessName"`
	FromEmail        string `json:"fromEmail"`
	FromAddress      string `json:"fromAddress"`
	FromPhone        string `json:"fromPhone"`
	FromGst          string `json:"fromGst"`

	Client ClientInfo `gorm:"type:jsonb" json:"client"`
	Items  ItemList   `gorm:"type:jsonb" json:"items"`

	TaxPercent float64 `json:"taxPercent"`
	Subtotal   float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax        float64 `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total      float64 `gorm:"type:decimal(12,2);not null" json:"total"`

	Currency string `gorm:"default:'INR'" json:"currency"`
	Status   string `gorm:"index;default:'draft'" json:"status"`

	LogoDataURL      string `gorm:"column:logo_data_url" json:"logoDataUrl"`
	StampDataURL     string `gorm:"column:stamp_data_url" json:"stampDataUrl"`
	SignatureDataURL string `gorm:"column:signature_data_url" json:"signatureDataUrl"`
	SignatureName    string `json:"signatureName"`
	SignatureTitle   string `json:"signatureTitle"`

	Notes string `json:"notes"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
