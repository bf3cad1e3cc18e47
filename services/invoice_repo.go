// services/invoice_repo.go
package services

import (
	"context"
	"errors"
	"strings"

	"aiinvoice-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNumberTaken is the typed uniqueness-violation signal the workflow
	// branches on. Any other persistence error is fatal for the request.
	ErrNumberTaken = errors.New("invoice number already exists")

	ErrNotFound  = errors.New("invoice not found")
	ErrForbidden = errors.New("not your invoice")
	ErrExhausted = errors.New("failed to create invoice after multiple attempts")
)

// InvoiceFilter narrows a listing. Search is a case-insensitive substring
// match across requester email, client fields and invoice number.
type InvoiceFilter struct {
	Status string
	Number string
	Search string
}

// InvoiceRepository is the document-store abstraction. Find methods return
// (nil, nil) when no document matches; an owner argument of "" means
// unscoped lookup.
type InvoiceRepository interface {
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID, owner string) (*models.Invoice, error)
	FindByNumber(ctx context.Context, number, owner string) (*models.Invoice, error)
	List(ctx context.Context, owner string, f InvoiceFilter) ([]models.Invoice, error)
	Create(ctx context.Context, inv *models.Invoice) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository wraps a *gorm.DB opened with TranslateError enabled;
// the duplicate-key mapping below depends on it.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &gormInvoiceRepository{db: db}
}

func (r *gormInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoice_number = ?", number).
		Count(&n).Error
	return n > 0, err
}

func (r *gormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID, owner string) (*models.Invoice, error) {
	return r.findOne(ctx, "id = ?", id.String(), owner)
}

func (r *gormInvoiceRepository) FindByNumber(ctx context.Context, number, owner string) (*models.Invoice, error) {
	return r.findOne(ctx, "invoice_number = ?", number, owner)
}

func (r *gormInvoiceRepository) findOne(ctx context.Context, cond, value, owner string) (*models.Invoice, error) {
	q := r.db.WithContext(ctx).Where(cond, value)
	if owner != "" {
		q = q.Where("owner = ?", owner)
	}
	var inv models.Invoice
	if err := q.First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *gormInvoiceRepository) List(ctx context.Context, owner string, f InvoiceFilter) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).Where("owner = ?", owner)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Number != "" {
		q = q.Where("invoice_number = ?", f.Number)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		// The client column is a JSON document; casting to text covers its
		// name/email subfields on both postgres and sqlite.
		q = q.Where(
			"LOWER(from_email) LIKE ? OR LOWER(invoice_number) LIKE ? OR LOWER(CAST(client AS TEXT)) LIKE ?",
			needle, needle, needle,
		)
	}
	var out []models.Invoice
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *gormInvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		// invoice_number carries the only application-level unique index on
		// this table, so a duplicate-key here is a number conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNumberTaken
		}
		return err
	}
	return nil
}

func (r *gormInvoiceRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Invoice, error) {
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id.String()).
		Updates(fields).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNumberTaken
		}
		return nil, err
	}
	return r.FindByID(ctx, id, "")
}

func (r *gormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id.String()).Error
}
