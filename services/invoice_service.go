// services/invoice_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"aiinvoice-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InvoiceService runs the create/update/read/delete workflows over the
// repository. All dependencies are injected; there is no package-level state.
type InvoiceService struct {
	repo         InvoiceRepository
	gen          *NumberGenerator
	saveAttempts int
	now          func() time.Time
	log          zerolog.Logger
}

func NewInvoiceService(repo InvoiceRepository, gen *NumberGenerator, saveAttempts int, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		repo:         repo,
		gen:          gen,
		saveAttempts: saveAttempts,
		now:          time.Now,
		log:          log,
	}
}

// Create normalizes the payload, computes totals, resolves the invoice
// number and persists. A caller-supplied number that is already in use is a
// conflict, surfaced before any write. Generated numbers that lose the race
// against a concurrent insert are regenerated and retried up to the save
// bound; every other store failure is fatal immediately.
func (s *InvoiceService) Create(ctx context.Context, owner string, body Payload, files map[string]string) (*models.Invoice, error) {
	items := ParseItems(body["items"])
	taxPercent := ResolveTaxPercent(body, 0)
	totals := ComputeTotals(items, taxPercent)

	supplied := strings.TrimSpace(body.Str("invoiceNumber"))
	if supplied != "" {
		exists, err := s.repo.ExistsByNumber(ctx, supplied)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrNumberTaken
		}
	}

	number := supplied
	if number == "" {
		number = s.gen.Generate(ctx)
	}

	inv := &models.Invoice{
		ID:            uuid.New(),
		Owner:         owner,
		InvoiceNumber: number,

		IssueDate: firstNonBlank(body.Str("issueDate"), s.now().Format("2006-01-02")),
		DueDate:   body.Str("dueDate"),

		FromBusinessName: body.Str("fromBusinessName"),
		FromEmail:        body.Str("fromEmail"),
		FromAddress:      body.Str("fromAddress"),
		FromPhone:        body.Str("fromPhone"),
		FromGst:          body.Str("fromGst"),

		Client: NormalizeClient(body["client"], models.ClientInfo{}),
		Items:  items,

		TaxPercent: taxPercent,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,

		Currency: firstNonBlank(body.Str("currency"), "INR"),
		Status:   NormalizeStatus(body["status"], "draft"),

		LogoDataURL:      resolveAttachment(files, body, "logoDataUrl", "logo"),
		StampDataURL:     resolveAttachment(files, body, "stampDataUrl", "stamp"),
		SignatureDataURL: resolveAttachment(files, body, "signatureDataUrl", "signature"),
		SignatureName:    body.Str("signatureName"),
		SignatureTitle:   body.Str("signatureTitle"),

		Notes: firstNonBlank(body.Str("notes"), body.Str("aiSource")),
	}

	for attempt := 0; attempt < s.saveAttempts; attempt++ {
		err := s.repo.Create(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, ErrNumberTaken) {
			return nil, err
		}
		if supplied != "" {
			// The pre-check passed but a concurrent create claimed the
			// caller's number in between.
			return nil, ErrNumberTaken
		}
		s.log.Warn().Str("invoiceNumber", inv.InvoiceNumber).Int("attempt", attempt+1).
			Msg("invoice number raced, regenerating")
		inv.InvoiceNumber = s.gen.Generate(ctx)
	}
	return nil, ErrExhausted
}

// Update applies a partial update to an owned invoice: only explicitly
// supplied fields overwrite, and totals are recomputed unconditionally from
// the effective items and tax rate.
func (s *InvoiceService) Update(ctx context.Context, owner, idOrNumber string, body Payload, files map[string]string) (*models.Invoice, error) {
	existing, err := s.findOwned(ctx, owner, idOrNumber)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	newNumber := strings.TrimSpace(body.Str("invoiceNumber"))
	if newNumber != "" && newNumber != existing.InvoiceNumber {
		conflict, err := s.repo.FindByNumber(ctx, newNumber, "")
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != existing.ID {
			return nil, ErrNumberTaken
		}
	}

	items := existing.Items
	if v, ok := body["items"]; ok {
		items = ParseItems(v)
	}
	taxPercent := ResolveTaxPercent(body, existing.TaxPercent)
	totals := ComputeTotals(items, taxPercent)

	fields := map[string]interface{}{
		"tax_percent": taxPercent,
		"subtotal":    totals.Subtotal,
		"tax":         totals.Tax,
		"total":       totals.Total,
	}
	if body.Has("items") {
		fields["items"] = items
	}
	if newNumber != "" && newNumber != existing.InvoiceNumber {
		fields["invoice_number"] = newNumber
	}
	if v, ok := body["client"]; ok {
		fields["client"] = NormalizeClient(v, existing.Client)
	}
	if body.Has("status") {
		if st := NormalizeStatus(body["status"], ""); st != "" {
			fields["status"] = st
		}
	}

	for bodyKey, column := range map[string]string{
		"issueDate":        "issue_date",
		"dueDate":          "due_date",
		"fromBusinessName": "from_business_name",
		"fromEmail":        "from_email",
		"fromAddress":      "from_address",
		"fromPhone":        "from_phone",
		"fromGst":          "from_gst",
		"currency":         "currency",
		"signatureName":    "signature_name",
		"signatureTitle":   "signature_title",
		"notes":            "notes",
	} {
		if body.Has(bodyKey) {
			fields[column] = body.Str(bodyKey)
		}
	}

	if u := resolveAttachment(files, body, "logoDataUrl", "logo"); u != "" {
		fields["logo_data_url"] = u
	}
	if u := resolveAttachment(files, body, "stampDataUrl", "stamp"); u != "" {
		fields["stamp_data_url"] = u
	}
	if u := resolveAttachment(files, body, "signatureDataUrl", "signature"); u != "" {
		fields["signature_data_url"] = u
	}

	updated, err := s.repo.Update(ctx, existing.ID, fields)
	if err != nil {
		// A concurrent rename can still win between the uniqueness check and
		// the write; the store's constraint is the authority.
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Get resolves by shape (uuid first, then invoice number) without an owner
// filter, so an existing document under another owner is reported as
// forbidden rather than missing.
func (s *InvoiceService) Get(ctx context.Context, owner, idOrNumber string) (*models.Invoice, error) {
	var (
		inv *models.Invoice
		err error
	)
	if id, perr := uuid.Parse(idOrNumber); perr == nil {
		inv, err = s.repo.FindByID(ctx, id, "")
	} else {
		inv, err = s.repo.FindByNumber(ctx, idOrNumber, "")
	}
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	if inv.Owner != "" && inv.Owner != owner {
		return nil, ErrForbidden
	}
	return inv, nil
}

// List returns the caller's invoices, newest first.
func (s *InvoiceService) List(ctx context.Context, owner string, f InvoiceFilter) ([]models.Invoice, error) {
	return s.repo.List(ctx, owner, f)
}

// Delete removes an owned invoice. No cascading side effects.
func (s *InvoiceService) Delete(ctx context.Context, owner, idOrNumber string) error {
	existing, err := s.findOwned(ctx, owner, idOrNumber)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, existing.ID)
}

func (s *InvoiceService) findOwned(ctx context.Context, owner, idOrNumber string) (*models.Invoice, error) {
	if id, err := uuid.Parse(idOrNumber); err == nil {
		return s.repo.FindByID(ctx, id, owner)
	}
	return s.repo.FindByNumber(ctx, idOrNumber, owner)
}

// resolveAttachment picks the attachment URL in precedence order: freshly
// uploaded file, canonical body field, legacy alias.
func resolveAttachment(files map[string]string, body Payload, canonical, alias string) string {
	return firstNonBlank(files[canonical], body.Str(canonical), body.Str(alias))
}
