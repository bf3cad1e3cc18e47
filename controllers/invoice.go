// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"

	"aiinvoice-backend/services"
	"aiinvoice-backend/storage"
	"aiinvoice-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type InvoiceController struct {
	svc   *services.InvoiceService
	files storage.Resolver
	log   zerolog.Logger
}

func NewInvoiceController(svc *services.InvoiceService, files storage.Resolver, log zerolog.Logger) *InvoiceController {
	return &InvoiceController{svc: svc, files: files, log: log}
}

// CreateInvoice creates a new invoice for the caller
func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	body := requestPayload(c)
	files := uploadedFiles(c, ic.files)

	invoice, err := ic.svc.Create(c.Request.Context(), owner, body, files)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Invoice created", "data": invoice})
	case errors.Is(err, services.ErrNumberTaken):
		utils.RespondWithError(c, http.StatusConflict, "Invoice number already exists")
	case errors.Is(err, services.ErrExhausted):
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice after multiple attempts")
	default:
		ic.log.Error().Err(err).Msg("create invoice failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
	}
}

// GetInvoices lists the caller's invoices, newest first. Supports filtering
// by status, exact invoice number, and a substring search.
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := services.InvoiceFilter{
		Status: c.Query("status"),
		Number: c.Query("invoiceNumber"),
		Search: c.Query("search"),
	}

	invoices, err := ic.svc.List(c.Request.Context(), owner, filter)
	if err != nil {
		ic.log.Error().Err(err).Msg("list invoices failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": invoices})
}

// GetInvoice fetches one invoice by internal id or by invoice number.
// A document owned by someone else is forbidden, not hidden.
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	invoice, err := ic.svc.Get(c.Request.Context(), owner, c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": invoice})
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, "Not your invoice")
	default:
		ic.log.Error().Err(err).Msg("get invoice failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
	}
}

// UpdateInvoice applies a partial update; omitted fields keep their values
// and totals are recomputed from the effective items and tax rate.
func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	body := requestPayload(c)
	files := uploadedFiles(c, ic.files)

	invoice, err := ic.svc.Update(c.Request.Context(), owner, c.Param("id"), body, files)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice updated", "data": invoice})
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
	case errors.Is(err, services.ErrNumberTaken):
		utils.RespondWithError(c, http.StatusConflict, "Invoice number already exists")
	default:
		ic.log.Error().Err(err).Msg("update invoice failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
	}
}

// DeleteInvoice removes an owned invoice
func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := ic.svc.Delete(c.Request.Context(), owner, c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice deleted successfully"})
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
	default:
		ic.log.Error().Err(err).Msg("delete invoice failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Server error")
	}
}
