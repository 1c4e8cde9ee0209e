package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nairabooks/ledger_backend/internal/apperrors"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
	"github.com/nairabooks/ledger_backend/internal/middleware"
)

// voucherHandler handles HTTP requests related to journal vouchers and
// ledger entries.
type voucherHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(ps portssvc.PostingSvcFacade) *voucherHandler {
	return &voucherHandler{
		postingService: ps,
	}
}

// registerVoucherRoutes registers routes related to journal vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newVoucherHandler(postingService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.postJournalEntry)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucher_id", h.getVoucher)
		vouchers.POST("/:voucher_id/reverse", h.reverseVoucher)
	}

	// Ledger entry listing lives beside the voucher routes since both read
	// the same journal.
	rg.GET("/accounts/:account_id/entries", h.listEntriesByAccount)
}

// postJournalEntry godoc
// @Summary Post a journal entry
// @Description Validates a balanced set of posting lines and writes the voucher atomically
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   posting body dto.CreatePostingRequest true "Posting details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced posting"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	voucher, err := h.postingService.PostJournalEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnbalancedEntry), errors.Is(err, apperrors.ErrInvalidLine), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Posting rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Posting references unknown account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal entry"})
		}
		return
	}

	logger.Info("Journal entry posted",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucher.VoucherNumber),
	)
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a voucher by ID
// @Description Retrieves a voucher with its ledger entries
// @Tags vouchers
// @Produce  json
// @Param   voucher_id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve voucher"
// @Security BearerAuth
// @Router /vouchers/{voucher_id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucher_id")

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	voucher, err := h.postingService.GetVoucherByID(c.Request.Context(), tenantID, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		} else {
			logger.Error("Failed to get voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve voucher"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Lists the tenant's vouchers, newest first
// @Tags vouchers
// @Produce  json
// @Param   branchID query string false "Filter by branch"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list vouchers"
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	vouchers, err := h.postingService.ListVouchers(c.Request.Context(), tenantID, params)
	if err != nil {
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vouchers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponses(vouchers))
}

// reverseVoucher godoc
// @Summary Reverse a voucher
// @Description Posts a mirror-image voucher against a posted voucher and links the pair
// @Tags vouchers
// @Produce  json
// @Param   voucher_id path string true "Voucher ID"
// @Success 201 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already reversed or is itself a reversal"
// @Failure 500 {object} map[string]string "Failed to reverse voucher"
// @Security BearerAuth
// @Router /vouchers/{voucher_id}/reverse [post]
func (h *voucherHandler) reverseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucher_id")

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	reversal, err := h.postingService.ReverseVoucher(c.Request.Context(), tenantID, voucherID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse voucher"})
		}
		return
	}

	logger.Info("Voucher reversed",
		slog.String("original_voucher_id", voucherID),
		slog.String("reversing_voucher_id", reversal.VoucherID),
	)
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(reversal))
}

// listEntriesByAccount godoc
// @Summary List ledger entries for an account
// @Description Lists an account's ledger entries in posting order, optionally bounded by a date window
// @Tags vouchers
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /accounts/{account_id}/entries [get]
func (h *voucherHandler) listEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	entries, err := h.postingService.ListEntriesByAccount(c.Request.Context(), tenantID, accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list ledger entries", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}
