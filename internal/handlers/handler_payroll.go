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

// payrollHandler handles HTTP requests related to payroll.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{
		payrollService: ps,
	}
}

// registerPayrollRoutes registers routes related to payroll.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/employees", h.createEmployee)
		payroll.PUT("/employees/:employee_id/config", h.upsertPayrollConfig)
		payroll.GET("/employees/:employee_id/payslip-preview", h.previewPayslip)
		payroll.POST("/runs", h.runPayroll)
		payroll.GET("/payslips/:payslip_id", h.getPayslip)
		payroll.POST("/post", h.postPayroll)
		payroll.GET("/summary", h.getPayrollSummary)
	}
}

// createEmployee godoc
// @Summary Register an employee
// @Description Registers a new employee for payroll
// @Tags payroll
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Employee number already exists"
// @Failure 500 {object} map[string]string "Failed to create employee"
// @Security BearerAuth
// @Router /payroll/employees [post]
func (h *payrollHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create employee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		}
		return
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// upsertPayrollConfig godoc
// @Summary Set an employee's payroll config
// @Description Creates or replaces an employee's recurring payroll parameters
// @Tags payroll
// @Accept json
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Param config body dto.UpsertPayrollConfigRequest true "Payroll config"
// @Success 200 {object} dto.PayrollConfigResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to save payroll config"
// @Security BearerAuth
// @Router /payroll/employees/{employee_id}/config [put]
func (h *payrollHandler) upsertPayrollConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employee_id")

	var req dto.UpsertPayrollConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	config, err := h.payrollService.UpsertPayrollConfig(c.Request.Context(), tenantID, employeeID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to upsert payroll config", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payroll config"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollConfigResponse(config))
}

// previewPayslip godoc
// @Summary Preview an employee's payslip
// @Description Computes a payslip for a pay period without persisting anything
// @Tags payroll
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Param periodStart query string true "Pay period start (YYYY-MM-DD)"
// @Param periodEnd query string true "Pay period end (YYYY-MM-DD)"
// @Param payDate query string true "Pay date (YYYY-MM-DD)"
// @Success 200 {object} dto.PayslipResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee or payroll config not found"
// @Failure 500 {object} map[string]string "Failed to compute payslip"
// @Security BearerAuth
// @Router /payroll/employees/{employee_id}/payslip-preview [get]
func (h *payrollHandler) previewPayslip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employee_id")

	var params dto.PayslipPreviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	payslip, err := h.payrollService.ComputePayslip(c.Request.Context(), tenantID, employeeID, params.PeriodStart, params.PeriodEnd, params.PayDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee or payroll config not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to compute payslip preview", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payslip"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayslipResponse(payslip))
}

// runPayroll godoc
// @Summary Run payroll for a branch
// @Description Computes and stores payslips for active employees over one pay period
// @Tags payroll
// @Accept json
// @Produce json
// @Param run body dto.RunPayrollRequest true "Payroll run details"
// @Success 201 {array} dto.PayslipResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to run payroll"
// @Security BearerAuth
// @Router /payroll/runs [post]
func (h *payrollHandler) runPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RunPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	payslips, err := h.payrollService.RunPayroll(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to run payroll", slog.String("branch_id", req.BranchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run payroll"})
		}
		return
	}

	logger.Info("Payroll run completed", slog.String("branch_id", req.BranchID), slog.Int("payslip_count", len(payslips)))
	c.JSON(http.StatusCreated, dto.ToPayslipResponses(payslips))
}

// getPayslip godoc
// @Summary Get a payslip by ID
// @Description Retrieves a computed payslip
// @Tags payroll
// @Produce json
// @Param payslip_id path string true "Payslip ID"
// @Success 200 {object} dto.PayslipResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payslip not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payslip"
// @Security BearerAuth
// @Router /payroll/payslips/{payslip_id} [get]
func (h *payrollHandler) getPayslip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payslipID := c.Param("payslip_id")

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	payslip, err := h.payrollService.GetPayslipByID(c.Request.Context(), tenantID, payslipID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payslip not found"})
		} else {
			logger.Error("Failed to get payslip", slog.String("payslip_id", payslipID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payslip"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayslipResponse(payslip))
}

// postPayroll godoc
// @Summary Post a payslip to the ledger
// @Description Writes the payslip's balanced voucher and marks the payslip posted
// @Tags payroll
// @Accept json
// @Produce json
// @Param posting body dto.PostPayrollRequest true "Payslip posting details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payslip not found"
// @Failure 409 {object} map[string]string "Payslip already posted"
// @Failure 500 {object} map[string]string "Failed to post payroll"
// @Security BearerAuth
// @Router /payroll/post [post]
func (h *payrollHandler) postPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	voucher, err := h.payrollService.PostPayroll(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payslip not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post payroll", slog.String("payslip_id", req.PayslipID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post payroll"})
		}
		return
	}

	logger.Info("Payslip posted to ledger",
		slog.String("payslip_id", req.PayslipID),
		slog.String("voucher_id", voucher.VoucherID),
	)
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getPayrollSummary godoc
// @Summary Get payroll summary
// @Description Aggregates payslips over a pay-date window
// @Tags payroll
// @Produce json
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.PayrollSummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to summarize payroll"
// @Security BearerAuth
// @Router /payroll/summary [get]
func (h *payrollHandler) getPayrollSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PayrollSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	summary, err := h.payrollService.GetPayrollSummary(c.Request.Context(), tenantID, params)
	if err != nil {
		logger.Error("Failed to summarize payroll", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize payroll"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollSummaryResponse(summary))
}
