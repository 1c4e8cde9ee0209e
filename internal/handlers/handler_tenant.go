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

// tenantHandler handles HTTP requests related to tenants and branches.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

// newTenantHandler creates a new tenantHandler.
func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{
		tenantService: ts,
	}
}

// registerTenantRoutes registers routes related to tenants and branches.
// Provisioning a tenant is open to any authenticated user; everything under
// /tenants/current is scoped to the caller's token tenant.
func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.GET("/current", h.getCurrentTenant)
		tenants.DELETE("/current", h.deactivateTenant)
		tenants.GET("/current/branches", h.listBranches)
		tenants.POST("/current/branches", h.createBranch)
	}
}

// deactivateTenant godoc
// @Summary Deactivate the current tenant
// @Description Marks the caller's tenant inactive. Ledger history is retained.
// @Tags tenants
// @Produce json
// @Success 204 "Deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Failure 500 {object} map[string]string "Failed to deactivate tenant"
// @Security BearerAuth
// @Router /tenants/current [delete]
func (h *tenantHandler) deactivateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	if err := h.tenantService.DeactivateTenant(c.Request.Context(), tenantID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		} else {
			logger.Error("Failed to deactivate tenant", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate tenant"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// createTenant godoc
// @Summary Provision a tenant
// @Description Creates a tenant with its head office branch and seeded chart of accounts
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create tenant"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create tenant", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		}
		return
	}

	logger.Info("Tenant provisioned", slog.String("tenant_id", tenant.TenantID))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// getCurrentTenant godoc
// @Summary Get the current tenant
// @Description Retrieves the tenant the caller's token is scoped to
// @Tags tenants
// @Produce json
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tenant"
// @Security BearerAuth
// @Router /tenants/current [get]
func (h *tenantHandler) getCurrentTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		} else {
			logger.Error("Failed to get tenant", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tenant"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// createBranch godoc
// @Summary Add a branch
// @Description Adds a branch to the caller's tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Param branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create branch"
// @Security BearerAuth
// @Router /tenants/current/branches [post]
func (h *tenantHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	branch, err := h.tenantService.CreateBranch(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create branch", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		}
		return
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Description Lists the caller's tenant branches
// @Tags tenants
// @Produce json
// @Success 200 {array} dto.BranchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list branches"
// @Security BearerAuth
// @Router /tenants/current/branches [get]
func (h *tenantHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := tenantAndUserFromContext(c)
	if !ok {
		return
	}

	branches, err := h.tenantService.ListBranches(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list branches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list branches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponses(branches))
}
