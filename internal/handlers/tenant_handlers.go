package handlers

import (
	"net/http"
	"time"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"
	"rentease/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TenantHandlers handles HTTP requests for tenants.
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// TenantPatch lists the fields a client may change on update. The property
// reference is fixed at creation time.
type TenantPatch struct {
	FirstName        *string                  `json:"firstName"`
	LastName         *string                  `json:"lastName"`
	Email            *string                  `json:"email"`
	Phone            *string                  `json:"phone"`
	LeaseStartDate   *time.Time               `json:"leaseStartDate"`
	LeaseEndDate     *time.Time               `json:"leaseEndDate"`
	MonthlyRent      *float64                 `json:"monthlyRent"`
	SecurityDeposit  *float64                 `json:"securityDeposit"`
	Status           *string                  `json:"status"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact"`
}

func (p *TenantPatch) apply(tenant *models.Tenant) {
	if p.FirstName != nil {
		tenant.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		tenant.LastName = *p.LastName
	}
	if p.Email != nil {
		tenant.Email = *p.Email
	}
	if p.Phone != nil {
		tenant.Phone = *p.Phone
	}
	if p.LeaseStartDate != nil {
		tenant.LeaseStartDate = *p.LeaseStartDate
	}
	if p.LeaseEndDate != nil {
		tenant.LeaseEndDate = *p.LeaseEndDate
	}
	if p.MonthlyRent != nil {
		tenant.MonthlyRent = *p.MonthlyRent
	}
	if p.SecurityDeposit != nil {
		tenant.SecurityDeposit = *p.SecurityDeposit
	}
	if p.Status != nil {
		tenant.Status = *p.Status
	}
	if p.EmergencyContact != nil {
		tenant.EmergencyContact = p.EmergencyContact
	}
}

// CreateTenant handles POST /api/tenants
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	var tenant models.Tenant
	if err := c.Bind(&tenant); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if tenant.PropertyID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "propertyId is required")
	}

	if err := h.tenantService.Create(ctx, ownerID, &tenant); err != nil {
		return mapServiceError(err, "Tenant not found")
	}

	return common.SendSuccess(c, http.StatusCreated, "Tenant created successfully", tenant)
}

// ListTenants handles GET /api/tenants
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	propertyID, err := parseUUIDQuery(c, "propertyId")
	if err != nil {
		return err
	}

	filter := repositories.TenantFilter{
		Status:     c.QueryParam("status"),
		PropertyID: propertyID,
	}
	page, limit, offset := parsePageLimit(c)

	tenants, total, err := h.tenantService.List(ctx, ownerID, filter, limit, offset)
	if err != nil {
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Tenants fetched successfully", map[string]interface{}{
		"tenants":    tenants,
		"pagination": common.NewPagination(total, page, limit),
	})
}

// GetTenant handles GET /api/tenants/:id
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	tenant, err := h.tenantService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Tenant not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Tenant fetched successfully", tenant)
}

// UpdateTenant handles PUT /api/tenants/:id
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var patch TenantPatch
	if err := common.BindStrict(c, &patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenant, err := h.tenantService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Tenant not found")
	}

	patch.apply(tenant)

	if err := h.tenantService.Update(ctx, ownerID, tenant); err != nil {
		return mapServiceError(err, "Tenant not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Tenant updated successfully", tenant)
}

// DeleteTenant handles DELETE /api/tenants/:id
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.tenantService.Delete(ctx, ownerID, id); err != nil {
		return mapServiceError(err, "Tenant not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Tenant deleted successfully", nil)
}
