package handlers

import (
	"net/http"
	"time"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"
	"rentease/internal/services"

	"github.com/labstack/echo/v4"
)

// MaintenanceHandlers handles HTTP requests for maintenance requests.
type MaintenanceHandlers struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandlers(maintenanceService services.MaintenanceService) *MaintenanceHandlers {
	return &MaintenanceHandlers{maintenanceService: maintenanceService}
}

// MaintenancePatch lists the fields a client may change on update. The
// property and tenant references are fixed at creation time.
type MaintenancePatch struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Priority      *string    `json:"priority"`
	Status        *string    `json:"status"`
	Category      *string    `json:"category"`
	AssignedTo    *string    `json:"assignedTo"`
	EstimatedCost *float64   `json:"estimatedCost"`
	ActualCost    *float64   `json:"actualCost"`
	CompletedDate *time.Time `json:"completedDate"`
}

func (p *MaintenancePatch) apply(request *models.MaintenanceRequest) {
	if p.Title != nil {
		request.Title = *p.Title
	}
	if p.Description != nil {
		request.Description = *p.Description
	}
	if p.Priority != nil {
		request.Priority = *p.Priority
	}
	if p.Status != nil {
		request.Status = *p.Status
	}
	if p.Category != nil {
		request.Category = *p.Category
	}
	if p.AssignedTo != nil {
		request.AssignedTo = p.AssignedTo
	}
	if p.EstimatedCost != nil {
		request.EstimatedCost = p.EstimatedCost
	}
	if p.ActualCost != nil {
		request.ActualCost = p.ActualCost
	}
	if p.CompletedDate != nil {
		request.CompletedDate = p.CompletedDate
	}
}

// CreateRequest handles POST /api/maintenance-requests
func (h *MaintenanceHandlers) CreateRequest(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	var request models.MaintenanceRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.maintenanceService.Create(ctx, ownerID, &request); err != nil {
		return mapServiceError(err, "Maintenance request not found")
	}

	return common.SendSuccess(c, http.StatusCreated, "Maintenance request created successfully", request)
}

// ListRequests handles GET /api/maintenance-requests
func (h *MaintenanceHandlers) ListRequests(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	propertyID, err := parseUUIDQuery(c, "propertyId")
	if err != nil {
		return err
	}

	filter := repositories.MaintenanceFilter{
		Status:     c.QueryParam("status"),
		Priority:   c.QueryParam("priority"),
		PropertyID: propertyID,
	}
	page, limit, offset := parsePageLimit(c)

	requests, total, err := h.maintenanceService.List(ctx, ownerID, filter, limit, offset)
	if err != nil {
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Maintenance requests fetched successfully", map[string]interface{}{
		"maintenanceRequests": requests,
		"pagination":          common.NewPagination(total, page, limit),
	})
}

// GetRequest handles GET /api/maintenance-requests/:id
func (h *MaintenanceHandlers) GetRequest(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	request, err := h.maintenanceService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Maintenance request not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Maintenance request fetched successfully", request)
}

// UpdateRequest handles PUT /api/maintenance-requests/:id
func (h *MaintenanceHandlers) UpdateRequest(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var patch MaintenancePatch
	if err := common.BindStrict(c, &patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.maintenanceService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Maintenance request not found")
	}

	patch.apply(request)

	if err := h.maintenanceService.Update(ctx, ownerID, request); err != nil {
		return mapServiceError(err, "Maintenance request not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Maintenance request updated successfully", request)
}

// DeleteRequest handles DELETE /api/maintenance-requests/:id
func (h *MaintenanceHandlers) DeleteRequest(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.maintenanceService.Delete(ctx, ownerID, id); err != nil {
		return mapServiceError(err, "Maintenance request not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Maintenance request deleted successfully", nil)
}
