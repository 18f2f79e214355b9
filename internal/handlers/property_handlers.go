package handlers

import (
	"net/http"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"
	"rentease/internal/services"

	"github.com/labstack/echo/v4"
)

// PropertyHandlers handles HTTP requests for properties.
type PropertyHandlers struct {
	propertyService services.PropertyService
}

func NewPropertyHandlers(propertyService services.PropertyService) *PropertyHandlers {
	return &PropertyHandlers{propertyService: propertyService}
}

// PropertyPatch lists the fields a client may change on update. Unknown
// fields are rejected.
type PropertyPatch struct {
	Name          *string         `json:"name"`
	Address       *models.Address `json:"address"`
	Type          *string         `json:"type"`
	MonthlyRent   *float64        `json:"monthlyRent"`
	Status        *string         `json:"status"`
	Bedrooms      *int            `json:"bedrooms"`
	Bathrooms     *int            `json:"bathrooms"`
	SquareFootage *int            `json:"squareFootage"`
	Description   *string         `json:"description"`
}

func (p *PropertyPatch) apply(property *models.Property) {
	if p.Name != nil {
		property.Name = *p.Name
	}
	if p.Address != nil {
		property.Address = *p.Address
	}
	if p.Type != nil {
		property.Type = *p.Type
	}
	if p.MonthlyRent != nil {
		property.MonthlyRent = *p.MonthlyRent
	}
	if p.Status != nil {
		property.Status = *p.Status
	}
	if p.Bedrooms != nil {
		property.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		property.Bathrooms = *p.Bathrooms
	}
	if p.SquareFootage != nil {
		property.SquareFootage = p.SquareFootage
	}
	if p.Description != nil {
		property.Description = p.Description
	}
}

// CreateProperty handles POST /api/properties
func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	var property models.Property
	if err := c.Bind(&property); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.propertyService.Create(ctx, ownerID, &property); err != nil {
		return mapServiceError(err, "Property not found")
	}

	return common.SendSuccess(c, http.StatusCreated, "Property created successfully", property)
}

// ListProperties handles GET /api/properties
func (h *PropertyHandlers) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	filter := repositories.PropertyFilter{
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
	}
	page, limit, offset := parsePageLimit(c)

	properties, total, err := h.propertyService.List(ctx, ownerID, filter, limit, offset)
	if err != nil {
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Properties fetched successfully", map[string]interface{}{
		"properties": properties,
		"pagination": common.NewPagination(total, page, limit),
	})
}

// GetProperty handles GET /api/properties/:id
func (h *PropertyHandlers) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	property, err := h.propertyService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Property not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Property fetched successfully", property)
}

// UpdateProperty handles PUT /api/properties/:id
func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var patch PropertyPatch
	if err := common.BindStrict(c, &patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	property, err := h.propertyService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Property not found")
	}

	patch.apply(property)

	if err := h.propertyService.Update(ctx, ownerID, property); err != nil {
		return mapServiceError(err, "Property not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Property updated successfully", property)
}

// DeleteProperty handles DELETE /api/properties/:id
func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.propertyService.Delete(ctx, ownerID, id); err != nil {
		return mapServiceError(err, "Property not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Property deleted successfully", nil)
}
