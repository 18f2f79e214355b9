package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"
	"rentease/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxDocumentSize caps uploaded lease documents at 10 MB.
const maxDocumentSize = 10 << 20

var allowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// LeaseHandlers handles HTTP requests for lease agreements. Create and
// update accept multipart forms so a document can ride along with the
// lease fields.
type LeaseHandlers struct {
	leaseService services.LeaseService
}

func NewLeaseHandlers(leaseService services.LeaseService) *LeaseHandlers {
	return &LeaseHandlers{leaseService: leaseService}
}

func parseLeaseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// openDocument validates and opens the optional multipart document field.
// Returns nil when no document was attached.
func openDocument(c echo.Context) (*services.DocumentUpload, func(), error) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid document upload")
	}

	if fileHeader.Size > maxDocumentSize {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Document must not exceed 10MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedDocumentTypes[contentType] {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Document must be a PDF or image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read document upload")
	}

	doc := &services.DocumentUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: contentType,
		Ext:         filepath.Ext(fileHeader.Filename),
	}
	return doc, func() { _ = file.Close() }, nil
}

// CreateLease handles POST /api/lease-agreements
func (h *LeaseHandlers) CreateLease(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	tenantID, err := uuid.Parse(c.FormValue("tenantId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tenantId format")
	}
	propertyID, err := uuid.Parse(c.FormValue("propertyId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid propertyId format")
	}
	startDate, err := parseLeaseDate(c.FormValue("startDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid startDate format")
	}
	endDate, err := parseLeaseDate(c.FormValue("endDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid endDate format")
	}
	monthlyRent, err := strconv.ParseFloat(c.FormValue("monthlyRent"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid monthlyRent format")
	}
	securityDeposit, err := strconv.ParseFloat(c.FormValue("securityDeposit"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid securityDeposit format")
	}

	lease := models.LeaseAgreement{
		TenantID:        tenantID,
		PropertyID:      propertyID,
		StartDate:       startDate,
		EndDate:         endDate,
		MonthlyRent:     monthlyRent,
		SecurityDeposit: securityDeposit,
		Terms:           c.FormValue("terms"),
		Status:          c.FormValue("status"),
	}

	doc, closeDoc, err := openDocument(c)
	if err != nil {
		return err
	}
	defer closeDoc()

	if err := h.leaseService.Create(ctx, ownerID, &lease, doc); err != nil {
		return mapServiceError(err, "Lease agreement not found")
	}

	return common.SendSuccess(c, http.StatusCreated, "Lease agreement created successfully", lease)
}

// ListLeases handles GET /api/lease-agreements
func (h *LeaseHandlers) ListLeases(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	propertyID, err := parseUUIDQuery(c, "propertyId")
	if err != nil {
		return err
	}
	tenantID, err := parseUUIDQuery(c, "tenantId")
	if err != nil {
		return err
	}

	filter := repositories.LeaseFilter{
		Status:     c.QueryParam("status"),
		PropertyID: propertyID,
		TenantID:   tenantID,
	}
	page, limit, offset := parsePageLimit(c)

	leases, total, err := h.leaseService.List(ctx, ownerID, filter, limit, offset)
	if err != nil {
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Lease agreements fetched successfully", map[string]interface{}{
		"leaseAgreements": leases,
		"pagination":      common.NewPagination(total, page, limit),
	})
}

// GetLease handles GET /api/lease-agreements/:id
func (h *LeaseHandlers) GetLease(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	lease, err := h.leaseService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Lease agreement not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Lease agreement fetched successfully", lease)
}

// UpdateLease handles PUT /api/lease-agreements/:id. Form fields left empty
// keep their stored values; an attached document replaces the stored one.
func (h *LeaseHandlers) UpdateLease(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	lease, err := h.leaseService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Lease agreement not found")
	}

	if raw := c.FormValue("startDate"); raw != "" {
		startDate, err := parseLeaseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid startDate format")
		}
		lease.StartDate = startDate
	}
	if raw := c.FormValue("endDate"); raw != "" {
		endDate, err := parseLeaseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid endDate format")
		}
		lease.EndDate = endDate
	}
	if raw := c.FormValue("monthlyRent"); raw != "" {
		monthlyRent, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid monthlyRent format")
		}
		lease.MonthlyRent = monthlyRent
	}
	if raw := c.FormValue("securityDeposit"); raw != "" {
		securityDeposit, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid securityDeposit format")
		}
		lease.SecurityDeposit = securityDeposit
	}
	if raw := c.FormValue("terms"); raw != "" {
		lease.Terms = raw
	}
	if raw := c.FormValue("status"); raw != "" {
		lease.Status = raw
	}

	doc, closeDoc, err := openDocument(c)
	if err != nil {
		return err
	}
	defer closeDoc()

	if err := h.leaseService.Update(ctx, ownerID, lease, doc); err != nil {
		return mapServiceError(err, "Lease agreement not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Lease agreement updated successfully", lease)
}

// DeleteLease handles DELETE /api/lease-agreements/:id
func (h *LeaseHandlers) DeleteLease(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.leaseService.Delete(ctx, ownerID, id); err != nil {
		return mapServiceError(err, "Lease agreement not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Lease agreement deleted successfully", nil)
}

// DownloadDocument handles GET /api/lease-agreements/:id/document
func (h *LeaseHandlers) DownloadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	reader, contentType, err := h.leaseService.Download(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Lease agreement not found")
	}
	defer reader.Close()

	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, reader)
}
