package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"
	"rentease/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
)

// RentPaymentHandlers handles HTTP requests for rent payments.
type RentPaymentHandlers struct {
	paymentService services.RentPaymentService
}

func NewRentPaymentHandlers(paymentService services.RentPaymentService) *RentPaymentHandlers {
	return &RentPaymentHandlers{paymentService: paymentService}
}

// RentPaymentPatch lists the fields a client may change on update. The
// tenant and property references are fixed at creation time.
type RentPaymentPatch struct {
	Amount        *float64   `json:"amount"`
	DueDate       *time.Time `json:"dueDate"`
	PaidDate      *time.Time `json:"paidDate"`
	Status        *string    `json:"status"`
	PaymentMethod *string    `json:"paymentMethod"`
	Notes         *string    `json:"notes"`
}

func (p *RentPaymentPatch) apply(payment *models.RentPayment) {
	if p.Amount != nil {
		payment.Amount = *p.Amount
	}
	if p.DueDate != nil {
		payment.DueDate = *p.DueDate
	}
	if p.PaidDate != nil {
		payment.PaidDate = p.PaidDate
	}
	if p.Status != nil {
		payment.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		payment.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		payment.Notes = p.Notes
	}
}

// CreatePayment handles POST /api/rent-payments
func (h *RentPaymentHandlers) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	var payment models.RentPayment
	if err := c.Bind(&payment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.paymentService.Create(ctx, ownerID, &payment); err != nil {
		return mapServiceError(err, "Rent payment not found")
	}

	return common.SendSuccess(c, http.StatusCreated, "Rent payment created successfully", payment)
}

// ListPayments handles GET /api/rent-payments
func (h *RentPaymentHandlers) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	tenantID, err := parseUUIDQuery(c, "tenantId")
	if err != nil {
		return err
	}
	propertyID, err := parseUUIDQuery(c, "propertyId")
	if err != nil {
		return err
	}

	filter := repositories.PaymentFilter{
		Status:     c.QueryParam("status"),
		TenantID:   tenantID,
		PropertyID: propertyID,
	}
	page, limit, offset := parsePageLimit(c)

	payments, total, err := h.paymentService.List(ctx, ownerID, filter, limit, offset)
	if err != nil {
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Rent payments fetched successfully", map[string]interface{}{
		"rentPayments": payments,
		"pagination":   common.NewPagination(total, page, limit),
	})
}

// GetPayment handles GET /api/rent-payments/:id
func (h *RentPaymentHandlers) GetPayment(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Rent payment not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Rent payment fetched successfully", payment)
}

// UpdatePayment handles PUT /api/rent-payments/:id
func (h *RentPaymentHandlers) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var patch RentPaymentPatch
	if err := common.BindStrict(c, &patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.paymentService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Rent payment not found")
	}

	patch.apply(payment)

	if err := h.paymentService.Update(ctx, ownerID, payment); err != nil {
		return mapServiceError(err, "Rent payment not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Rent payment updated successfully", payment)
}

// DeletePayment handles DELETE /api/rent-payments/:id
func (h *RentPaymentHandlers) DeletePayment(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.paymentService.Delete(ctx, ownerID, id); err != nil {
		return mapServiceError(err, "Rent payment not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Rent payment deleted successfully", nil)
}

// GetStats handles GET /api/rent-payments/stats/summary
func (h *RentPaymentHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	stats, err := h.paymentService.Stats(ctx, ownerID)
	if err != nil {
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Payment stats fetched successfully", stats)
}

// DownloadReceipt handles GET /api/rent-payments/:id/receipt
func (h *RentPaymentHandlers) DownloadReceipt(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.GetByID(ctx, ownerID, id)
	if err != nil {
		return mapServiceError(err, "Rent payment not found")
	}

	pdfBytes, err := buildReceiptPDF(payment)
	if err != nil {
		return fmt.Errorf("failed to generate receipt: %w", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, payment.ID.String()))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func buildReceiptPDF(payment *models.RentPayment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "RENT PAYMENT RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receipt Number: %s", payment.ID.String()))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Due Date: %s", payment.DueDate.Format("02-Jan-2006")))
	pdf.Ln(8)
	if payment.PaidDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Paid Date: %s", payment.PaidDate.Format("02-Jan-2006")))
		pdf.Ln(8)
	}
	pdf.Ln(5)

	if payment.Tenant != nil {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "RECEIVED FROM:")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, fmt.Sprintf("%s %s", payment.Tenant.FirstName, payment.Tenant.LastName))
		pdf.Ln(8)
	}

	if payment.Property != nil {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "PROPERTY:")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, payment.Property.Name)
		pdf.Ln(8)
		pdf.Cell(0, 8, fmt.Sprintf("%s, %s, %s %s",
			payment.Property.Address.Street, payment.Property.Address.City,
			payment.Property.Address.State, payment.Property.Address.ZipCode))
		pdf.Ln(8)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Amount: $%.2f", payment.Amount))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Payment Method: %s", payment.PaymentMethod))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", payment.Status))
	pdf.Ln(8)
	if payment.Notes != nil && *payment.Notes != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Notes: %s", *payment.Notes))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
