package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	AccountIDKey   contextKey = "account_id"
	AccountRoleKey contextKey = "account_role"
)

// GetAccountIDFromContext extracts the authenticated account ID from the
// request context.
func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(uuid.UUID)
	return accountID, ok
}

// GetAccountRoleFromContext extracts the authenticated account role from the
// request context.
func GetAccountRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(AccountRoleKey).(string)
	return role, ok
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateNonNegative validates amounts that must not be negative.
func ValidateNonNegative(value float64, fieldName string) error {
	if value < 0 {
		return fmt.Errorf("%s must not be negative", fieldName)
	}
	return nil
}

// ValidatePropertyType validates property type values.
func ValidatePropertyType(t string) error {
	validTypes := map[string]bool{
		"apartment": true, "house": true, "condo": true, "townhouse": true,
	}
	if !validTypes[t] {
		return fmt.Errorf("property type must be one of: apartment, house, condo, townhouse")
	}
	return nil
}

// ValidatePropertyStatus validates property occupancy status.
func ValidatePropertyStatus(status string) error {
	if status != "occupied" && status != "vacant" {
		return fmt.Errorf("property status must be either 'occupied' or 'vacant'")
	}
	return nil
}

// ValidateTenantStatus validates tenant status values.
func ValidateTenantStatus(status string) error {
	if status != "active" && status != "inactive" {
		return fmt.Errorf("tenant status must be either 'active' or 'inactive'")
	}
	return nil
}

// ValidateLeaseStatus validates lease agreement status values.
func ValidateLeaseStatus(status string) error {
	validStatuses := map[string]bool{
		"active": true, "expired": true, "terminated": true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("lease status must be one of: active, expired, terminated")
	}
	return nil
}

// ValidatePaymentStatus validates rent payment status values.
func ValidatePaymentStatus(status string) error {
	validStatuses := map[string]bool{
		"pending": true, "paid": true, "late": true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("payment status must be one of: pending, paid, late")
	}
	return nil
}

// ValidatePaymentMethod validates rent payment method values.
func ValidatePaymentMethod(method string) error {
	validMethods := map[string]bool{
		"cash": true, "check": true, "bank_transfer": true, "online": true,
	}
	if !validMethods[method] {
		return fmt.Errorf("payment method must be one of: cash, check, bank_transfer, online")
	}
	return nil
}

// ValidateMaintenanceStatus validates maintenance request status values.
func ValidateMaintenanceStatus(status string) error {
	validStatuses := map[string]bool{
		"open": true, "in_progress": true, "resolved": true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("maintenance status must be one of: open, in_progress, resolved")
	}
	return nil
}

// ValidateMaintenancePriority validates maintenance priority values.
func ValidateMaintenancePriority(priority string) error {
	validPriorities := map[string]bool{
		"low": true, "medium": true, "high": true, "urgent": true,
	}
	if !validPriorities[priority] {
		return fmt.Errorf("priority must be one of: low, medium, high, urgent")
	}
	return nil
}

// ValidateDateRange validates that a lease period is ordered.
func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end date cannot be before start date")
	}
	return nil
}

// SafeString safely handles string pointer operations.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
