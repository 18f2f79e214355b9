package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusLate    = "late"
)

type RentPayment struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	OwnerID       uuid.UUID    `json:"ownerId" db:"owner_id"`
	TenantID      uuid.UUID    `json:"tenantId" db:"tenant_id"`
	PropertyID    uuid.UUID    `json:"propertyId" db:"property_id"`
	Amount        float64      `json:"amount" db:"amount"`
	DueDate       time.Time    `json:"dueDate" db:"due_date"`
	PaidDate      *time.Time   `json:"paidDate,omitempty" db:"paid_date"`
	Status        string       `json:"status" db:"status"`
	PaymentMethod string       `json:"paymentMethod" db:"payment_method"`
	Notes         *string      `json:"notes,omitempty" db:"notes"`
	Tenant        *TenantRef   `json:"tenant,omitempty"`
	Property      *PropertyRef `json:"property,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}

// PaymentStats is the owner-scoped summary returned by the stats endpoint.
type PaymentStats struct {
	TotalPaid    float64 `json:"totalPaid"`
	PendingCount int64   `json:"pendingCount"`
	LateCount    int64   `json:"lateCount"`
}
