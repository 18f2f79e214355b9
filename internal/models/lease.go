package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeaseStatusActive     = "active"
	LeaseStatusExpired    = "expired"
	LeaseStatusTerminated = "terminated"
)

type LeaseAgreement struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	OwnerID         uuid.UUID    `json:"ownerId" db:"owner_id"`
	TenantID        uuid.UUID    `json:"tenantId" db:"tenant_id"`
	PropertyID      uuid.UUID    `json:"propertyId" db:"property_id"`
	StartDate       time.Time    `json:"startDate" db:"start_date"`
	EndDate         time.Time    `json:"endDate" db:"end_date"`
	MonthlyRent     float64      `json:"monthlyRent" db:"monthly_rent"`
	SecurityDeposit float64      `json:"securityDeposit" db:"security_deposit"`
	Terms           string       `json:"terms" db:"terms"`
	Status          string       `json:"status" db:"status"`
	DocumentPath    *string      `json:"documentPath,omitempty" db:"document_path"`
	Tenant          *TenantRef   `json:"tenant,omitempty"`
	Property        *PropertyRef `json:"property,omitempty"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
}
