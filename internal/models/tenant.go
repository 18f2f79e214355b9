package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TenantStatusActive   = "active"
	TenantStatusInactive = "inactive"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type Tenant struct {
	ID               uuid.UUID         `json:"id" db:"id"`
	OwnerID          uuid.UUID         `json:"ownerId" db:"owner_id"`
	PropertyID       uuid.UUID         `json:"propertyId" db:"property_id"`
	FirstName        string            `json:"firstName" db:"first_name"`
	LastName         string            `json:"lastName" db:"last_name"`
	Email            string            `json:"email" db:"email"`
	Phone            string            `json:"phone" db:"phone"`
	LeaseStartDate   time.Time         `json:"leaseStartDate" db:"lease_start_date"`
	LeaseEndDate     time.Time         `json:"leaseEndDate" db:"lease_end_date"`
	MonthlyRent      float64           `json:"monthlyRent" db:"monthly_rent"`
	SecurityDeposit  float64           `json:"securityDeposit" db:"security_deposit"`
	Status           string            `json:"status" db:"status"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	Property         *PropertyRef      `json:"property,omitempty"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time         `json:"updatedAt" db:"updated_at"`
}

// TenantRef is the shallow projection embedded in leases, payments and
// maintenance requests.
type TenantRef struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}
