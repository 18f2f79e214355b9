package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusResolved   = "resolved"
)

type MaintenanceRequest struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	OwnerID       uuid.UUID    `json:"ownerId" db:"owner_id"`
	PropertyID    uuid.UUID    `json:"propertyId" db:"property_id"`
	TenantID      *uuid.UUID   `json:"tenantId,omitempty" db:"tenant_id"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	Priority      string       `json:"priority" db:"priority"`
	Status        string       `json:"status" db:"status"`
	Category      string       `json:"category" db:"category"`
	AssignedTo    *string      `json:"assignedTo,omitempty" db:"assigned_to"`
	EstimatedCost *float64     `json:"estimatedCost,omitempty" db:"estimated_cost"`
	ActualCost    *float64     `json:"actualCost,omitempty" db:"actual_cost"`
	CompletedDate *time.Time   `json:"completedDate,omitempty" db:"completed_date"`
	Tenant        *TenantRef   `json:"tenant,omitempty"`
	Property      *PropertyRef `json:"property,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}
