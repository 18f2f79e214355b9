package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PropertyStatusOccupied = "occupied"
	PropertyStatusVacant   = "vacant"
)

// Address is stored as flat columns and nested in JSON for the client.
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	ZipCode string `json:"zipCode" db:"zip_code"`
}

type Property struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OwnerID       uuid.UUID `json:"ownerId" db:"owner_id"`
	Name          string    `json:"name" db:"name"`
	Address       Address   `json:"address"`
	Type          string    `json:"type" db:"type"`
	MonthlyRent   float64   `json:"monthlyRent" db:"monthly_rent"`
	Status        string    `json:"status" db:"status"`
	Bedrooms      int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms     int       `json:"bathrooms" db:"bathrooms"`
	SquareFootage *int      `json:"squareFootage,omitempty" db:"square_footage"`
	Description   *string   `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// PropertyRef is the shallow projection embedded in cross-referencing
// resources (tenants, leases, payments, maintenance requests).
type PropertyRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address Address   `json:"address"`
}
