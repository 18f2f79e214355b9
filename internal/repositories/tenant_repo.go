package repositories

import (
	"context"
	"fmt"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TenantFilter narrows List results. Zero values mean no filtering.
type TenantFilter struct {
	Status     string
	PropertyID uuid.UUID
}

type TenantRepository interface {
	// CreateAndOccupy inserts the tenant and flips the referenced property to
	// occupied in a single transaction.
	CreateAndOccupy(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	// DeleteAndMaybeVacate removes the tenant and, when no active tenants
	// remain on its property, flips the property back to vacant. Both writes
	// run in a single transaction.
	DeleteAndMaybeVacate(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter TenantFilter, limit, offset int) ([]*models.Tenant, int64, error)
	CountActiveByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
}

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `t.id, t.owner_id, t.property_id, t.first_name, t.last_name, t.email, t.phone,
			t.lease_start_date, t.lease_end_date, t.monthly_rent, t.security_deposit, t.status,
			t.emergency_name, t.emergency_phone, t.emergency_relationship, t.created_at, t.updated_at,
			p.name, p.street, p.city, p.state, p.zip_code`

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	t := &models.Tenant{}
	ref := &models.PropertyRef{}
	var emName, emPhone, emRelationship *string
	err := row.Scan(&t.ID, &t.OwnerID, &t.PropertyID, &t.FirstName, &t.LastName, &t.Email, &t.Phone,
		&t.LeaseStartDate, &t.LeaseEndDate, &t.MonthlyRent, &t.SecurityDeposit, &t.Status,
		&emName, &emPhone, &emRelationship, &t.CreatedAt, &t.UpdatedAt,
		&ref.Name, &ref.Address.Street, &ref.Address.City, &ref.Address.State, &ref.Address.ZipCode)
	if err != nil {
		return nil, err
	}
	if emName != nil || emPhone != nil || emRelationship != nil {
		t.EmergencyContact = &models.EmergencyContact{
			Name:         derefString(emName),
			Phone:        derefString(emPhone),
			Relationship: derefString(emRelationship),
		}
	}
	ref.ID = t.PropertyID
	t.Property = ref
	return t, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func emergencyFields(t *models.Tenant) (name, phone, relationship *string) {
	if t.EmergencyContact == nil {
		return nil, nil, nil
	}
	return &t.EmergencyContact.Name, &t.EmergencyContact.Phone, &t.EmergencyContact.Relationship
}

func (r *tenantRepo) CreateAndOccupy(ctx context.Context, tenant *models.Tenant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	emName, emPhone, emRelationship := emergencyFields(tenant)
	insert := `
		INSERT INTO tenants (id, owner_id, property_id, first_name, last_name, email, phone, lease_start_date, lease_end_date, monthly_rent, security_deposit, status, emergency_name, emergency_phone, emergency_relationship, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, insert, tenant.ID, tenant.OwnerID, tenant.PropertyID,
		tenant.FirstName, tenant.LastName, tenant.Email, tenant.Phone,
		tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.MonthlyRent, tenant.SecurityDeposit,
		tenant.Status, emName, emPhone, emRelationship); err != nil {
		return err
	}

	occupy := `UPDATE properties SET status = 'occupied', updated_at = NOW() WHERE owner_id = $1 AND id = $2`
	if _, err := tx.Exec(ctx, occupy, tenant.OwnerID, tenant.PropertyID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *tenantRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants t
		JOIN properties p ON p.id = t.property_id
		WHERE t.owner_id = $1 AND t.id = $2
	`
	return scanTenant(r.db.QueryRow(ctx, query, ownerID, id))
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	emName, emPhone, emRelationship := emergencyFields(tenant)
	query := `
		UPDATE tenants
		SET first_name = $1, last_name = $2, email = $3, phone = $4, lease_start_date = $5, lease_end_date = $6, monthly_rent = $7, security_deposit = $8, status = $9, emergency_name = $10, emergency_phone = $11, emergency_relationship = $12, updated_at = NOW()
		WHERE owner_id = $13 AND id = $14
	`
	tag, err := r.db.Exec(ctx, query, tenant.FirstName, tenant.LastName, tenant.Email, tenant.Phone,
		tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.MonthlyRent, tenant.SecurityDeposit,
		tenant.Status, emName, emPhone, emRelationship, tenant.OwnerID, tenant.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tenantRepo) DeleteAndMaybeVacate(ctx context.Context, ownerID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var propertyID uuid.UUID
	del := `DELETE FROM tenants WHERE owner_id = $1 AND id = $2 RETURNING property_id`
	if err := tx.QueryRow(ctx, del, ownerID, id).Scan(&propertyID); err != nil {
		return err
	}

	var remaining int64
	count := `SELECT COUNT(*) FROM tenants WHERE property_id = $1 AND status = 'active'`
	if err := tx.QueryRow(ctx, count, propertyID).Scan(&remaining); err != nil {
		return err
	}

	if remaining == 0 {
		vacate := `UPDATE properties SET status = 'vacant', updated_at = NOW() WHERE owner_id = $1 AND id = $2`
		if _, err := tx.Exec(ctx, vacate, ownerID, propertyID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *tenantRepo) List(ctx context.Context, ownerID uuid.UUID, filter TenantFilter, limit, offset int) ([]*models.Tenant, int64, error) {
	where := "WHERE t.owner_id = $1"
	args := []any{ownerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if filter.PropertyID != uuid.Nil {
		args = append(args, filter.PropertyID)
		where += fmt.Sprintf(" AND t.property_id = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tenants t "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM tenants t
		JOIN properties p ON p.id = t.property_id
		%s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, tenantColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, t)
	}
	return tenants, total, rows.Err()
}

func (r *tenantRepo) CountActiveByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM tenants WHERE property_id = $1 AND status = 'active'`
	err := r.db.QueryRow(ctx, query, propertyID).Scan(&count)
	return count, err
}
