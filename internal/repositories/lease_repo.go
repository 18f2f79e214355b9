package repositories

import (
	"context"
	"fmt"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LeaseFilter narrows List results. Zero values mean no filtering.
type LeaseFilter struct {
	Status     string
	PropertyID uuid.UUID
	TenantID   uuid.UUID
}

type LeaseRepository interface {
	Create(ctx context.Context, lease *models.LeaseAgreement) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.LeaseAgreement, error)
	Update(ctx context.Context, lease *models.LeaseAgreement) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter LeaseFilter, limit, offset int) ([]*models.LeaseAgreement, int64, error)
}

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

const leaseColumns = `l.id, l.owner_id, l.tenant_id, l.property_id, l.start_date, l.end_date,
			l.monthly_rent, l.security_deposit, l.terms, l.status, l.document_path, l.created_at, l.updated_at,
			t.first_name, t.last_name, p.name, p.street, p.city, p.state, p.zip_code`

func scanLease(row pgx.Row) (*models.LeaseAgreement, error) {
	l := &models.LeaseAgreement{}
	tenantRef := &models.TenantRef{}
	propertyRef := &models.PropertyRef{}
	err := row.Scan(&l.ID, &l.OwnerID, &l.TenantID, &l.PropertyID, &l.StartDate, &l.EndDate,
		&l.MonthlyRent, &l.SecurityDeposit, &l.Terms, &l.Status, &l.DocumentPath, &l.CreatedAt, &l.UpdatedAt,
		&tenantRef.FirstName, &tenantRef.LastName,
		&propertyRef.Name, &propertyRef.Address.Street, &propertyRef.Address.City, &propertyRef.Address.State, &propertyRef.Address.ZipCode)
	if err != nil {
		return nil, err
	}
	tenantRef.ID = l.TenantID
	propertyRef.ID = l.PropertyID
	l.Tenant = tenantRef
	l.Property = propertyRef
	return l, nil
}

func (r *leaseRepo) Create(ctx context.Context, lease *models.LeaseAgreement) error {
	query := `
		INSERT INTO lease_agreements (id, owner_id, tenant_id, property_id, start_date, end_date, monthly_rent, security_deposit, terms, status, document_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, lease.ID, lease.OwnerID, lease.TenantID, lease.PropertyID,
		lease.StartDate, lease.EndDate, lease.MonthlyRent, lease.SecurityDeposit,
		lease.Terms, lease.Status, lease.DocumentPath)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.LeaseAgreement, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM lease_agreements l
		JOIN tenants t ON t.id = l.tenant_id
		JOIN properties p ON p.id = l.property_id
		WHERE l.owner_id = $1 AND l.id = $2
	`
	return scanLease(r.db.QueryRow(ctx, query, ownerID, id))
}

func (r *leaseRepo) Update(ctx context.Context, lease *models.LeaseAgreement) error {
	query := `
		UPDATE lease_agreements
		SET start_date = $1, end_date = $2, monthly_rent = $3, security_deposit = $4, terms = $5, status = $6, document_path = $7, updated_at = NOW()
		WHERE owner_id = $8 AND id = $9
	`
	tag, err := r.db.Exec(ctx, query, lease.StartDate, lease.EndDate, lease.MonthlyRent,
		lease.SecurityDeposit, lease.Terms, lease.Status, lease.DocumentPath, lease.OwnerID, lease.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaseRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM lease_agreements WHERE owner_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaseRepo) List(ctx context.Context, ownerID uuid.UUID, filter LeaseFilter, limit, offset int) ([]*models.LeaseAgreement, int64, error) {
	where := "WHERE l.owner_id = $1"
	args := []any{ownerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	if filter.PropertyID != uuid.Nil {
		args = append(args, filter.PropertyID)
		where += fmt.Sprintf(" AND l.property_id = $%d", len(args))
	}
	if filter.TenantID != uuid.Nil {
		args = append(args, filter.TenantID)
		where += fmt.Sprintf(" AND l.tenant_id = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM lease_agreements l "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM lease_agreements l
		JOIN tenants t ON t.id = l.tenant_id
		JOIN properties p ON p.id = l.property_id
		%s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaseColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leases []*models.LeaseAgreement
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, 0, err
		}
		leases = append(leases, l)
	}
	return leases, total, rows.Err()
}
