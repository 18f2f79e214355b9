package repositories

import (
	"context"
	"fmt"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MaintenanceFilter narrows List results. Zero values mean no filtering.
type MaintenanceFilter struct {
	Status     string
	Priority   string
	PropertyID uuid.UUID
}

type MaintenanceRepository interface {
	Create(ctx context.Context, request *models.MaintenanceRequest) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.MaintenanceRequest, error)
	Update(ctx context.Context, request *models.MaintenanceRequest) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter MaintenanceFilter, limit, offset int) ([]*models.MaintenanceRequest, int64, error)
}

type maintenanceRepo struct {
	db DB
}

func NewMaintenanceRepository(db DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

const maintenanceColumns = `m.id, m.owner_id, m.property_id, m.tenant_id, m.title, m.description,
			m.priority, m.status, m.category, m.assigned_to, m.estimated_cost, m.actual_cost, m.completed_date,
			m.created_at, m.updated_at,
			t.first_name, t.last_name, p.name, p.street, p.city, p.state, p.zip_code`

func scanMaintenance(row pgx.Row) (*models.MaintenanceRequest, error) {
	m := &models.MaintenanceRequest{}
	propertyRef := &models.PropertyRef{}
	var firstName, lastName *string
	err := row.Scan(&m.ID, &m.OwnerID, &m.PropertyID, &m.TenantID, &m.Title, &m.Description,
		&m.Priority, &m.Status, &m.Category, &m.AssignedTo, &m.EstimatedCost, &m.ActualCost, &m.CompletedDate,
		&m.CreatedAt, &m.UpdatedAt,
		&firstName, &lastName,
		&propertyRef.Name, &propertyRef.Address.Street, &propertyRef.Address.City, &propertyRef.Address.State, &propertyRef.Address.ZipCode)
	if err != nil {
		return nil, err
	}
	if m.TenantID != nil && firstName != nil && lastName != nil {
		m.Tenant = &models.TenantRef{ID: *m.TenantID, FirstName: *firstName, LastName: *lastName}
	}
	propertyRef.ID = m.PropertyID
	m.Property = propertyRef
	return m, nil
}

func (r *maintenanceRepo) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, owner_id, property_id, tenant_id, title, description, priority, status, category, assigned_to, estimated_cost, actual_cost, completed_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.OwnerID, request.PropertyID, request.TenantID,
		request.Title, request.Description, request.Priority, request.Status, request.Category,
		request.AssignedTo, request.EstimatedCost, request.ActualCost, request.CompletedDate)
	return err
}

func (r *maintenanceRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.MaintenanceRequest, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance_requests m
		LEFT JOIN tenants t ON t.id = m.tenant_id
		JOIN properties p ON p.id = m.property_id
		WHERE m.owner_id = $1 AND m.id = $2
	`
	return scanMaintenance(r.db.QueryRow(ctx, query, ownerID, id))
}

func (r *maintenanceRepo) Update(ctx context.Context, request *models.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET title = $1, description = $2, priority = $3, status = $4, category = $5, assigned_to = $6, estimated_cost = $7, actual_cost = $8, completed_date = $9, updated_at = NOW()
		WHERE owner_id = $10 AND id = $11
	`
	tag, err := r.db.Exec(ctx, query, request.Title, request.Description, request.Priority, request.Status,
		request.Category, request.AssignedTo, request.EstimatedCost, request.ActualCost, request.CompletedDate,
		request.OwnerID, request.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *maintenanceRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM maintenance_requests WHERE owner_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *maintenanceRepo) List(ctx context.Context, ownerID uuid.UUID, filter MaintenanceFilter, limit, offset int) ([]*models.MaintenanceRequest, int64, error) {
	where := "WHERE m.owner_id = $1"
	args := []any{ownerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND m.status = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where += fmt.Sprintf(" AND m.priority = $%d", len(args))
	}
	if filter.PropertyID != uuid.Nil {
		args = append(args, filter.PropertyID)
		where += fmt.Sprintf(" AND m.property_id = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM maintenance_requests m "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM maintenance_requests m
		LEFT JOIN tenants t ON t.id = m.tenant_id
		JOIN properties p ON p.id = m.property_id
		%s
		ORDER BY m.created_at DESC
		LIMIT $%d OFFSET $%d
	`, maintenanceColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []*models.MaintenanceRequest
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, m)
	}
	return requests, total, rows.Err()
}
