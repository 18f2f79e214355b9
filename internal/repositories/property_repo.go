package repositories

import (
	"context"
	"fmt"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PropertyFilter narrows List results. Zero values mean no filtering.
type PropertyFilter struct {
	Status string
	Type   string
}

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter PropertyFilter, limit, offset int) ([]*models.Property, int64, error)
}

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

const propertyColumns = `id, owner_id, name, street, city, state, zip_code, type, monthly_rent, status, bedrooms, bathrooms, square_footage, description, created_at, updated_at`

func scanProperty(row pgx.Row) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address.Street, &p.Address.City, &p.Address.State, &p.Address.ZipCode,
		&p.Type, &p.MonthlyRent, &p.Status, &p.Bedrooms, &p.Bathrooms, &p.SquareFootage, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepo) Create(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (id, owner_id, name, street, city, state, zip_code, type, monthly_rent, status, bedrooms, bathrooms, square_footage, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, property.ID, property.OwnerID, property.Name,
		property.Address.Street, property.Address.City, property.Address.State, property.Address.ZipCode,
		property.Type, property.MonthlyRent, property.Status, property.Bedrooms, property.Bathrooms,
		property.SquareFootage, property.Description)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE owner_id = $1 AND id = $2
	`
	return scanProperty(r.db.QueryRow(ctx, query, ownerID, id))
}

func (r *propertyRepo) Update(ctx context.Context, property *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, street = $2, city = $3, state = $4, zip_code = $5, type = $6, monthly_rent = $7, status = $8, bedrooms = $9, bathrooms = $10, square_footage = $11, description = $12, updated_at = NOW()
		WHERE owner_id = $13 AND id = $14
	`
	tag, err := r.db.Exec(ctx, query, property.Name,
		property.Address.Street, property.Address.City, property.Address.State, property.Address.ZipCode,
		property.Type, property.MonthlyRent, property.Status, property.Bedrooms, property.Bathrooms,
		property.SquareFootage, property.Description, property.OwnerID, property.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE owner_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) List(ctx context.Context, ownerID uuid.UUID, filter PropertyFilter, limit, offset int) ([]*models.Property, int64, error) {
	where := "WHERE owner_id = $1"
	args := []any{ownerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM properties "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, propertyColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, p)
	}
	return properties, total, rows.Err()
}
