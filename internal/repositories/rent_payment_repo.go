package repositories

import (
	"context"
	"fmt"
	"time"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentFilter narrows List results. Zero values mean no filtering.
type PaymentFilter struct {
	Status     string
	TenantID   uuid.UUID
	PropertyID uuid.UUID
}

type RentPaymentRepository interface {
	Create(ctx context.Context, payment *models.RentPayment) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.RentPayment, error)
	Update(ctx context.Context, payment *models.RentPayment) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter PaymentFilter, limit, offset int) ([]*models.RentPayment, int64, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (*models.PaymentStats, error)
	// MarkOverdue flips pending payments past their due date to late and
	// returns the distinct owners whose payments changed.
	MarkOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type rentPaymentRepo struct {
	db DB
}

func NewRentPaymentRepository(db DB) RentPaymentRepository {
	return &rentPaymentRepo{db: db}
}

const paymentColumns = `rp.id, rp.owner_id, rp.tenant_id, rp.property_id, rp.amount, rp.due_date, rp.paid_date,
			rp.status, rp.payment_method, rp.notes, rp.created_at, rp.updated_at,
			t.first_name, t.last_name, p.name, p.street, p.city, p.state, p.zip_code`

func scanPayment(row pgx.Row) (*models.RentPayment, error) {
	rp := &models.RentPayment{}
	tenantRef := &models.TenantRef{}
	propertyRef := &models.PropertyRef{}
	err := row.Scan(&rp.ID, &rp.OwnerID, &rp.TenantID, &rp.PropertyID, &rp.Amount, &rp.DueDate, &rp.PaidDate,
		&rp.Status, &rp.PaymentMethod, &rp.Notes, &rp.CreatedAt, &rp.UpdatedAt,
		&tenantRef.FirstName, &tenantRef.LastName,
		&propertyRef.Name, &propertyRef.Address.Street, &propertyRef.Address.City, &propertyRef.Address.State, &propertyRef.Address.ZipCode)
	if err != nil {
		return nil, err
	}
	tenantRef.ID = rp.TenantID
	propertyRef.ID = rp.PropertyID
	rp.Tenant = tenantRef
	rp.Property = propertyRef
	return rp, nil
}

func (r *rentPaymentRepo) Create(ctx context.Context, payment *models.RentPayment) error {
	query := `
		INSERT INTO rent_payments (id, owner_id, tenant_id, property_id, amount, due_date, paid_date, status, payment_method, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.OwnerID, payment.TenantID, payment.PropertyID,
		payment.Amount, payment.DueDate, payment.PaidDate, payment.Status, payment.PaymentMethod, payment.Notes)
	return err
}

func (r *rentPaymentRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.RentPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM rent_payments rp
		JOIN tenants t ON t.id = rp.tenant_id
		JOIN properties p ON p.id = rp.property_id
		WHERE rp.owner_id = $1 AND rp.id = $2
	`
	return scanPayment(r.db.QueryRow(ctx, query, ownerID, id))
}

func (r *rentPaymentRepo) Update(ctx context.Context, payment *models.RentPayment) error {
	query := `
		UPDATE rent_payments
		SET amount = $1, due_date = $2, paid_date = $3, status = $4, payment_method = $5, notes = $6, updated_at = NOW()
		WHERE owner_id = $7 AND id = $8
	`
	tag, err := r.db.Exec(ctx, query, payment.Amount, payment.DueDate, payment.PaidDate,
		payment.Status, payment.PaymentMethod, payment.Notes, payment.OwnerID, payment.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *rentPaymentRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM rent_payments WHERE owner_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *rentPaymentRepo) List(ctx context.Context, ownerID uuid.UUID, filter PaymentFilter, limit, offset int) ([]*models.RentPayment, int64, error) {
	where := "WHERE rp.owner_id = $1"
	args := []any{ownerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND rp.status = $%d", len(args))
	}
	if filter.TenantID != uuid.Nil {
		args = append(args, filter.TenantID)
		where += fmt.Sprintf(" AND rp.tenant_id = $%d", len(args))
	}
	if filter.PropertyID != uuid.Nil {
		args = append(args, filter.PropertyID)
		where += fmt.Sprintf(" AND rp.property_id = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM rent_payments rp "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM rent_payments rp
		JOIN tenants t ON t.id = rp.tenant_id
		JOIN properties p ON p.id = rp.property_id
		%s
		ORDER BY rp.due_date DESC
		LIMIT $%d OFFSET $%d
	`, paymentColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []*models.RentPayment
	for rows.Next() {
		rp, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, rp)
	}
	return payments, total, rows.Err()
}

func (r *rentPaymentRepo) Stats(ctx context.Context, ownerID uuid.UUID) (*models.PaymentStats, error) {
	stats := &models.PaymentStats{}
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'late')
		FROM rent_payments
		WHERE owner_id = $1
	`
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&stats.TotalPaid, &stats.PendingCount, &stats.LateCount)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *rentPaymentRepo) MarkOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
		UPDATE rent_payments
		SET status = 'late', updated_at = NOW()
		WHERE status = 'pending' AND due_date < $1
		RETURNING owner_id
	`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[uuid.UUID]bool)
	var owners []uuid.UUID
	for rows.Next() {
		var ownerID uuid.UUID
		if err := rows.Scan(&ownerID); err != nil {
			return nil, err
		}
		if !seen[ownerID] {
			seen[ownerID] = true
			owners = append(owners, ownerID)
		}
	}
	return owners, rows.Err()
}
