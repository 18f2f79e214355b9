package repositories

import (
	"context"

	"rentease/internal/models"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type accountRepo struct {
	db DB
}

func NewAccountRepository(db DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, account.ID, account.Username, account.Email, account.PasswordHash, account.Role)
	return err
}

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.Role, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.Role, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1 OR email = $2)`
	err := r.db.QueryRow(ctx, query, username, email).Scan(&exists)
	return exists, err
}
