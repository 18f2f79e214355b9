package services

import (
	"context"
	"errors"
	"fmt"

	"rentease/internal/models"
	"rentease/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AccountService interface {
	Register(ctx context.Context, username, email, password, role string) (*models.Account, *models.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.Account, *models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Account, *models.TokenPair, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

type accountService struct {
	accountRepo repositories.AccountRepository
	tokens      TokenService
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens TokenService) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		tokens:      tokens,
	}
}

func (s *accountService) Register(ctx context.Context, username, email, password, role string) (*models.Account, *models.TokenPair, error) {
	if role == "" {
		role = models.RoleLandlord
	}
	if role != models.RoleLandlord && role != models.RoleAdmin {
		return nil, nil, validation(fmt.Errorf("role must be either 'landlord' or 'admin'"))
	}

	exists, err := s.accountRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrDuplicateAccount
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	account := &models.Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*models.Account, *models.TokenPair, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*models.Account, *models.TokenPair, error) {
	accountID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	pair, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

func (s *accountService) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}
