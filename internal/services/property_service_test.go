package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPropertyService_DeleteNotFound(t *testing.T) {
	repo := new(MockPropertyRepository)
	svc := NewPropertyService(repo)

	ownerID := uuid.New()
	id := uuid.New()
	repo.On("Delete", mock.Anything, ownerID, id).Return(pgx.ErrNoRows)

	err := svc.Delete(context.Background(), ownerID, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyService_DeleteWithLinkedRecords(t *testing.T) {
	repo := new(MockPropertyRepository)
	svc := NewPropertyService(repo)

	ownerID := uuid.New()
	id := uuid.New()
	repo.On("Delete", mock.Anything, ownerID, id).
		Return(&pgconn.PgError{Code: "23503", ConstraintName: "tenants_property_id_fkey"})

	err := svc.Delete(context.Background(), ownerID, id)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.NotErrorIs(t, err, ErrNotFound)
}
