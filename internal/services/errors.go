package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors translated to HTTP statuses at the handler layer.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account with this email or username already exists")
	ErrInvalidProperty    = errors.New("invalid property reference")
	ErrNoDocument         = errors.New("lease has no document")
)

// ValidationError marks input validation failures so the HTTP layer can
// answer 400 instead of 500.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func validation(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503), raised when deleting a row other rows still
// reference.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
