package service

import (
	"errors"

	"notekeeper-be/internal/pkg/apperror"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueViolation covers gorm's translated error and a raw postgres 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

// storeError turns a repository error into an apperror. Errors that are
// already apperrors pass through untouched.
func storeError(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	if conflictMessage != "" && isUniqueViolation(err) {
		return apperror.Conflict(conflictMessage)
	}
	return apperror.Internal("store operation failed", err)
}
