package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"inventory/internal/core/apperror"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"}, apperror.CodeConflict},
		{"foreign key", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503"}), apperror.CodeConflict},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "stocks_quantity_check"}, apperror.CodeBadRequest},
		{"other pg", &pgconn.PgError{Code: "42P01"}, apperror.CodeInternal},
		{"plain", errors.New("connection reset"), apperror.CodeInternal},
		{"app error passes", apperror.NewNotFound("product", "x"), apperror.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err, "product", "insert")
			appErr, ok := apperror.AsAppError(mapped)
			if assert.True(t, ok) {
				assert.Equal(t, tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestMapError_KeepsCause(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	mapped := MapError(cause, "user", "insert")

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(mapped, &pgErr))
	assert.True(t, apperror.IsConflict(mapped))
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, MapError(nil, "product", "insert"))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("x")))
}
