package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"masar-backend/pkg/apperror"
)

func TestTranslateErr(t *testing.T) {
	t.Run("missing table becomes a schema mismatch", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "profiles" does not exist`}

		err := translateErr(pgErr, "profile")
		assert.True(t, apperror.IsSchemaMismatch(err))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 503, appErr.Code)
		assert.Contains(t, appErr.Message, "profile")
	})

	t.Run("missing column becomes a schema mismatch", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42703", Message: `column "holistic_analysis" does not exist`}

		err := translateErr(pgErr, "profile")
		assert.True(t, apperror.IsSchemaMismatch(err))
	})

	t.Run("unique violation becomes a conflict", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505"}

		err := translateErr(pgErr, "social link")
		assert.False(t, apperror.IsSchemaMismatch(err))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("wrapped pg errors are still classified", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42P01"}
		wrapped := fmt.Errorf("get profile: %w", pgErr)

		assert.True(t, apperror.IsSchemaMismatch(translateErr(wrapped, "profile")))
	})

	t.Run("everything else is an internal error", func(t *testing.T) {
		err := translateErr(errors.New("connection reset"), "profile")
		assert.False(t, apperror.IsSchemaMismatch(err))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Code)
	})
}
