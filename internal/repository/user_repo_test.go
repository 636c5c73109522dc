package repository

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"clientportal/internal/apperr"
)

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "projects_client_id_fkey"}

	assert.True(t, isForeignKeyViolation(fkErr))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("exec failed: %w", fkErr)))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("connection refused")))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestDeleteConflictRendersAsConflict(t *testing.T) {
	err := apperr.Conflict("User has linked records and cannot be deleted")

	assert.Equal(t, http.StatusConflict, apperr.Status(err))
	assert.Equal(t, "User has linked records and cannot be deleted", apperr.Message(err))
}
