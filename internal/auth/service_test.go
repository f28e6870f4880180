package auth

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bibliosmart/bibliosmart/internal/config"
	"github.com/bibliosmart/bibliosmart/internal/storage"
)

func setupAuthService(t *testing.T) (*Service, func()) {
	t.Helper()

	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := storage.NewDatabase(dbPath)
	require.NoError(t, err)

	service := NewService(db.DB, config.Auth{
		Mode:       config.AuthModeLocal,
		BcryptCost: bcrypt.MinCost,
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return service, cleanup
}

func TestCreateOperatorAndAuthenticate(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	has, err := service.HasOperators()
	require.NoError(t, err)
	assert.False(t, has)

	operator, err := service.CreateOperator("librarian", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, "librarian", operator.Username)
	assert.NotEqual(t, "a-long-enough-password", operator.PasswordHash)

	has, err = service.HasOperators()
	require.NoError(t, err)
	assert.True(t, has)

	got, err := service.Authenticate("librarian", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, operator.ID, got.ID)
}

func TestAuthenticate_Failures(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.CreateOperator("librarian", "a-long-enough-password")
	require.NoError(t, err)

	_, err = service.Authenticate("librarian", "wrong-password-guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown usernames fail with the same error as wrong passwords
	_, err = service.Authenticate("nobody", "a-long-enough-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateOperator_Validation(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.CreateOperator("  ", "a-long-enough-password")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = service.CreateOperator("librarian", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = service.CreateOperator("librarian", "a-long-enough-password")
	require.NoError(t, err)
	_, err = service.CreateOperator("librarian", "a-long-enough-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
