package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"crmstock/internal/records"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *SQLiteStore) {
	t.Helper()
	s := OpenTestStore(t)
	a := NewAuthenticator(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.cost = bcrypt.MinCost // keep test runs fast
	return a, s
}

func TestBootstrapDefaultAccountIsIdempotent(t *testing.T) {
	ctx := context.Background()
	a, s := newTestAuthenticator(t)

	require.NoError(t, a.BootstrapDefaultAccount(ctx, DefaultAdminUser, DefaultAdminPass))
	require.NoError(t, a.BootstrapDefaultAccount(ctx, DefaultAdminUser, DefaultAdminPass))

	var n int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM accounts WHERE username = ?`, DefaultAdminUser).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBootstrapDoesNotOverwriteExistingHash(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)

	require.NoError(t, a.BootstrapDefaultAccount(ctx, "admin", "first"))
	require.NoError(t, a.BootstrapDefaultAccount(ctx, "admin", "second"))

	// The original secret must still verify.
	require.NoError(t, a.Verify(ctx, "admin", "first"))
	assert.ErrorIs(t, a.Verify(ctx, "admin", "second"), records.ErrBadCredentials)
}

func TestVerifyDefaultCredentials(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)
	require.NoError(t, a.BootstrapDefaultAccount(ctx, DefaultAdminUser, DefaultAdminPass))

	assert.NoError(t, a.Verify(ctx, "admin", "1234"))
}

// Unknown user and wrong secret are the same rejection signal.
func TestVerifyRejectionsAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)
	require.NoError(t, a.BootstrapDefaultAccount(ctx, DefaultAdminUser, DefaultAdminPass))

	wrongSecret := a.Verify(ctx, "admin", "wrong")
	unknownUser := a.Verify(ctx, "nouser", "anything")

	assert.ErrorIs(t, wrongSecret, records.ErrBadCredentials)
	assert.ErrorIs(t, unknownUser, records.ErrBadCredentials)
	assert.Equal(t, wrongSecret, unknownUser)
}

func TestVerifyMissingFieldsFailFast(t *testing.T) {
	ctx := context.Background()
	a, s := newTestAuthenticator(t)

	// No bootstrap on purpose: validation must fire before any store access,
	// so close the database underneath and expect no store error.
	require.NoError(t, s.DB.Close())

	var validation *records.ValidationError
	assert.ErrorAs(t, a.Verify(ctx, "", "secret"), &validation)
	assert.ErrorAs(t, a.Verify(ctx, "admin", ""), &validation)
}

func TestUsernameIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)
	require.NoError(t, a.BootstrapDefaultAccount(ctx, "admin", "1234"))

	assert.ErrorIs(t, a.Verify(ctx, "Admin", "1234"), records.ErrBadCredentials)
}
