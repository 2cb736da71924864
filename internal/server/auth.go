package server

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"crmstock/internal/records"
)

// Default credentials for the bootstrap account. Overridable from main;
// the frontend this replaced shipped with admin/1234.
const (
	DefaultAdminUser = "admin"
	DefaultAdminPass = "1234"
)

// Authenticator verifies login credentials against stored bcrypt hashes.
// It holds no per-request state; every call is a fresh store round trip.
type Authenticator struct {
	store Store
	log   *slog.Logger
	cost  int
}

func NewAuthenticator(store Store, log *slog.Logger) *Authenticator {
	return &Authenticator{store: store, log: log, cost: bcrypt.DefaultCost}
}

// BootstrapDefaultAccount makes sure exactly one account exists for the
// given username, creating it with a bcrypt hash of pass when absent.
// Safe to run on every startup.
func (a *Authenticator) BootstrapDefaultAccount(ctx context.Context, user, pass string) error {
	existing, err := a.store.GetAccount(ctx, user)
	if err != nil {
		return fmt.Errorf("bootstrap account: %w", err)
	}
	if existing != nil {
		a.log.Debug("default account already present", "username", user)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), a.cost)
	if err != nil {
		return fmt.Errorf("bootstrap account: hash: %w", err)
	}
	if err := a.store.CreateAccount(ctx, user, string(hash)); err != nil {
		return fmt.Errorf("bootstrap account: %w", err)
	}
	a.log.Info("default account created", "username", user)
	return nil
}

// Verify checks a username/secret pair. Unknown username and wrong secret
// both return records.ErrBadCredentials so callers cannot enumerate
// accounts. Hash comparison goes through bcrypt's own verifier, never a
// byte compare.
func (a *Authenticator) Verify(ctx context.Context, username, secret string) error {
	if username == "" || secret == "" {
		return records.ErrValidation("username and password are required")
	}

	acct, err := a.store.GetAccount(ctx, username)
	if err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	if acct == nil {
		return records.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(secret)); err != nil {
		return records.ErrBadCredentials
	}
	return nil
}
