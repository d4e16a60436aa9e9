package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/repository"
)

type fixture struct {
	auth    *AuthService
	tickets *TicketService
	tokens  *auth.TokenManager
	now     time.Time
}

func (f *fixture) clock() time.Time { return f.now }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := persistence.OpenDatabase(ctx, config.DatabaseConfig{DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, persistence.RunMigrations(ctx, db, zap.NewNop()))

	policy, err := auth.NewPolicy()
	require.NoError(t, err)

	f := &fixture{now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
	f.tokens = auth.NewTokenManager("test-secret", 8*time.Hour, f.clock)
	f.auth = NewAuthService(repository.NewUserRepository(db.DB), f.tokens, bcrypt.MinCost)
	f.tickets = NewTicketService(TicketDependencies{
		TicketRepo: repository.NewTicketRepository(db.DB),
		Policy:     policy,
		Clock:      f.clock,
	})
	return f
}

// register creates an account and returns the identity decoded from its token.
func (f *fixture) register(t *testing.T, email string, role domain.Role) domain.Identity {
	t.Helper()
	res, err := f.auth.RegisterUser(context.Background(), email, "pw123", role)
	require.NoError(t, err)
	identity, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	return identity
}

func (f *fixture) tick() {
	f.now = f.now.Add(time.Second)
}
