package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, email := range []string{"alice@x.com", "bob@y.org", "c@z.io"} {
		reg, err := f.auth.RegisterUser(ctx, email, "pw-"+email, "")
		require.NoError(t, err)

		login, err := f.auth.Login(ctx, email, "pw-"+email)
		require.NoError(t, err)

		regID, err := f.tokens.Verify(reg.Token)
		require.NoError(t, err)
		loginID, err := f.tokens.Verify(login.Token)
		require.NoError(t, err)

		assert.Equal(t, reg.UserID, regID.UserID)
		assert.Equal(t, regID.UserID, loginID.UserID)
		assert.Equal(t, domain.RoleUser, loginID.Role)
		assert.Equal(t, f.now.Add(8*time.Hour), login.ExpiresAt)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.RegisterUser(ctx, "alice@x.com", "pw123", "")
	require.NoError(t, err)

	_, err = f.auth.RegisterUser(ctx, "alice@x.com", "different", domain.RoleAdmin)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict), err)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.RegisterUser(ctx, "", "pw", "")
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	_, err = f.auth.RegisterUser(ctx, "   ", "pw", "")
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	_, err = f.auth.RegisterUser(ctx, "a@x.com", "", "")
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	_, err = f.auth.RegisterUser(ctx, "a@x.com", "pw", "superuser")
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestRegisterWithRole(t *testing.T) {
	f := newFixture(t)
	identity := f.register(t, "agent@x.com", domain.RoleAgent)
	assert.Equal(t, domain.RoleAgent, identity.Role)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice@x.com", "")

	_, err := f.auth.Login(ctx, "alice@x.com", "wrong")
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))

	_, err = f.auth.Login(ctx, "alice@x.com", "")
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))

	_, err = f.auth.Login(ctx, "nobody@x.com", "pw123")
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))

	_, err = f.auth.Login(ctx, "", "")
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestRegisterAndLoginLongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	password := strings.Repeat("p", 80)

	reg, err := f.auth.RegisterUser(ctx, "long@x.com", password, "")
	require.NoError(t, err)

	login, err := f.auth.Login(ctx, "long@x.com", password)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	_, err = f.auth.Login(ctx, "long@x.com", password[:72])
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const attempts = 20

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.auth.RegisterUser(ctx, "race@x.com", "pw123", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case apperrors.Is(err, apperrors.CodeConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	_, err := f.auth.Login(ctx, "race@x.com", "pw123")
	assert.NoError(t, err)
}
