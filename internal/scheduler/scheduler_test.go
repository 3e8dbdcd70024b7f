package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artilectsolutions/budgetsplit-backend/internal/repository"
	"github.com/artilectsolutions/budgetsplit-backend/internal/testutil"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunOnce(t *testing.T) {
	t.Run("runs tasks in order and survives failures", func(t *testing.T) {
		s := New("@every 1h", discard())

		var order []string
		s.Add("first", func(context.Context) error {
			order = append(order, "first")
			return errors.New("boom")
		})
		s.Add("second", func(context.Context) error {
			order = append(order, "second")
			return nil
		})

		s.RunOnce(context.Background())

		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		s := New("@every 1h", discard())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		s.Add("task", func(context.Context) error {
			called = true
			return nil
		})

		s.RunOnce(ctx)

		assert.False(t, called)
	})
}

func TestScheduler_Start(t *testing.T) {
	t.Run("rejects invalid spec", func(t *testing.T) {
		s := New("every tuesday-ish", discard())

		assert.Error(t, s.Start(context.Background()))
	})

	t.Run("starts and stops", func(t *testing.T) {
		s := New("@every 1h", discard())
		done := make(chan struct{})
		s.Add("signal", func(context.Context) error {
			close(done)
			return nil
		})

		require.NoError(t, s.Start(context.Background()))
		<-done
		s.Stop()
	})
}

// TestScheduler_PurgesRevokedTokens wires the purge task the server registers.
func TestScheduler_PurgesRevokedTokens(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	auth := testutil.NewTestAuthService(t, db)
	user := testutil.CreateUser(t, db)

	session, err := auth.SignIn(ctx, user.Email, testutil.TestPassword)
	require.NoError(t, err)
	claims, err := auth.ParseToken(ctx, session.Token)
	require.NoError(t, err)

	claims.ExpiresAt = claims.IssuedAt.Add(-1)
	require.NoError(t, auth.Logout(ctx, claims))

	s := New("@every 1h", discard())
	s.Add("purge revoked tokens", func(ctx context.Context) error {
		_, err := auth.PurgeRevoked(ctx)
		return err
	})
	s.RunOnce(ctx)

	revoked, err := repository.NewRevokedTokenRepository(db).IsTokenRevoked(ctx, claims.TokenID)
	require.NoError(t, err)
	assert.False(t, revoked)
}
