package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
	"github.com/artilectsolutions/budgetsplit-backend/internal/testutil"
)

func TestShareService(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves link to the job breakdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestShareService(t, db)
		user := testutil.CreateUser(t, db)
		job := testutil.CreateJob(t, db, user.ID, "Shared Project")

		link, err := svc.CreateShareLink(ctx, user.ID, job.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, link.Token)

		expires, err := time.Parse(time.RFC3339, link.ExpiresAt)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

		b, err := svc.ResolveShareLink(ctx, link.Token)
		require.NoError(t, err)
		assert.Equal(t, job.ID, b.JobID)
		assert.Equal(t, "Shared Project", b.ProjectName)
	})

	t.Run("refuses to share another user's job", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestShareService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		job := testutil.CreateJob(t, db, owner.ID, "Private")

		_, err := svc.CreateShareLink(ctx, other.ID, job.ID)
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestShareService(t, db)
		user := testutil.CreateUser(t, db)
		job := testutil.CreateJob(t, db, user.ID, "Shared")

		link, err := svc.CreateShareLink(ctx, user.ID, job.ID)
		require.NoError(t, err)

		tampered := []byte(link.Token)
		last := len(tampered) - 5
		if tampered[last] == 'A' {
			tampered[last] = 'B'
		} else {
			tampered[last] = 'A'
		}

		_, err = svc.ResolveShareLink(ctx, string(tampered))
		assert.ErrorIs(t, err, apperrors.ErrInvalidShareToken)

		_, err = svc.ResolveShareLink(ctx, "garbage")
		assert.ErrorIs(t, err, apperrors.ErrInvalidShareToken)
	})

	t.Run("rejects token sealed with another key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		job := testutil.CreateJob(t, db, user.ID, "Shared")

		first := testutil.NewTestShareService(t, db)
		second := testutil.NewTestShareService(t, db)

		link, err := first.CreateShareLink(ctx, user.ID, job.ID)
		require.NoError(t, err)

		_, err = second.ResolveShareLink(ctx, link.Token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidShareToken)
	})

	t.Run("configured key survives restarts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		job := testutil.CreateJob(t, db, user.ID, "Shared")

		var k fernet.Key
		require.NoError(t, k.Generate())
		encoded := k.Encode()

		first, err := service.NewShareService(encoded, time.Hour, testutil.NewTestJobService(t, db))
		require.NoError(t, err)
		second, err := service.NewShareService(encoded, time.Hour, testutil.NewTestJobService(t, db))
		require.NoError(t, err)

		link, err := first.CreateShareLink(ctx, user.ID, job.ID)
		require.NoError(t, err)

		b, err := second.ResolveShareLink(ctx, link.Token)
		require.NoError(t, err)
		assert.Equal(t, job.ID, b.JobID)
	})

	t.Run("link to a deleted job resolves to not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestShareService(t, db)
		jobs := testutil.NewTestJobService(t, db)
		user := testutil.CreateUser(t, db)
		job := testutil.CreateJob(t, db, user.ID, "Shared")

		link, err := svc.CreateShareLink(ctx, user.ID, job.ID)
		require.NoError(t, err)
		require.NoError(t, jobs.DeleteJob(ctx, user.ID, job.ID))

		_, err = svc.ResolveShareLink(ctx, link.Token)
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		_, err := service.NewShareService("not-a-key", time.Hour, nil)
		assert.Error(t, err)
	})
}
