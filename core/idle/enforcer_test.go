package idle_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forumkit/core/idle"
	"github.com/dmitrymomot/forumkit/core/session"
)

func authenticatedSession(t *testing.T) *session.Session {
	t.Helper()

	sess, err := session.New(session.NewSessionParams{}, time.Hour)
	require.NoError(t, err)
	require.NoError(t, sess.Authenticate(uuid.New()))
	return &sess
}

func TestEnforcer_Enforce(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first request stamps without logout", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(idle.WithClock(func() time.Time { return now }))
		sess := authenticatedSession(t)

		forced := enf.Enforce(context.Background(), sess)

		assert.False(t, forced)
		assert.True(t, sess.IsAuthenticated())
		stamp, ok := sess.Value(idle.KeyLastRequest)
		require.True(t, ok)
		assert.Equal(t, idle.FormatTimestamp(now), stamp)
	})

	t.Run("activity within threshold keeps session", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(idle.WithClock(func() time.Time { return now }))
		sess := authenticatedSession(t)
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(now.Add(-30*time.Second)))

		forced := enf.Enforce(context.Background(), sess)

		assert.False(t, forced)
		assert.True(t, sess.IsAuthenticated())
		stamp, _ := sess.Value(idle.KeyLastRequest)
		assert.Equal(t, idle.FormatTimestamp(now), stamp)
	})

	t.Run("idle past threshold forces logout", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(idle.WithClock(func() time.Time { return now }))
		sess := authenticatedSession(t)
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(now.Add(-91*time.Second)))

		forced := enf.Enforce(context.Background(), sess)

		assert.True(t, forced)
		assert.True(t, sess.IsDeleted())
		flag, ok := sess.Value(idle.KeyAutoLogout)
		require.True(t, ok)
		assert.Equal(t, "true", flag)
	})

	t.Run("exactly at threshold keeps session", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(idle.WithClock(func() time.Time { return now }))
		sess := authenticatedSession(t)
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(now.Add(-idle.DefaultThreshold)))

		forced := enf.Enforce(context.Background(), sess)

		assert.False(t, forced)
		assert.True(t, sess.IsAuthenticated())
	})

	t.Run("idle longer than a day still logs out", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(idle.WithClock(func() time.Time { return now }))
		sess := authenticatedSession(t)
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(now.Add(-25*time.Hour)))

		forced := enf.Enforce(context.Background(), sess)

		assert.True(t, forced)
		assert.True(t, sess.IsDeleted())
	})

	t.Run("unparseable stamp is replaced not punished", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(idle.WithClock(func() time.Time { return now }))
		sess := authenticatedSession(t)
		sess.SetValue(idle.KeyLastRequest, "corrupted")

		forced := enf.Enforce(context.Background(), sess)

		assert.False(t, forced)
		assert.True(t, sess.IsAuthenticated())
		stamp, _ := sess.Value(idle.KeyLastRequest)
		assert.Equal(t, idle.FormatTimestamp(now), stamp)
	})

	t.Run("anonymous session has stale stamp removed", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(idle.WithClock(func() time.Time { return now }))
		sess, err := session.New(session.NewSessionParams{}, time.Hour)
		require.NoError(t, err)
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(now))

		forced := enf.Enforce(context.Background(), &sess)

		assert.False(t, forced)
		_, ok := sess.Value(idle.KeyLastRequest)
		assert.False(t, ok)
	})

	t.Run("custom threshold", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer(
			idle.WithClock(func() time.Time { return now }),
			idle.WithThreshold(5*time.Minute),
		)
		sess := authenticatedSession(t)
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(now.Add(-2*time.Minute)))

		forced := enf.Enforce(context.Background(), sess)

		assert.False(t, forced)
		assert.True(t, sess.IsAuthenticated())
	})

	t.Run("nil session is a no-op", func(t *testing.T) {
		t.Parallel()

		enf := idle.NewEnforcer()
		assert.False(t, enf.Enforce(context.Background(), nil))
	})
}
