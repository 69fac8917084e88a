package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forumkit/core/activity"
	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/core/identity"
	"github.com/dmitrymomot/forumkit/core/idle"
	"github.com/dmitrymomot/forumkit/core/presence"
	"github.com/dmitrymomot/forumkit/core/reqctx"
	"github.com/dmitrymomot/forumkit/core/session"
	"github.com/dmitrymomot/forumkit/middleware"
)

// forumChain bundles the full middleware stack with its backing stores, the
// way an application wires it.
type forumChain struct {
	sessions      *session.MemoryStore
	manager       *session.Manager
	bans          *stubBans
	users         *stubUsers
	presenceStore *presence.MemoryStore
	tracker       *presence.Tracker
	activityStore *activity.MemoryStore
	middlewares   []handler.Middleware[*reqctx.Context]
}

func newForumChain(users ...identity.Principal) *forumChain {
	c := &forumChain{
		sessions:      session.NewMemoryStore(),
		bans:          newStubBans(),
		users:         newStubUsers(users...),
		presenceStore: presence.NewMemoryStore(),
		activityStore: activity.NewMemoryStore(),
	}
	c.manager = session.NewManager(c.sessions)
	c.tracker = presence.NewTracker(c.presenceStore)
	gate := identity.NewGate(c.bans)
	recorder := activity.NewRecorder(c.activityStore)

	c.middlewares = []handler.Middleware[*reqctx.Context]{
		middleware.RealIP[*reqctx.Context](),
		middleware.Session[*reqctx.Context](c.manager),
		middleware.IdentityWithConfig[*reqctx.Context](middleware.IdentityConfig[*reqctx.Context]{
			Gate:    gate,
			Users:   c.users,
			Tracker: c.tracker,
		}),
		middleware.Presence[*reqctx.Context](c.tracker),
		middleware.IdleTimeout[*reqctx.Context](idle.NewEnforcer()),
		middleware.Activity[*reqctx.Context](recorder),
	}
	return c
}

// login creates a persisted authenticated session and returns a request
// carrying its cookie.
func (c *forumChain) login(t *testing.T, userID uuid.UUID) *http.Request {
	t.Helper()
	return authedRequest(t, c.manager, userID)
}

func TestFullChain(t *testing.T) {
	t.Parallel()

	t.Run("authenticated request flows through every layer", func(t *testing.T) {
		t.Parallel()

		user := identity.Principal{ID: uuid.New(), Username: "alice"}
		chain := newForumChain(user)

		start := time.Now().Add(-2 * time.Hour)
		require.NoError(t, chain.activityStore.Save(context.Background(), user.ID,
			activity.Log{{Start: &start, End: &start}}))

		req := chain.login(t, user.ID)
		req.Header.Set("X-Forwarded-For", "203.0.113.9")

		var seenIP string
		var seenPrincipal identity.Principal
		endpoint := func(ctx *reqctx.Context) handler.Response {
			seenIP, _ = middleware.GetRealIP(ctx)
			seenPrincipal = middleware.GetPrincipal(ctx)
			return okEndpoint(ctx)
		}

		w := serve(t, chain.middlewares, endpoint, req)
		assert.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "203.0.113.9", seenIP)
		assert.Equal(t, user, seenPrincipal)

		// Presence record exists.
		rec, err := chain.presenceStore.Get(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, rec.UserID)

		// Activity log got an open touch appended.
		log, err := chain.activityStore.Fetch(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.True(t, log[1].IsOpen())

		// Session carries a fresh last-request stamp.
		cookie, err := req.Cookie(middleware.DefaultSessionCookie)
		require.NoError(t, err)
		saved, err := chain.sessions.GetByToken(context.Background(), cookie.Value)
		require.NoError(t, err)
		_, ok := saved.Value(idle.KeyLastRequest)
		assert.True(t, ok)
	})

	t.Run("ban takes the user offline in one request", func(t *testing.T) {
		t.Parallel()

		user := identity.Principal{ID: uuid.New(), Username: "bob"}
		chain := newForumChain(user)

		// First request: user is online.
		serve(t, chain.middlewares, okEndpoint, chain.login(t, user.ID))
		_, err := chain.presenceStore.Get(context.Background(), user.ID)
		require.NoError(t, err)

		// Ban lands between requests.
		chain.bans.banUser(user.ID)

		req := chain.login(t, user.ID)
		var seenPrincipal identity.Principal
		endpoint := func(ctx *reqctx.Context) handler.Response {
			seenPrincipal = middleware.GetPrincipal(ctx)
			return okEndpoint(ctx)
		}
		serve(t, chain.middlewares, endpoint, req)

		assert.True(t, seenPrincipal.IsAnonymous())

		// Presence record removed, session gone.
		_, err = chain.presenceStore.Get(context.Background(), user.ID)
		assert.ErrorIs(t, err, presence.ErrNotFound)

		cookie, err := req.Cookie(middleware.DefaultSessionCookie)
		require.NoError(t, err)
		_, err = chain.sessions.GetByToken(context.Background(), cookie.Value)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("idle timeout takes the user offline in one request", func(t *testing.T) {
		t.Parallel()

		user := identity.Principal{ID: uuid.New(), Username: "carol"}
		chain := newForumChain(user)

		sess, err := chain.manager.Load(context.Background(), "", session.NewSessionParams{})
		require.NoError(t, err)
		require.NoError(t, sess.Authenticate(user.ID))
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(time.Now().Add(-10*time.Minute)))
		require.NoError(t, chain.manager.Store(context.Background(), sess))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.DefaultSessionCookie, Value: sess.Token})

		w := serve(t, chain.middlewares, okEndpoint, req)

		// The tripping request itself is still served normally.
		assert.Equal(t, http.StatusOK, w.Code)

		// The presence post hook ran after the demotion and removed the record.
		_, err = chain.presenceStore.Get(context.Background(), user.ID)
		assert.ErrorIs(t, err, presence.ErrNotFound)

		// Session deleted; the next request starts anonymous.
		_, err = chain.sessions.GetByToken(context.Background(), sess.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("anonymous browsing leaves no footprint", func(t *testing.T) {
		t.Parallel()

		chain := newForumChain()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := serve(t, chain.middlewares, okEndpoint, req)
		assert.Equal(t, http.StatusOK, w.Code)

		records, err := chain.presenceStore.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("two users tracked independently", func(t *testing.T) {
		t.Parallel()

		alice := identity.Principal{ID: uuid.New(), Username: "alice"}
		bob := identity.Principal{ID: uuid.New(), Username: "bob"}
		chain := newForumChain(alice, bob)

		serve(t, chain.middlewares, okEndpoint, chain.login(t, alice.ID))
		serve(t, chain.middlewares, okEndpoint, chain.login(t, bob.ID))

		records, err := chain.presenceStore.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
