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

	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/core/identity"
	"github.com/dmitrymomot/forumkit/core/idle"
	"github.com/dmitrymomot/forumkit/core/reqctx"
	"github.com/dmitrymomot/forumkit/core/session"
	"github.com/dmitrymomot/forumkit/middleware"
)

func TestIdleTimeoutMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("active session is stamped and kept", func(t *testing.T) {
		t.Parallel()

		user := identity.Principal{ID: uuid.New(), Username: "alice"}
		store := session.NewMemoryStore()
		mgr := session.NewManager(store)
		gate := identity.NewGate(newStubBans())

		req := authedRequest(t, mgr, user.ID)

		serve(t, []handler.Middleware[*reqctx.Context]{
			middleware.Session[*reqctx.Context](mgr),
			middleware.Identity[*reqctx.Context](gate, newStubUsers(user)),
			middleware.IdleTimeout[*reqctx.Context](idle.NewEnforcer()),
		}, okEndpoint, req)

		cookie, err := req.Cookie(middleware.DefaultSessionCookie)
		require.NoError(t, err)
		saved, err := store.GetByToken(context.Background(), cookie.Value)
		require.NoError(t, err)

		assert.True(t, saved.IsAuthenticated())
		_, ok := saved.Value(idle.KeyLastRequest)
		assert.True(t, ok)
	})

	t.Run("idle session is logged out", func(t *testing.T) {
		t.Parallel()

		user := identity.Principal{ID: uuid.New(), Username: "bob"}
		store := session.NewMemoryStore()
		mgr := session.NewManager(store)
		gate := identity.NewGate(newStubBans())

		sess, err := mgr.Load(context.Background(), "", session.NewSessionParams{})
		require.NoError(t, err)
		require.NoError(t, sess.Authenticate(user.ID))
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(time.Now().Add(-5*time.Minute)))
		require.NoError(t, mgr.Store(context.Background(), sess))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.DefaultSessionCookie, Value: sess.Token})

		var principalAfter identity.Principal
		probe := func(next handler.HandlerFunc[*reqctx.Context]) handler.HandlerFunc[*reqctx.Context] {
			return func(ctx *reqctx.Context) handler.Response {
				resp := next(ctx)
				principalAfter = middleware.GetPrincipal(ctx)
				return resp
			}
		}

		serve(t, []handler.Middleware[*reqctx.Context]{
			middleware.Session[*reqctx.Context](mgr),
			middleware.Identity[*reqctx.Context](gate, newStubUsers(user)),
			probe,
			middleware.IdleTimeout[*reqctx.Context](idle.NewEnforcer()),
		}, okEndpoint, req)

		assert.True(t, principalAfter.IsAnonymous())

		_, err = store.GetByToken(context.Background(), sess.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("request that trips the timeout is still served", func(t *testing.T) {
		t.Parallel()

		user := identity.Principal{ID: uuid.New(), Username: "carol"}
		mgr := session.NewManager(session.NewMemoryStore())
		gate := identity.NewGate(newStubBans())

		sess, err := mgr.Load(context.Background(), "", session.NewSessionParams{})
		require.NoError(t, err)
		require.NoError(t, sess.Authenticate(user.ID))
		sess.SetValue(idle.KeyLastRequest, idle.FormatTimestamp(time.Now().Add(-5*time.Minute)))
		require.NoError(t, mgr.Store(context.Background(), sess))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.DefaultSessionCookie, Value: sess.Token})

		var principalDuring identity.Principal
		endpoint := func(ctx *reqctx.Context) handler.Response {
			principalDuring = middleware.GetPrincipal(ctx)
			return okEndpoint(ctx)
		}

		w := serve(t, []handler.Middleware[*reqctx.Context]{
			middleware.Session[*reqctx.Context](mgr),
			middleware.Identity[*reqctx.Context](gate, newStubUsers(user)),
			middleware.IdleTimeout[*reqctx.Context](idle.NewEnforcer()),
		}, endpoint, req)

		// Enforcement happens after the handler, so this request still saw
		// the authenticated principal and a normal response.
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user, principalDuring)
	})
}
