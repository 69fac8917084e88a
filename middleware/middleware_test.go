package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/core/identity"
	"github.com/dmitrymomot/forumkit/core/reqctx"
)

// serve runs a request through the given middleware stack and endpoint.
func serve(t *testing.T, mws []handler.Middleware[*reqctx.Context], endpoint handler.HandlerFunc[*reqctx.Context], req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	h := handler.Chain(mws, endpoint)
	httpHandler := handler.ToHTTP(h, func(w http.ResponseWriter, r *http.Request) *reqctx.Context {
		return reqctx.New(w, r)
	}, func(ctx *reqctx.Context, err error) {
		t.Errorf("unexpected handler error: %v", err)
	})

	w := httptest.NewRecorder()
	httpHandler.ServeHTTP(w, req)
	return w
}

// okEndpoint writes a plain 200 response.
func okEndpoint(ctx *reqctx.Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	}
}

// stubUsers is an in-memory identity.UserSource.
type stubUsers struct {
	mu    sync.RWMutex
	users map[uuid.UUID]identity.Principal
}

func newStubUsers(users ...identity.Principal) *stubUsers {
	s := &stubUsers{users: make(map[uuid.UUID]identity.Principal)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUsers) UserByID(_ context.Context, id uuid.UUID) (identity.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return identity.Principal{}, identity.ErrUserNotFound
	}
	return u, nil
}

// stubBans is a configurable identity.BanService.
type stubBans struct {
	mu          sync.RWMutex
	bannedIPs   map[string]bool
	bannedUsers map[uuid.UUID]bool
	ipErr       error
	userErr     error
}

func newStubBans() *stubBans {
	return &stubBans{
		bannedIPs:   make(map[string]bool),
		bannedUsers: make(map[uuid.UUID]bool),
	}
}

func (s *stubBans) banIP(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bannedIPs[ip] = true
}

func (s *stubBans) banUser(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bannedUsers[id] = true
}

func (s *stubBans) IsIPBanned(_ context.Context, ip string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ipErr != nil {
		return false, s.ipErr
	}
	return s.bannedIPs[ip], nil
}

func (s *stubBans) IsUserBanned(_ context.Context, p identity.Principal, _ map[string]string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userErr != nil {
		return false, s.userErr
	}
	return s.bannedUsers[p.ID], nil
}
