// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/ctxutil"
	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

// # Fakes

type stubVerifier map[string]sec.Subject

func (verifier stubVerifier) VerifyAccessToken(raw string) (sec.Subject, bool) {
	subject, ok := verifier[raw]
	return subject, ok
}

type stubResolver struct {
	identities map[sec.UserID]*sec.Identity
	err        error
}

func (resolver stubResolver) ResolveIdentity(_ context.Context, userID sec.UserID) (*sec.Identity, error) {
	if resolver.err != nil {
		return nil, resolver.err
	}
	return resolver.identities[userID], nil
}

func authRouter(resolver stubResolver) http.Handler {
	verifier := stubVerifier{"good": {UserID: "u1", TokenID: "jti-1"}, "orphan": {UserID: "ghost"}}

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(verifier, resolver))
	router.Get("/whoami", func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			writer.Write([]byte("anonymous"))
			return
		}
		writer.Write([]byte(identity.UserID.String() + "/" + ctxutil.GetAccessTokenID(request.Context())))
	})
	return router
}

/*
TestAuthenticate covers anonymous, malformed, invalid and resolved requests.
*/
func TestAuthenticate(t *testing.T) {
	resolver := stubResolver{identities: map[sec.UserID]*sec.Identity{
		"u1": {UserID: "u1", Role: sec.RoleMember, ChurchID: "C1", MemberID: "M1"},
	}}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"bearer", "Bearer good", http.StatusOK, "u1/jti-1"},
		{"scheme_case_insensitive", "bearer good", http.StatusOK, "u1/jti-1"},
		{"wrong_scheme", "Basic good", http.StatusUnauthorized, ""},
		{"missing_token", "Bearer ", http.StatusUnauthorized, ""},
		{"extra_parts", "Bearer good extra", http.StatusUnauthorized, ""},
		{"invalid_token", "Bearer forged", http.StatusUnauthorized, ""},
		{"unknown_account", "Bearer orphan", http.StatusUnauthorized, ""},
	}

	router := authRouter(resolver)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, recorder.Body.String())
			}
		})
	}
}

/*
TestAuthenticate_ResolverErrors passes app errors through and hides the rest.
*/
func TestAuthenticate_ResolverErrors(t *testing.T) {
	disabled := authRouter(stubResolver{err: apperr.Unauthenticated("Account disabled")})
	broken := authRouter(stubResolver{err: context.DeadlineExceeded})

	for router, want := range map[http.Handler]int{disabled: http.StatusUnauthorized, broken: http.StatusInternalServerError} {
		request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		request.Header.Set("Authorization", "Bearer good")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, want, recorder.Code)
	}
}

/*
TestStructuredLogger_RecordsIdentity checks the finish line carries the user
resolved further down the chain.
*/
func TestStructuredLogger_RecordsIdentity(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	resolver := stubResolver{identities: map[sec.UserID]*sec.Identity{"u1": {UserID: "u1", Role: sec.RoleChurchAdmin}}}
	router := chi.NewRouter()
	router.Use(middleware.RequestID(), middleware.StructuredLogger(logger))
	router.Use(middleware.Authenticate(stubVerifier{"good": {UserID: "u1"}}, resolver))
	router.Get("/", okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")
	request.Header.Set("X-Request-ID", "rid-1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "rid-1", recorder.Header().Get("X-Request-ID"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "http_request_finished", entry["msg"])
	assert.Equal(t, "rid-1", entry["request_id"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "church_admin", entry["role"])
}

/*
TestRequestID_Generated assigns an ID when the client sends none.
*/
func TestRequestID_Generated(t *testing.T) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID())
	router.Get("/", okHandler)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, recorder.Header().Get("X-Request-ID"), 36)
}

/*
TestRateLimiter_Burst rejects once the per-IP bucket is drained.
*/
func TestRateLimiter_Burst(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	handler := limiter.Handler(http.HandlerFunc(okHandler))

	statuses := make([]int, 0, 4)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		statuses = append(statuses, recorder.Code)
	}

	// A different client has its own bucket.
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.2:5000"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	statuses = append(statuses, recorder.Code)

	assert.Equal(t, []int{200, 200, 429, 200}, statuses)
}

/*
TestPanicRecovery answers 500 with the standard envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, recorder.Body.String(), "boom")
}

type corsConfig struct {
	development bool
	origins     []string
}

func (cfg corsConfig) IsDevelopment() bool { return cfg.development }
func (cfg corsConfig) Origins() []string   { return cfg.origins }

/*
TestCORS allows listed origins in production and any origin in development.
*/
func TestCORS(t *testing.T) {
	production := middleware.CORS(corsConfig{origins: []string{"https://app.churchwallet.org"}})(http.HandlerFunc(okHandler))
	development := middleware.CORS(corsConfig{development: true})(http.HandlerFunc(okHandler))

	check := func(handler http.Handler, origin string) string {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Origin", origin)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Header().Get("Access-Control-Allow-Origin")
	}

	assert.Equal(t, "https://app.churchwallet.org", check(production, "https://app.churchwallet.org"))
	assert.Empty(t, check(production, "https://evil.example"))
	assert.Equal(t, "http://localhost:5173", check(development, "http://localhost:5173"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set("Origin", "https://app.churchwallet.org")
	recorder := httptest.NewRecorder()
	production.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}

/*
TestRateLimiter_SpoofedHeaderStillLimited verifies a direct client cannot
escape its bucket by rotating X-Forwarded-For.
*/
func TestRateLimiter_SpoofedHeaderStillLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1)
	handler := limiter.Handler(http.HandlerFunc(okHandler))

	statuses := make([]int, 0, 2)
	for _, spoofed := range []string{"203.0.113.1", "203.0.113.2"} {
		request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		request.RemoteAddr = "192.0.2.10:4000"
		request.Header.Set("X-Forwarded-For", spoofed)
		request.Header.Set("X-Real-IP", spoofed)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		statuses = append(statuses, recorder.Code)
	}

	assert.Equal(t, []int{200, 429}, statuses)
}

/*
TestClientIP_TrustedProxy honours forwarding headers only from trusted peers.
*/
func TestClientIP_TrustedProxy(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	direct := httptest.NewRequest(http.MethodGet, "/", nil)
	direct.RemoteAddr = "192.0.2.1:1234"
	direct.Header.Set("X-Forwarded-For", "203.0.113.5")
	assert.Equal(t, "192.0.2.1", middleware.ClientIP(direct, trusted))

	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.RemoteAddr = "10.1.2.3:1234"
	proxied.Header.Set("X-Forwarded-For", "198.51.100.9, 203.0.113.5, 10.0.0.7")
	assert.Equal(t, "203.0.113.5", middleware.ClientIP(proxied, trusted))

	realIP := httptest.NewRequest(http.MethodGet, "/", nil)
	realIP.RemoteAddr = "10.1.2.3:1234"
	realIP.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.ClientIP(realIP, trusted))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.RemoteAddr = "10.1.2.3:1234"
	assert.Equal(t, "10.1.2.3", middleware.ClientIP(bare, trusted))
}
