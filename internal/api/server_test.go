// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/churchwallet/internal/core/church"
	"github.com/taibuivan/churchwallet/internal/core/kudumbakutayima"
	"github.com/taibuivan/churchwallet/internal/core/member"
	"github.com/taibuivan/churchwallet/internal/core/unit"
	"github.com/taibuivan/churchwallet/internal/finance/campaign"
	"github.com/taibuivan/churchwallet/internal/finance/dues"
	"github.com/taibuivan/churchwallet/internal/finance/transaction"
	"github.com/taibuivan/churchwallet/internal/platform/config"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/users/account"
	"github.com/taibuivan/churchwallet/internal/users/auth"
)

const memberToken = "member-token"

// stubTokens accepts exactly memberToken.
type stubTokens struct{}

func (stubTokens) VerifyAccessToken(raw string) (sec.Subject, bool) {
	if raw != memberToken {
		return sec.Subject{}, false
	}
	return sec.Subject{UserID: "u-member", TokenID: "jti"}, true
}

type stubIdentities struct{}

func (stubIdentities) ResolveIdentity(_ context.Context, userID sec.UserID) (*sec.Identity, error) {
	return &sec.Identity{UserID: userID, Role: sec.RoleMember, ChurchID: "c1", MemberID: "m1"}, nil
}

// newTestServer wires every handler over nil repositories. Requests in these
// tests never get past the guards, so no store is ever touched.
func newTestServer(t *testing.T, deps HealthDependencies) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg, err := config.LoadFrom(map[string]string{
		"DATABASE_URL": "postgres://localhost/churchwallet",
		"REDIS_URL":    "redis://localhost:6379/0",
	})
	require.NoError(t, err)

	liveness, readiness := NewHealthHandlers(deps, logger)
	handlers := Handlers{
		Liveness:        liveness,
		Readiness:       readiness,
		Auth:            auth.NewHandler(auth.NewService(nil, nil, nil, nil, logger), false),
		Account:         account.NewHandler(account.NewService(nil, nil, logger)),
		Church:          church.NewHandler(church.NewService(nil, logger)),
		Unit:            unit.NewHandler(unit.NewService(nil, logger)),
		Kudumbakutayima: kudumbakutayima.NewHandler(kudumbakutayima.NewService(nil, logger)),
		Member:          member.NewHandler(member.NewService(nil, logger)),
		Transaction:     transaction.NewHandler(transaction.NewService(nil, logger)),
		Campaign:        campaign.NewHandler(campaign.NewService(nil, logger)),
		Dues:            dues.NewHandler(dues.NewService(nil), dues.NewProcessor(nil, nil, nil, logger, 10)),
	}

	server := NewServer(cfg, logger, Platform{
		Tokens:     stubTokens{},
		Identities: stubIdentities{},
		Limiter:    middleware.NewRateLimiter(1000, 1000),
		Metrics:    metrics.New(),
	}, handlers)

	return server.Handler()
}

func serve(handler http.Handler, method, target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_RouteTree verifies every nested resource is reachable and guarded.
*/
func TestServer_RouteTree(t *testing.T) {
	handler := newTestServer(t, HealthDependencies{})

	tests := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"me_anonymous", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized},
		{"users_anonymous", http.MethodGet, "/api/v1/users", "", http.StatusUnauthorized},
		{"churches_anonymous", http.MethodGet, "/api/v1/churches", "", http.StatusUnauthorized},
		{"churches_bad_token", http.MethodGet, "/api/v1/churches", "forged", http.StatusUnauthorized},
		{"churches_member", http.MethodGet, "/api/v1/churches", memberToken, http.StatusForbidden},
		{"church_units", http.MethodGet, "/api/v1/churches/c1/units", memberToken, http.StatusForbidden},
		{"church_users", http.MethodPost, "/api/v1/churches/c1/users", memberToken, http.StatusForbidden},
		{"church_members", http.MethodGet, "/api/v1/churches/c1/members", memberToken, http.StatusForbidden},
		{"church_transactions", http.MethodGet, "/api/v1/churches/c1/transactions", memberToken, http.StatusForbidden},
		{"church_summary", http.MethodGet, "/api/v1/churches/c1/transactions/summary", memberToken, http.StatusForbidden},
		{"church_dues", http.MethodGet, "/api/v1/churches/c1/dues", memberToken, http.StatusForbidden},
		{"unit_kudumbakutayimas", http.MethodGet, "/api/v1/units/u1/kudumbakutayimas", memberToken, http.StatusForbidden},
		{"unit_members", http.MethodGet, "/api/v1/units/u1/members", memberToken, http.StatusForbidden},
		{"unit_transactions", http.MethodGet, "/api/v1/units/u1/transactions", memberToken, http.StatusForbidden},
		{"kudumbakutayima_members", http.MethodGet, "/api/v1/kudumbakutayimas/k1/members", memberToken, http.StatusForbidden},
		{"other_member_transactions", http.MethodGet, "/api/v1/members/m2/transactions", memberToken, http.StatusForbidden},
		{"other_member_dues", http.MethodGet, "/api/v1/members/m2/dues", memberToken, http.StatusForbidden},
		{"dues_run_member", http.MethodPost, "/api/v1/dues/run", memberToken, http.StatusForbidden},
		{"unknown", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(handler, tt.method, tt.target, tt.token)
			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestReadiness_Degraded verifies a failing dependency turns /ready into 503.
*/
func TestReadiness_Degraded(t *testing.T) {
	handler := newTestServer(t, HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})

	recorder := serve(handler, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

/*
TestReadiness_Ready verifies healthy dependencies answer 200.
*/
func TestReadiness_Ready(t *testing.T) {
	handler := newTestServer(t, HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return nil },
	})

	recorder := serve(handler, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)
}
