// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/ctxutil"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

// AccessVerifier verifies access tokens. It is satisfied by [*sec.TokenService].
type AccessVerifier interface {
	VerifyAccessToken(raw string) (sec.Subject, bool)
}

// IdentityResolver turns a verified token subject into the request identity.
//
// Implementations return an [apperr.CodeUnauthenticated] error for missing or
// disabled accounts; any other error is answered as 500.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID sec.UserID) (*sec.Identity, error)
}

/*
Authenticate extracts and verifies the bearer token from the Authorization header.

Flow:
 1. No header: the request proceeds anonymously (downstream guards answer 401).
 2. Malformed header or failed verification: 401 immediately.
 3. The resolver loads the account behind the token subject.
 4. The resulting [*sec.Identity] and the token jti are stored in the context.

Parameters:
  - verifier: the access token verifier
  - resolver: the identity loader

Returns:
  - An [http.Handler] middleware
*/
func Authenticate(verifier AccessVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)

			// 1. Anonymous access
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format validation
			raw, ok := bearerToken(header)
			if !ok {
				reject(writer, request, metrics.DenialUnauthenticated, apperr.Unauthenticated("Invalid authorization format"))
				return
			}

			// 3. Token verification
			subject, ok := verifier.VerifyAccessToken(raw)
			if !ok {
				reject(writer, request, metrics.DenialUnauthenticated, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			// 4. Identity resolution
			identity, err := resolver.ResolveIdentity(request.Context(), subject.UserID)
			if err != nil {
				if apperr.HasCode(err, apperr.CodeUnauthenticated) {
					reportDenial(request.Context(), metrics.DenialUnauthenticated)
				}
				respond.Error(writer, request, err)
				return
			}
			if identity == nil {
				reject(writer, request, metrics.DenialUnauthenticated, apperr.Unauthenticated("Account not found"))
				return
			}

			// 5. Context injection
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			ctx = ctxutil.WithAccessTokenID(ctx, subject.TokenID)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", identity.UserID.String())))
			if slot := slotFrom(ctx); slot != nil {
				slot.identity = identity
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken splits "Bearer <token>" (scheme is case-insensitive).
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.AuthorizationBearer) {
		return "", false
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
