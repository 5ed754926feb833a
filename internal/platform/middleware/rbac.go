// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/ctxutil"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

// # Denial Reporting

type observerKey struct{}

// ObserveDenials installs observe for every guard further down the chain.
// The callback receives one of the metrics.Denial* reasons.
func ObserveDenials(observe func(reason string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := context.WithValue(request.Context(), observerKey{}, observe)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func reportDenial(ctx context.Context, reason string) {
	if observe, ok := ctx.Value(observerKey{}).(func(string)); ok && observe != nil {
		observe(reason)
	}
}

func reject(writer http.ResponseWriter, request *http.Request, reason string, err *apperr.AppError) {
	reportDenial(request.Context(), reason)
	respond.Error(writer, request, err)
}

// deny maps a sec policy outcome to the HTTP response.
func deny(writer http.ResponseWriter, request *http.Request, err error, forbiddenReason string) {
	if errors.Is(err, sec.ErrUnauthenticated) {
		reject(writer, request, metrics.DenialUnauthenticated, apperr.Unauthenticated("Authentication required"))
		return
	}
	reject(writer, request, forbiddenReason, apperr.Forbidden("Insufficient permissions"))
}

// # Role Guards

/*
Authorize blocks requests whose identity role is not in roles.

Must be registered AFTER [Authenticate]. Anonymous requests get 401, a role
outside the set gets 403.
*/
func Authorize(roles ...sec.Role) func(http.Handler) http.Handler {
	allowed := sec.NewRoleSet(roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if err := sec.CheckRoles(ctxutil.GetIdentity(request.Context()), allowed); err != nil {
				deny(writer, request, err, metrics.DenialRole)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// Authenticated admits any signed-in role.
func Authenticated(next http.Handler) http.Handler {
	return Authorize(sec.AllRoles...)(next)
}

// IsSuperAdmin admits only super_admin.
func IsSuperAdmin(next http.Handler) http.Handler {
	return Authorize(sec.RoleSuperAdmin)(next)
}

// IsAdmin admits super_admin and unit_admin.
//
// church_admin and kudumbakutayima_admin are deliberately outside this set;
// routes that need them list roles explicitly through [Authorize].
func IsAdmin(next http.Handler) http.Handler {
	return Authorize(sec.RoleSuperAdmin, sec.RoleUnitAdmin)(next)
}

// # Ownership Guards

/*
RequireOwnership checks that the identity owns the resource named by the
scope's identifier.

The target is resolved from the route parameter first (churchId, unitId, ...)
and otherwise from the same-named top-level JSON body field, which may be a
string or a number. The body is restored for the handler.
*/
func RequireOwnership(scope sec.Scope) func(http.Handler) http.Handler {
	field := scope.Field()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())
			if identity == nil {
				deny(writer, request, sec.ErrUnauthenticated, metrics.DenialOwnership)
				return
			}

			target := chi.URLParam(request, field)
			if target == "" && !identity.IsSuperAdmin() {
				var err error
				if target, err = bodyField(request, field); err != nil {
					respond.Error(writer, request, err)
					return
				}
			}

			if err := sec.CheckOwnership(identity, scope, target); err != nil {
				deny(writer, request, err, metrics.DenialOwnership)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireChurchOwnership is [RequireOwnership] for churchId.
func RequireChurchOwnership(next http.Handler) http.Handler {
	return RequireOwnership(sec.ScopeChurch)(next)
}

// RequireUnitOwnership is [RequireOwnership] for unitId.
func RequireUnitOwnership(next http.Handler) http.Handler {
	return RequireOwnership(sec.ScopeUnit)(next)
}

// RequireKudumbakutayimaOwnership is [RequireOwnership] for kudumbakutayimaId.
func RequireKudumbakutayimaOwnership(next http.Handler) http.Handler {
	return RequireOwnership(sec.ScopeKudumbakutayima)(next)
}

// RequireMemberOwnership is [RequireOwnership] for memberId.
func RequireMemberOwnership(next http.Handler) http.Handler {
	return RequireOwnership(sec.ScopeMember)(next)
}

// bodyField peeks at a JSON body for field and restores request.Body.
// A missing, empty or non-JSON body yields "" with no error.
func bodyField(request *http.Request, field string) (string, error) {
	if request.Body == nil || request.Body == http.NoBody {
		return "", nil
	}

	buffered, err := io.ReadAll(io.LimitReader(request.Body, constants.MaxOwnershipBodySize+1))
	_ = request.Body.Close()
	if err != nil {
		return "", apperr.ValidationError("Request body could not be read")
	}
	if len(buffered) > constants.MaxOwnershipBodySize {
		return "", apperr.ValidationError("Request body is too large")
	}
	request.Body = io.NopCloser(bytes.NewReader(buffered))

	decoder := json.NewDecoder(bytes.NewReader(buffered))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return "", nil
	}

	switch value := fields[field].(type) {
	case string:
		return value, nil
	case json.Number:
		return value.String(), nil
	default:
		return "", nil
	}
}
