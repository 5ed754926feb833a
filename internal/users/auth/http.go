// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	requestutil "github.com/taibuivan/churchwallet/internal/platform/request"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	service      *Service
	secureCookie bool
}

// NewHandler constructs a new [Handler]. secureCookie marks the refresh
// cookie Secure (disable only for plain-HTTP development).
func NewHandler(service *Service, secureCookie bool) *Handler {
	return &Handler{service: service, secureCookie: secureCookie}
}

/*
Routes returns a [chi.Router] configured with authentication routes.

Endpoints:
  - POST /login           : Exchange credentials for a token pair
  - POST /refresh         : Rotate a refresh token
  - POST /logout          : Revoke a refresh token
  - GET  /me              : Current profile (authenticated)
  - POST /change-password : Replace the password (authenticated)
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticated)
		r.Get("/me", handler.me)
		r.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

/*
login authenticates a user and establishes a session.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (login, password, role?)

Response:
  - 200: Session (tokens + user), refresh cookie set
  - 400: Validation failure
  - 401: Invalid credentials, role mismatch, or disabled account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, payload.Login).Required(FieldPassword, payload.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := LoginInput{Login: payload.Login, Password: payload.Password}
	if payload.Role != "" {
		role, ok := sec.ParseRole(payload.Role)
		if !ok {
			respond.Error(writer, request, validate.RequiredError(FieldRole, "Must be one of the platform roles"))
			return
		}
		input.Role = &role
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)
	respond.OK(writer, session)
}

/*
refresh rotates the refresh token and issues a new pair.

POST /api/v1/auth/refresh

Request:
  - Body (optional): {"refreshToken": "..."}; otherwise the refresh cookie

Response:
  - 200: Session
  - 401: Missing, invalid, expired, or already spent refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	raw, err := handler.presentedRefreshToken(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if raw == "" {
		respond.Error(writer, request, apperr.Unauthenticated("Missing refresh token"))
		return
	}

	session, err := handler.service.Refresh(request.Context(), raw)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)
	respond.OK(writer, session)
}

/*
logout revokes the presented refresh token and clears the cookie.

POST /api/v1/auth/logout

Response:
  - 204: Always, unless Redis is unavailable
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	raw, err := handler.presentedRefreshToken(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), raw); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearRefreshCookie(writer)
	respond.NoContent(writer)
}

/*
me returns the authenticated profile.

GET /api/v1/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Me(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
changePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Request:
  - Body: changePasswordRequest (currentPassword, newPassword)

Response:
  - 200: Confirmation message
  - 400: Wrong current password or weak new password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), identity.UserID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Password changed successfully"})
}

// # Cookie Helpers

// presentedRefreshToken reads the token from the JSON body when one is sent,
// falling back to the refresh cookie.
func (handler *Handler) presentedRefreshToken(writer http.ResponseWriter, request *http.Request) (string, error) {
	if request.ContentLength != 0 && request.Body != nil && request.Body != http.NoBody {
		var payload refreshRequest
		if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
			return "", err
		}
		if payload.RefreshToken != "" {
			return payload.RefreshToken, nil
		}
	}

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		return cookie.Value, nil
	}
	return "", nil
}

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    value,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		Secure:   handler.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (handler *Handler) clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
