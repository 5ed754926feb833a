// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	requestutil "github.com/taibuivan/churchwallet/internal/platform/request"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements account administration endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes returns the super admin account router, mounted at /users.

Endpoints:
  - POST  /                  : Create an account with any role
  - GET   /                  : List accounts (role, churchId, q)
  - PATCH /{userId}/status   : Enable or disable an account
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.IsSuperAdmin)

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Patch("/{userId}/status", handler.setStatus)

	return router
}

// ChurchRoutes returns the church-scoped account router, mounted at
// /churches/{churchId}/users.
func (handler *Handler) ChurchRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(
		middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin),
		middleware.RequireChurchOwnership,
	)

	router.Post("/", handler.createInChurch)

	return router
}

// # Request Payloads

type createRequest struct {
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	Role              string `json:"role"`
	ChurchID          string `json:"churchId"`
	UnitID            string `json:"unitId"`
	KudumbakutayimaID string `json:"kudumbakutayimaId"`
	MemberID          string `json:"memberId"`
}

func (payload createRequest) input() (CreateInput, error) {
	role, ok := sec.ParseRole(payload.Role)
	if !ok {
		return CreateInput{}, validate.RequiredError(FieldRole, "Must be one of the platform roles")
	}

	return CreateInput{
		Email:    payload.Email,
		Phone:    payload.Phone,
		Password: payload.Password,
		FullName: payload.FullName,
		Role:     role,
		Scopes: Scopes{
			ChurchID:          payload.ChurchID,
			UnitID:            payload.UnitID,
			KudumbakutayimaID: payload.KudumbakutayimaID,
			MemberID:          payload.MemberID,
		},
	}, nil
}

type statusRequest struct {
	Active *bool `json:"active"`
}

/*
create handles account creation by a super admin.

POST /api/v1/users

Response:
  - 201: Account
  - 400: Validation failure
  - 409: Email or phone already registered
  - 422: Scoping identifiers unknown or not nested
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := payload.input()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

/*
createInChurch handles account creation by a church admin.

POST /api/v1/churches/{churchId}/users

Response:
  - 201: Account
  - 400: Role outside unit_admin, kudumbakutayima_admin, member or church mismatch
*/
func (handler *Handler) createInChurch(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := payload.input()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.CreateInChurch(request.Context(), requestutil.Param(request, FieldChurchID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

/*
list returns a page of accounts.

GET /api/v1/users?role=&churchId=&q=&page=&limit=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{ChurchID: query.Get(FieldChurchID), Query: query.Get("q")}

	if raw := query.Get(FieldRole); raw != "" {
		role, ok := sec.ParseRole(raw)
		if !ok {
			respond.Error(writer, request, validate.RequiredError(FieldRole, "Must be one of the platform roles"))
			return
		}
		filter.Role = role
	}

	params := pagination.FromRequest(request)
	accounts, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, params.Meta(total))
}

/*
setStatus enables or disables an account.

PATCH /api/v1/users/{userId}/status

Request:
  - Body: {"active": bool}
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	var payload statusRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if payload.Active == nil {
		respond.Error(writer, request, validate.RequiredError(FieldActive, "This field is required"))
		return
	}

	account, err := handler.service.SetActive(request.Context(), requestutil.Param(request, "userId"), *payload.Active)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}
