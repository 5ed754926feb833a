// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package church

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	requestutil "github.com/taibuivan/churchwallet/internal/platform/request"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for churches.
type Handler struct {
	service *Service
}

// NewHandler constructs a new church [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes returns the router mounted at /churches.

Endpoints:
  - GET    /            : List churches (super admin)
  - POST   /            : Register a church (super admin)
  - GET    /{churchId}  : Church detail (any role within the church)
  - PATCH  /{churchId}  : Update the profile (super admin, church admin)
  - DELETE /{churchId}  : Soft delete (super admin)

Church-scoped resources (units, members, ledger) are mounted on the returned
router under /{churchId}/... by the server.
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.IsSuperAdmin).Get("/", handler.list)
	router.With(middleware.IsSuperAdmin).Post("/", handler.create)

	router.With(middleware.Authenticated, middleware.RequireChurchOwnership).Get("/{churchId}", handler.get)
	router.With(
		middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin),
		middleware.RequireChurchOwnership,
	).Patch("/{churchId}", handler.update)
	router.With(middleware.IsSuperAdmin).Delete("/{churchId}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Address     string          `json:"address"`
	Diocese     string          `json:"diocese"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	MonthlyDues decimal.Decimal `json:"monthlyDues"`
}

type updateRequest struct {
	Name        *string          `json:"name"`
	Code        *string          `json:"code"`
	Address     *string          `json:"address"`
	Diocese     *string          `json:"diocese"`
	Phone       *string          `json:"phone"`
	Email       *string          `json:"email"`
	MonthlyDues *decimal.Decimal `json:"monthlyDues"`
}

// # Endpoints

/*
GET /api/v1/churches.

Request:
  - q: string (name, code or diocese)
  - page, limit: int

Response:
  - 200: []Church: Paginated list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Query: request.URL.Query().Get("q")}

	churches, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, churches, params.Meta(total))
}

/*
POST /api/v1/churches.

Response:
  - 201: Church
  - 400: Validation failure
  - 409: Code already in use
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	church, err := handler.service.Create(request.Context(), CreateInput(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, church)
}

// GET /api/v1/churches/{churchId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	church, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldChurchID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, church)
}

/*
PATCH /api/v1/churches/{churchId}.

Request (Body):
  - Any subset of the church fields

Response:
  - 200: Church
  - 404: Church not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var payload updateRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	church, err := handler.service.Update(request.Context(), requestutil.Param(request, FieldChurchID), UpdateInput(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, church)
}

// DELETE /api/v1/churches/{churchId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, FieldChurchID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
