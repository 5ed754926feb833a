// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	requestutil "github.com/taibuivan/churchwallet/internal/platform/request"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/pkg/pagination"
	"github.com/taibuivan/churchwallet/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for the member register.
type Handler struct {
	service *Service
}

// NewHandler constructs a new member [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes returns the router mounted at /members.

Endpoints:
  - POST /            : Register a member (super, church or unit admin of the body churchId)
  - GET  /{memberId}  : Member detail (super admin, or the member themself)
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(
		middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin, sec.RoleUnitAdmin),
		middleware.RequireChurchOwnership,
	).Post("/", handler.create)

	router.With(
		middleware.Authorize(sec.RoleSuperAdmin, sec.RoleMember),
		middleware.RequireMemberOwnership,
	).Get("/{memberId}", handler.get)

	return router
}

/*
ChurchRoutes returns the router mounted at /churches/{churchId}/members.

Endpoints:
  - GET    /            : Church register (q, status, page, limit)
  - PATCH  /{memberId}  : Update a member of the church
  - DELETE /{memberId}  : Soft delete a member of the church
*/
func (handler *Handler) ChurchRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin), middleware.RequireChurchOwnership)

	router.Get("/", handler.listChurch)
	router.Patch("/{memberId}", handler.update)
	router.Delete("/{memberId}", handler.delete)

	return router
}

// UnitRoutes returns the router mounted at /units/{unitId}/members.
func (handler *Handler) UnitRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.IsAdmin, middleware.RequireUnitOwnership)

	router.Get("/", handler.listUnit)

	return router
}

// KudumbakutayimaRoutes returns the router mounted at /kudumbakutayimas/{kudumbakutayimaId}/members.
func (handler *Handler) KudumbakutayimaRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(
		middleware.Authorize(sec.RoleSuperAdmin, sec.RoleKudumbakutayimaAdmin),
		middleware.RequireKudumbakutayimaOwnership,
	)

	router.Get("/", handler.listKudumbakutayima)

	return router
}

// # Request Payloads

type createRequest struct {
	ChurchID          string `json:"churchId"`
	UnitID            string `json:"unitId"`
	KudumbakutayimaID string `json:"kudumbakutayimaId"`
	FullName          string `json:"fullName"`
	HouseName         string `json:"houseName"`
	Gender            string `json:"gender"`
	DateOfBirth       string `json:"dateOfBirth"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Address           string `json:"address"`
	Status            string `json:"status"`
	JoinedOn          string `json:"joinedOn"`
}

type updateRequest struct {
	UnitID            *string `json:"unitId"`
	KudumbakutayimaID *string `json:"kudumbakutayimaId"`
	FullName          *string `json:"fullName"`
	HouseName         *string `json:"houseName"`
	Gender            *string `json:"gender"`
	DateOfBirth       *string `json:"dateOfBirth"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Address           *string `json:"address"`
	Status            *string `json:"status"`
	JoinedOn          *string `json:"joinedOn"`
}

// # Endpoints

/*
GET /api/v1/churches/{churchId}/members.

Request:
  - q: string (name, house name or phone)
  - status: comma-separated statuses
  - page, limit: int

Response:
  - 200: []Member: Paginated register
*/
func (handler *Handler) listChurch(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{ChurchID: requestutil.Param(request, FieldChurchID)})
}

// GET /api/v1/units/{unitId}/members.
func (handler *Handler) listUnit(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{UnitID: requestutil.Param(request, FieldUnitID)})
}

// GET /api/v1/kudumbakutayimas/{kudumbakutayimaId}/members.
func (handler *Handler) listKudumbakutayima(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{KudumbakutayimaID: requestutil.Param(request, FieldKudumbakutayimaID)})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, filter Filter) {
	params := pagination.FromRequest(request)
	filter.Query = request.URL.Query().Get("q")
	for _, status := range query.StringSlice(request.URL.Query().Get(FieldStatus)) {
		filter.Status = append(filter.Status, Status(status))
	}

	members, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, params.Meta(total))
}

/*
POST /api/v1/members.

Request (Body):
  - churchId: string (required, also used for the ownership check)
  - unitId, kudumbakutayimaId: string (optional placement)
  - fullName: string (required)

Response:
  - 201: Member
  - 400: Validation failure
  - 422: Unit or kudumbakutayima outside the church
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.Create(request.Context(), CreateInput(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, member)
}

// GET /api/v1/members/{memberId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	member, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldMemberID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, member)
}

/*
PATCH /api/v1/churches/{churchId}/members/{memberId}.

Response:
  - 200: Member
  - 404: Member not found in the church
  - 422: Unit or kudumbakutayima outside the church
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var payload updateRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.Update(request.Context(),
		requestutil.Param(request, FieldChurchID),
		requestutil.Param(request, FieldMemberID),
		UpdateInput(payload),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, member)
}

// DELETE /api/v1/churches/{churchId}/members/{memberId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(),
		requestutil.Param(request, FieldChurchID),
		requestutil.Param(request, FieldMemberID),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
