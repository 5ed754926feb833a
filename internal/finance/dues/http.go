// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

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

// Handler implements the HTTP layer for dues.
type Handler struct {
	service   *Service
	processor *Processor
}

// NewHandler constructs a new dues [Handler].
func NewHandler(service *Service, processor *Processor) *Handler {
	return &Handler{service: service, processor: processor}
}

/*
Routes returns the router mounted at /dues.

Endpoints:
  - POST /run : Run the processor once now (super admin; optional ?period=YYYY-MM)
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.IsSuperAdmin).Post("/run", handler.run)

	return router
}

// ChurchRoutes returns the router mounted at /churches/{churchId}/dues.
func (handler *Handler) ChurchRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin), middleware.RequireChurchOwnership)

	router.Get("/", handler.listChurch)

	return router
}

// MemberRoutes returns the router mounted at /members/{memberId}/dues.
func (handler *Handler) MemberRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(sec.RoleSuperAdmin, sec.RoleMember), middleware.RequireMemberOwnership)

	router.Get("/", handler.listMember)

	return router
}

// # Endpoints

/*
GET /api/v1/churches/{churchId}/dues.

Request:
  - status: comma-separated statuses
  - period: YYYY-MM
  - page, limit: int

Response:
  - 200: []Dues: Paginated
*/
func (handler *Handler) listChurch(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{ChurchID: requestutil.Param(request, FieldChurchID)})
}

// GET /api/v1/members/{memberId}/dues.
func (handler *Handler) listMember(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{MemberID: requestutil.Param(request, FieldMemberID)})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, filter Filter) {
	params := pagination.FromRequest(request)
	filter.Period = request.URL.Query().Get(FieldPeriod)
	for _, status := range query.StringSlice(request.URL.Query().Get(FieldStatus)) {
		filter.Status = append(filter.Status, Status(status))
	}

	records, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, params.Meta(total))
}

/*
POST /api/v1/dues/run.

Response:
  - 200: RunResult (skipped is true when another run holds the lock)
  - 400: Malformed period
*/
func (handler *Handler) run(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.processor.Run(request.Context(), request.URL.Query().Get(FieldPeriod))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
