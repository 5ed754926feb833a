// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transaction

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

// Handler implements the HTTP layer for the ledger.
type Handler struct {
	service *Service
}

// NewHandler constructs a new ledger [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
ChurchRoutes returns the router mounted at /churches/{churchId}/transactions.

Endpoints:
  - GET  /         : Church ledger (type, category, from, to, page, limit)
  - POST /         : Record an entry
  - GET  /summary  : Income, expense and balance over [from, to]
*/
func (handler *Handler) ChurchRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin), middleware.RequireChurchOwnership)

	router.Get("/", handler.listChurch)
	router.Post("/", handler.create)
	router.Get("/summary", handler.summary)

	return router
}

// UnitRoutes returns the router mounted at /units/{unitId}/transactions.
func (handler *Handler) UnitRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.IsAdmin, middleware.RequireUnitOwnership)

	router.Get("/", handler.listUnit)

	return router
}

// MemberRoutes returns the router mounted at /members/{memberId}/transactions.
func (handler *Handler) MemberRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(sec.RoleSuperAdmin, sec.RoleMember), middleware.RequireMemberOwnership)

	router.Get("/", handler.listMember)

	return router
}

// # Request Payloads

type createRequest struct {
	UnitID      string          `json:"unitId"`
	MemberID    string          `json:"memberId"`
	CampaignID  string          `json:"campaignId"`
	DuesID      string          `json:"duesId"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	OccurredOn  string          `json:"occurredOn"`
}

// # Endpoints

/*
GET /api/v1/churches/{churchId}/transactions.

Request:
  - type: income | expense
  - category: string
  - from, to: YYYY-MM-DD (inclusive)
  - page, limit: int

Response:
  - 200: []Transaction: Paginated, newest first
*/
func (handler *Handler) listChurch(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{ChurchID: requestutil.Param(request, FieldChurchID)})
}

// GET /api/v1/units/{unitId}/transactions.
func (handler *Handler) listUnit(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{UnitID: requestutil.Param(request, FieldUnitID)})
}

// GET /api/v1/members/{memberId}/transactions.
func (handler *Handler) listMember(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, Filter{MemberID: requestutil.Param(request, FieldMemberID)})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, filter Filter) {
	var err error
	if filter.From, err = requestutil.QueryTime(request, FieldFrom); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if filter.To, err = requestutil.QueryTime(request, FieldTo); err != nil {
		respond.Error(writer, request, err)
		return
	}
	filter.Type = Type(request.URL.Query().Get(FieldType))
	filter.Category = Category(request.URL.Query().Get(FieldCategory))

	params := pagination.FromRequest(request)
	transactions, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, transactions, params.Meta(total))
}

/*
POST /api/v1/churches/{churchId}/transactions.

Request (Body):
  - type, category: string (required)
  - amount: decimal string (> 0)
  - unitId, memberId, campaignId, duesId: string (optional references)

Response:
  - 201: Transaction
  - 400: Validation failure
  - 404: Dues record not found in the church
  - 409: Dues already paid
  - 422: Reference outside the church, or dues member/amount mismatch
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	transaction, err := handler.service.Record(request.Context(),
		requestutil.Param(request, FieldChurchID),
		identity.UserID.String(),
		CreateInput(payload),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, transaction)
}

/*
GET /api/v1/churches/{churchId}/transactions/summary.

Response:
  - 200: Summary: {income, expense, balance}
*/
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	from, err := requestutil.QueryTime(request, FieldFrom)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	to, err := requestutil.QueryTime(request, FieldTo)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Summary(request.Context(), requestutil.Param(request, FieldChurchID), from, to)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
