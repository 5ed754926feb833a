// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package campaign

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	requestutil "github.com/taibuivan/churchwallet/internal/platform/request"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/pkg/pagination"
	"github.com/taibuivan/churchwallet/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for campaigns.
type Handler struct {
	service *Service
}

// NewHandler constructs a new campaign [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
ChurchRoutes returns the router mounted at /churches/{churchId}/campaigns.

Endpoints:
  - GET    /              : List campaigns (any role within the church)
  - GET    /{campaignId}  : Campaign detail (any role within the church)
  - POST   /              : Create (super admin, church admin)
  - PATCH  /{campaignId}  : Update (super admin, church admin)
  - DELETE /{campaignId}  : Soft delete (super admin, church admin)
*/
func (handler *Handler) ChurchRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(read chi.Router) {
		read.Use(middleware.Authenticated, middleware.RequireChurchOwnership)
		read.Get("/", handler.list)
		read.Get("/{campaignId}", handler.get)
	})

	router.Group(func(write chi.Router) {
		write.Use(middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin), middleware.RequireChurchOwnership)
		write.Post("/", handler.create)
		write.Patch("/{campaignId}", handler.update)
		write.Delete("/{campaignId}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Kind         string           `json:"kind"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	StartDate    string           `json:"startDate"`
	EndDate      string           `json:"endDate"`
	Status       string           `json:"status"`
}

type updateRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Kind         *string          `json:"kind"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	StartDate    *string          `json:"startDate"`
	EndDate      *string          `json:"endDate"`
	Status       *string          `json:"status"`
}

// # Endpoints

/*
GET /api/v1/churches/{churchId}/campaigns.

Request:
  - status: comma-separated statuses
  - kind: fundraising | spiritual
  - page, limit: int

Response:
  - 200: []Campaign: Paginated, with raised amounts
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Kind: Kind(request.URL.Query().Get(FieldKind))}
	for _, status := range query.StringSlice(request.URL.Query().Get(FieldStatus)) {
		filter.Status = append(filter.Status, Status(status))
	}

	campaigns, total, err := handler.service.List(request.Context(), requestutil.Param(request, FieldChurchID), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, campaigns, params.Meta(total))
}

// GET /api/v1/churches/{churchId}/campaigns/{campaignId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	campaign, err := handler.service.Get(request.Context(),
		requestutil.Param(request, FieldChurchID),
		requestutil.Param(request, FieldCampaignID),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, campaign)
}

/*
POST /api/v1/churches/{churchId}/campaigns.

Response:
  - 201: Campaign
  - 400: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	campaign, err := handler.service.Create(request.Context(), requestutil.Param(request, FieldChurchID), CreateInput(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, campaign)
}

// PATCH /api/v1/churches/{churchId}/campaigns/{campaignId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var payload updateRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	campaign, err := handler.service.Update(request.Context(),
		requestutil.Param(request, FieldChurchID),
		requestutil.Param(request, FieldCampaignID),
		UpdateInput(payload),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, campaign)
}

// DELETE /api/v1/churches/{churchId}/campaigns/{campaignId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(),
		requestutil.Param(request, FieldChurchID),
		requestutil.Param(request, FieldCampaignID),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
