// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kudumbakutayima

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	requestutil "github.com/taibuivan/churchwallet/internal/platform/request"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

// Handler implements the HTTP layer for kudumbakutayimas.
type Handler struct {
	service *Service
}

// NewHandler constructs a new kudumbakutayima [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
UnitRoutes returns the router mounted at /units/{unitId}/kudumbakutayimas.

Endpoints:
  - GET  / : Kudumbakutayimas of the unit
  - POST / : Add a kudumbakutayima
*/
func (handler *Handler) UnitRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.IsAdmin, middleware.RequireUnitOwnership)

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	return router
}

/*
Routes returns the router mounted at /kudumbakutayimas.

Endpoints:
  - GET   /{kudumbakutayimaId} : Detail
  - PATCH /{kudumbakutayimaId} : Update
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	guard := router.With(
		middleware.Authorize(sec.RoleSuperAdmin, sec.RoleKudumbakutayimaAdmin),
		middleware.RequireKudumbakutayimaOwnership,
	)
	guard.Get("/{kudumbakutayimaId}", handler.get)
	guard.Patch("/{kudumbakutayimaId}", handler.update)

	return router
}

type kudumbakutayimaRequest struct {
	Name        *string `json:"name"`
	PatronSaint *string `json:"patronSaint"`
}

// GET /api/v1/units/{unitId}/kudumbakutayimas.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.ListByUnit(request.Context(), requestutil.Param(request, FieldUnitID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

/*
POST /api/v1/units/{unitId}/kudumbakutayimas.

Response:
  - 201: Kudumbakutayima
  - 404: Unit not found
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload kudumbakutayimaRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	k, err := handler.service.Create(request.Context(), requestutil.Param(request, FieldUnitID), Input(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, k)
}

// GET /api/v1/kudumbakutayimas/{kudumbakutayimaId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	k, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldKudumbakutayimaID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, k)
}

// PATCH /api/v1/kudumbakutayimas/{kudumbakutayimaId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var payload kudumbakutayimaRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	k, err := handler.service.Update(request.Context(), requestutil.Param(request, FieldKudumbakutayimaID), Input(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, k)
}
