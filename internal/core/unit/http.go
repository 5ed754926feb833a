// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	requestutil "github.com/taibuivan/churchwallet/internal/platform/request"
	"github.com/taibuivan/churchwallet/internal/platform/respond"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

// Handler implements the HTTP layer for units.
type Handler struct {
	service *Service
}

// NewHandler constructs a new unit [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
ChurchRoutes returns the router mounted at /churches/{churchId}/units.

Endpoints:
  - GET    /          : Units of the church
  - POST   /          : Add a unit
  - DELETE /{unitId}  : Soft delete a unit of the church
*/
func (handler *Handler) ChurchRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(
		middleware.Authorize(sec.RoleSuperAdmin, sec.RoleChurchAdmin),
		middleware.RequireChurchOwnership,
	)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{unitId}", handler.delete)

	return router
}

/*
Routes returns the router mounted at /units.

Endpoints:
  - GET   /{unitId} : Unit detail
  - PATCH /{unitId} : Update a unit

Unit-scoped resources are mounted on the returned router by the server.
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	guard := router.With(middleware.IsAdmin, middleware.RequireUnitOwnership)
	guard.Get("/{unitId}", handler.get)
	guard.Patch("/{unitId}", handler.update)

	return router
}

type unitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /api/v1/churches/{churchId}/units.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	units, err := handler.service.ListByChurch(request.Context(), requestutil.Param(request, FieldChurchID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, units)
}

/*
POST /api/v1/churches/{churchId}/units.

Response:
  - 201: Unit
  - 404: Church not found
  - 409: Name already used in the church
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload unitRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	unit, err := handler.service.Create(request.Context(), requestutil.Param(request, FieldChurchID), Input(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, unit)
}

// DELETE /api/v1/churches/{churchId}/units/{unitId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(),
		requestutil.Param(request, FieldChurchID),
		requestutil.Param(request, FieldUnitID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// GET /api/v1/units/{unitId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	unit, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldUnitID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, unit)
}

// PATCH /api/v1/units/{unitId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var payload unitRequest
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	unit, err := handler.service.Update(request.Context(), requestutil.Param(request, FieldUnitID), Input(payload))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, unit)
}
