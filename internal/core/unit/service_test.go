// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/ctxutil"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/pkg/pointer"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListByChurch(ctx context.Context, churchID string) ([]*Unit, error) {
	args := m.Called(ctx, churchID)
	units, _ := args.Get(0).([]*Unit)
	return units, args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*Unit, error) {
	args := m.Called(ctx, id)
	unit, _ := args.Get(0).(*Unit)
	return unit, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, unit *Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *mockRepository) Update(ctx context.Context, unit *Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *mockRepository) SoftDelete(ctx context.Context, churchID, id string) error {
	return m.Called(ctx, churchID, id).Error(0)
}

func newTestService(repository Repository) *Service {
	return NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const (
	churchA = "0192f7a0-0000-7000-8000-00000000000a"
	churchB = "0192f7a0-0000-7000-8000-00000000000b"
	unitA   = "0192f7a0-0000-7000-8000-0000000000a1"
	unitB   = "0192f7a0-0000-7000-8000-0000000000b1"
)

/*
TestCreate_PinsChurchAndTrims verifies the unit is stored under the path church.
*/
func TestCreate_PinsChurchAndTrims(t *testing.T) {
	repository := &mockRepository{}
	repository.On("Create", mock.Anything, mock.MatchedBy(func(unit *Unit) bool {
		return unit.ChurchID == churchA && unit.Name == "St. Joseph Unit" && unit.Description == nil
	})).Return(nil)

	unit, err := newTestService(repository).Create(context.Background(), churchA, Input{
		Name:        pointer.To("  St. Joseph Unit "),
		Description: pointer.To("   "),
	})

	require.NoError(t, err)
	assert.Len(t, unit.ID, 36)
	repository.AssertExpectations(t)
}

/*
TestCreate_Rejections covers validation and a missing church.
*/
func TestCreate_Rejections(t *testing.T) {
	t.Run("missing_name", func(t *testing.T) {
		repository := &mockRepository{}
		_, err := newTestService(repository).Create(context.Background(), churchA, Input{})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("church_missing", func(t *testing.T) {
		repository := &mockRepository{}
		repository.On("Create", mock.Anything, mock.Anything).Return(apperr.NotFound("Church"))
		_, err := newTestService(repository).Create(context.Background(), churchA, Input{Name: pointer.To("Unit")})
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})
}

/*
TestUpdate_Partial verifies omitted fields survive.
*/
func TestUpdate_Partial(t *testing.T) {
	repository := &mockRepository{}
	stored := &Unit{ID: unitA, ChurchID: churchA, Name: "Old", Description: pointer.To("Kept")}
	repository.On("FindByID", mock.Anything, unitA).Return(stored, nil)
	repository.On("Update", mock.Anything, stored).Return(nil)

	unit, err := newTestService(repository).Update(context.Background(), unitA, Input{Name: pointer.To("New")})

	require.NoError(t, err)
	assert.Equal(t, "New", unit.Name)
	assert.Equal(t, "Kept", pointer.Val(unit.Description))
}

/*
TestDelete_ScopedToChurch verifies deletion passes both identifiers down.
*/
func TestDelete_ScopedToChurch(t *testing.T) {
	repository := &mockRepository{}
	repository.On("SoftDelete", mock.Anything, churchB, unitA).Return(apperr.NotFound("Unit"))

	err := newTestService(repository).Delete(context.Background(), churchB, unitA)

	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestRoutes_Guards pins the unit endpoint guards, including that church admins
are not part of the admin set used on /units/{unitId}.
*/
func TestRoutes_Guards(t *testing.T) {
	superAdmin := &sec.Identity{UserID: "u0", Role: sec.RoleSuperAdmin}
	churchAdmin := &sec.Identity{UserID: "u1", Role: sec.RoleChurchAdmin, ChurchID: churchA}
	unitAdmin := &sec.Identity{UserID: "u2", Role: sec.RoleUnitAdmin, ChurchID: churchA, UnitID: unitA}
	kutAdmin := &sec.Identity{UserID: "u3", Role: sec.RoleKudumbakutayimaAdmin, ChurchID: churchA, UnitID: unitA, KudumbakutayimaID: "k"}

	tests := []struct {
		name     string
		identity *sec.Identity
		method   string
		target   string
		body     string
		want     int
	}{
		{"church_list_church_admin", churchAdmin, http.MethodGet, "/churches/" + churchA + "/units", "", http.StatusOK},
		{"church_list_other_church", churchAdmin, http.MethodGet, "/churches/" + churchB + "/units", "", http.StatusForbidden},
		{"church_list_unit_admin", unitAdmin, http.MethodGet, "/churches/" + churchA + "/units", "", http.StatusForbidden},
		{"church_create", churchAdmin, http.MethodPost, "/churches/" + churchA + "/units", `{"name":"Unit"}`, http.StatusCreated},
		{"church_delete", churchAdmin, http.MethodDelete, "/churches/" + churchA + "/units/" + unitA, "", http.StatusNoContent},
		{"unit_get_unit_admin", unitAdmin, http.MethodGet, "/units/" + unitA, "", http.StatusOK},
		{"unit_get_other_unit", unitAdmin, http.MethodGet, "/units/" + unitB, "", http.StatusForbidden},
		{"unit_get_church_admin", churchAdmin, http.MethodGet, "/units/" + unitA, "", http.StatusForbidden},
		{"unit_get_kudumbakutayima_admin", kutAdmin, http.MethodGet, "/units/" + unitA, "", http.StatusForbidden},
		{"unit_patch_super_admin", superAdmin, http.MethodPatch, "/units/" + unitB, `{"name":"Renamed"}`, http.StatusOK},
		{"unit_get_anonymous", nil, http.MethodGet, "/units/" + unitA, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &mockRepository{}
			repository.On("ListByChurch", mock.Anything, mock.Anything).Return([]*Unit{}, nil)
			repository.On("FindByID", mock.Anything, mock.Anything).Return(&Unit{ID: unitA, ChurchID: churchA, Name: "Unit"}, nil)
			repository.On("Create", mock.Anything, mock.Anything).Return(nil)
			repository.On("Update", mock.Anything, mock.Anything).Return(nil)
			repository.On("SoftDelete", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			handler := NewHandler(newTestService(repository))

			router := chi.NewRouter()
			router.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
					if tt.identity != nil {
						request = request.WithContext(ctxutil.WithIdentity(request.Context(), tt.identity))
					}
					next.ServeHTTP(writer, request)
				})
			})
			router.Mount("/churches/{churchId}/units", handler.ChurchRoutes())
			router.Mount("/units", handler.Routes())

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
		})
	}
}
