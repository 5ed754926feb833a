// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kudumbakutayima

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

func (m *mockRepository) ListByUnit(ctx context.Context, unitID string) ([]*Kudumbakutayima, error) {
	args := m.Called(ctx, unitID)
	result, _ := args.Get(0).([]*Kudumbakutayima)
	return result, args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*Kudumbakutayima, error) {
	args := m.Called(ctx, id)
	k, _ := args.Get(0).(*Kudumbakutayima)
	return k, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, k *Kudumbakutayima) error {
	return m.Called(ctx, k).Error(0)
}

func (m *mockRepository) Update(ctx context.Context, k *Kudumbakutayima) error {
	return m.Called(ctx, k).Error(0)
}

func newTestService(repository Repository) *Service {
	return NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const (
	unitA = "0192f7a0-0000-7000-8000-0000000000a1"
	unitB = "0192f7a0-0000-7000-8000-0000000000b1"
	kutA  = "0192f7a0-0000-7000-8000-0000000000a2"
	kutB  = "0192f7a0-0000-7000-8000-0000000000b2"
)

/*
TestCreate_ChurchComesFromUnit verifies the repository fills the church.
*/
func TestCreate_ChurchComesFromUnit(t *testing.T) {
	repository := &mockRepository{}
	repository.On("Create", mock.Anything, mock.AnythingOfType("*kudumbakutayima.Kudumbakutayima")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Kudumbakutayima).ChurchID = "church-from-unit"
		}).
		Return(nil)

	k, err := newTestService(repository).Create(context.Background(), unitA, Input{
		Name:        pointer.To("St. George"),
		PatronSaint: pointer.To("St. George"),
	})

	require.NoError(t, err)
	assert.Equal(t, unitA, k.UnitID)
	assert.Equal(t, "church-from-unit", k.ChurchID)
}

/*
TestCreate_Rejections covers validation and a missing unit.
*/
func TestCreate_Rejections(t *testing.T) {
	repository := &mockRepository{}
	_, err := newTestService(repository).Create(context.Background(), unitA, Input{Name: pointer.To(" ")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	repository.On("Create", mock.Anything, mock.Anything).Return(apperr.NotFound("Unit"))
	_, err = newTestService(repository).Create(context.Background(), unitA, Input{Name: pointer.To("St. George")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestUpdate_ClearsPatronSaint verifies an empty string clears the optional field.
*/
func TestUpdate_ClearsPatronSaint(t *testing.T) {
	repository := &mockRepository{}
	stored := &Kudumbakutayima{ID: kutA, UnitID: unitA, Name: "St. George", PatronSaint: pointer.To("St. George")}
	repository.On("FindByID", mock.Anything, kutA).Return(stored, nil)
	repository.On("Update", mock.Anything, stored).Return(nil)

	k, err := newTestService(repository).Update(context.Background(), kutA, Input{PatronSaint: pointer.To("")})

	require.NoError(t, err)
	assert.Nil(t, k.PatronSaint)
	assert.Equal(t, "St. George", k.Name)
}

/*
TestRoutes_Guards pins the kudumbakutayima endpoint guards.
*/
func TestRoutes_Guards(t *testing.T) {
	unitAdmin := &sec.Identity{UserID: "u1", Role: sec.RoleUnitAdmin, ChurchID: "c", UnitID: unitA}
	kutAdmin := &sec.Identity{UserID: "u2", Role: sec.RoleKudumbakutayimaAdmin, ChurchID: "c", UnitID: unitA, KudumbakutayimaID: kutA}
	churchAdmin := &sec.Identity{UserID: "u3", Role: sec.RoleChurchAdmin, ChurchID: "c"}

	tests := []struct {
		name     string
		identity *sec.Identity
		method   string
		target   string
		body     string
		want     int
	}{
		{"unit_list_unit_admin", unitAdmin, http.MethodGet, "/units/" + unitA + "/kudumbakutayimas", "", http.StatusOK},
		{"unit_list_other_unit", unitAdmin, http.MethodGet, "/units/" + unitB + "/kudumbakutayimas", "", http.StatusForbidden},
		{"unit_list_kudumbakutayima_admin", kutAdmin, http.MethodGet, "/units/" + unitA + "/kudumbakutayimas", "", http.StatusForbidden},
		{"unit_create_unit_admin", unitAdmin, http.MethodPost, "/units/" + unitA + "/kudumbakutayimas", `{"name":"St. George"}`, http.StatusCreated},
		{"get_kudumbakutayima_admin", kutAdmin, http.MethodGet, "/kudumbakutayimas/" + kutA, "", http.StatusOK},
		{"get_other_kudumbakutayima", kutAdmin, http.MethodGet, "/kudumbakutayimas/" + kutB, "", http.StatusForbidden},
		{"get_unit_admin", unitAdmin, http.MethodGet, "/kudumbakutayimas/" + kutA, "", http.StatusForbidden},
		{"patch_church_admin", churchAdmin, http.MethodPatch, "/kudumbakutayimas/" + kutA, `{"name":"X"}`, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &mockRepository{}
			repository.On("ListByUnit", mock.Anything, mock.Anything).Return([]*Kudumbakutayima{}, nil)
			repository.On("FindByID", mock.Anything, mock.Anything).Return(&Kudumbakutayima{ID: kutA, UnitID: unitA, Name: "K"}, nil)
			repository.On("Create", mock.Anything, mock.Anything).Return(nil)
			repository.On("Update", mock.Anything, mock.Anything).Return(nil)
			handler := NewHandler(newTestService(repository))

			router := chi.NewRouter()
			router.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
					next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(request.Context(), tt.identity)))
				})
			})
			router.Mount("/units/{unitId}/kudumbakutayimas", handler.UnitRoutes())
			router.Mount("/kudumbakutayimas", handler.Routes())

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
		})
	}
}
