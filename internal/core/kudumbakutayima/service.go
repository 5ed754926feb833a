// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kudumbakutayima

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/pkg/pointer"
	"github.com/taibuivan/churchwallet/pkg/uuid"
)

// Service orchestrates business rules for kudumbakutayimas.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new kudumbakutayima [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// Input carries the editable fields. Nil fields are left unchanged on update.
type Input struct {
	Name        *string
	PatronSaint *string
}

// ListByUnit returns every live kudumbakutayima of a unit.
func (service *Service) ListByUnit(context context.Context, unitID string) ([]*Kudumbakutayima, error) {
	result, err := service.repository.ListByUnit(context, unitID)
	if err != nil {
		return nil, fmt.Errorf("kudumbakutayima_service_list_failed: %w", err)
	}
	return result, nil
}

// Get returns a single kudumbakutayima.
func (service *Service) Get(context context.Context, id string) (*Kudumbakutayima, error) {
	k, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("kudumbakutayima_service_get_failed: %w", err)
	}
	return k, nil
}

/*
Create adds a kudumbakutayima to a unit.

Returns:
  - *Kudumbakutayima: The stored record with the unit's church filled in
  - error: Validation, NotFound (unit), or Conflict (name taken in the unit)
*/
func (service *Service) Create(context context.Context, unitID string, input Input) (*Kudumbakutayima, error) {
	now := service.now().UTC()
	k := &Kudumbakutayima{
		ID:          uuid.New(),
		UnitID:      unitID,
		Name:        strings.TrimSpace(pointer.Val(input.Name)),
		PatronSaint: pointer.Trimmed(pointer.Val(input.PatronSaint)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validateKudumbakutayima(k); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, k); err != nil {
		return nil, fmt.Errorf("kudumbakutayima_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "kudumbakutayima_created",
		slog.String("kudumbakutayima_id", k.ID),
		slog.String("unit_id", unitID),
	)
	return k, nil
}

// Update applies a partial update.
func (service *Service) Update(context context.Context, id string, input Input) (*Kudumbakutayima, error) {
	k, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("kudumbakutayima_service_update_lookup_failed: %w", err)
	}

	if input.Name != nil {
		k.Name = strings.TrimSpace(*input.Name)
	}
	if input.PatronSaint != nil {
		k.PatronSaint = pointer.Trimmed(*input.PatronSaint)
	}

	if err := validateKudumbakutayima(k); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, k); err != nil {
		return nil, fmt.Errorf("kudumbakutayima_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "kudumbakutayima_updated", slog.String("kudumbakutayima_id", k.ID))
	return k, nil
}

func validateKudumbakutayima(k *Kudumbakutayima) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, k.Name).MaxLen(FieldName, k.Name, maxNameLength)
	if k.PatronSaint != nil {
		validator.MaxLen(FieldPatronSaint, *k.PatronSaint, maxNameLength)
	}
	return validator.Err()
}
