// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unit

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

// Service orchestrates business rules for units.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new unit [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// Input carries the editable fields of a unit. Nil fields are left unchanged
// on update.
type Input struct {
	Name        *string
	Description *string
}

// ListByChurch returns every live unit of a church.
func (service *Service) ListByChurch(context context.Context, churchID string) ([]*Unit, error) {
	units, err := service.repository.ListByChurch(context, churchID)
	if err != nil {
		return nil, fmt.Errorf("unit_service_list_failed: %w", err)
	}
	return units, nil
}

// Get returns a single unit.
func (service *Service) Get(context context.Context, id string) (*Unit, error) {
	unit, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("unit_service_get_failed: %w", err)
	}
	return unit, nil
}

/*
Create adds a unit to a church.

Parameters:
  - context: context.Context
  - churchID: string (UUID, from the path)
  - input: Input (name required)

Returns:
  - *Unit: The stored unit
  - error: Validation, NotFound (church), or Conflict (name taken)
*/
func (service *Service) Create(context context.Context, churchID string, input Input) (*Unit, error) {
	now := service.now().UTC()
	unit := &Unit{
		ID:          uuid.New(),
		ChurchID:    churchID,
		Name:        strings.TrimSpace(pointer.Val(input.Name)),
		Description: pointer.Trimmed(pointer.Val(input.Description)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, unit); err != nil {
		return nil, fmt.Errorf("unit_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "unit_created",
		slog.String("unit_id", unit.ID),
		slog.String("church_id", churchID),
	)
	return unit, nil
}

// Update applies a partial update to a unit.
func (service *Service) Update(context context.Context, id string, input Input) (*Unit, error) {
	unit, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("unit_service_update_lookup_failed: %w", err)
	}

	if input.Name != nil {
		unit.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		unit.Description = pointer.Trimmed(*input.Description)
	}

	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, unit); err != nil {
		return nil, fmt.Errorf("unit_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "unit_updated", slog.String("unit_id", unit.ID))
	return unit, nil
}

// Delete soft-deletes a unit. A unit of another church is reported as missing.
func (service *Service) Delete(context context.Context, churchID, id string) error {
	if err := service.repository.SoftDelete(context, churchID, id); err != nil {
		return fmt.Errorf("unit_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(context, "unit_deleted",
		slog.String("unit_id", id),
		slog.String("church_id", churchID),
	)
	return nil
}

func validateUnit(unit *Unit) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, unit.Name).MaxLen(FieldName, unit.Name, maxNameLength)
	if unit.Description != nil {
		validator.MaxLen(FieldDescription, *unit.Description, 1000)
	}
	return validator.Err()
}
