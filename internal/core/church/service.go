// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package church

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/pkg/pagination"
	"github.com/taibuivan/churchwallet/pkg/pointer"
	"github.com/taibuivan/churchwallet/pkg/slug"
	"github.com/taibuivan/churchwallet/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for churches.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new church [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// # Inputs

// CreateInput carries the fields of a new church.
type CreateInput struct {
	Name        string
	Code        string // Derived from Name when empty
	Address     string
	Diocese     string
	Phone       string
	Email       string
	MonthlyDues decimal.Decimal
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Code        *string
	Address     *string
	Diocese     *string
	Phone       *string
	Email       *string
	MonthlyDues *decimal.Decimal
}

// # Queries

// List returns a page of churches.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Church, int, error) {
	limit, offset := params.Window()
	churches, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("church_service_list_failed: %w", err)
	}
	return churches, total, nil
}

// Get returns a single church.
func (service *Service) Get(context context.Context, id string) (*Church, error) {
	church, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("church_service_get_failed: %w", err)
	}
	return church, nil
}

// # Mutations

/*
Create validates and registers a church.

Description: When no code is given it is derived from the name as a slug.
Codes are unique among live churches.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Church: The stored church
  - error: Validation or Conflict (code taken)
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Church, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.TrimSpace(input.Code)
	if input.Code == "" {
		input.Code = slug.Truncate(slug.From(input.Name), maxCodeLength)
	}

	now := service.now().UTC()
	church := &Church{
		ID:          uuid.New(),
		Name:        input.Name,
		Code:        input.Code,
		Address:     pointer.Trimmed(input.Address),
		Diocese:     pointer.Trimmed(input.Diocese),
		Phone:       pointer.Trimmed(input.Phone),
		Email:       pointer.Trimmed(input.Email),
		MonthlyDues: input.MonthlyDues,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validateChurch(church); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, church); err != nil {
		return nil, fmt.Errorf("church_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "church_created",
		slog.String("church_id", church.ID),
		slog.String("code", church.Code),
	)

	return church, nil
}

/*
Update applies a partial update to a church.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - input: UpdateInput

Returns:
  - *Church: The updated church
  - error: NotFound, Validation, or Conflict
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Church, error) {
	church, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("church_service_update_lookup_failed: %w", err)
	}

	if input.Name != nil {
		church.Name = strings.TrimSpace(*input.Name)
	}
	if input.Code != nil {
		church.Code = strings.TrimSpace(*input.Code)
	}
	if input.Address != nil {
		church.Address = pointer.Trimmed(*input.Address)
	}
	if input.Diocese != nil {
		church.Diocese = pointer.Trimmed(*input.Diocese)
	}
	if input.Phone != nil {
		church.Phone = pointer.Trimmed(*input.Phone)
	}
	if input.Email != nil {
		church.Email = pointer.Trimmed(*input.Email)
	}
	if input.MonthlyDues != nil {
		church.MonthlyDues = *input.MonthlyDues
	}

	if err := validateChurch(church); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, church); err != nil {
		return nil, fmt.Errorf("church_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "church_updated", slog.String("church_id", church.ID))
	return church, nil
}

// Delete soft-deletes a church. Its units, members and ledger stay in place.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repository.SoftDelete(context, id); err != nil {
		return fmt.Errorf("church_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(context, "church_deleted", slog.String("church_id", id))
	return nil
}

func validateChurch(church *Church) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, church.Name).
		MaxLen(FieldName, church.Name, maxNameLength).
		Required(FieldCode, church.Code).
		MaxLen(FieldCode, church.Code, maxCodeLength).
		NonNegative(FieldMonthlyDues, church.MonthlyDues).
		MaxScale(FieldMonthlyDues, church.MonthlyDues, 2)

	if church.Code != "" {
		validator.Slug(FieldCode, church.Code)
	}
	if church.Email != nil {
		validator.Email(FieldEmail, *church.Email)
	}
	if church.Phone != nil {
		validator.Phone(FieldPhone, *church.Phone)
	}

	return validator.Err()
}
