// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/pkg/pagination"
	"github.com/taibuivan/churchwallet/pkg/pointer"
	"github.com/taibuivan/churchwallet/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the member register.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new member [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// # Inputs

// CreateInput carries the fields of a new member. Dates are YYYY-MM-DD.
type CreateInput struct {
	ChurchID          string
	UnitID            string
	KudumbakutayimaID string
	FullName          string
	HouseName         string
	Gender            string
	DateOfBirth       string
	Phone             string
	Email             string
	Address           string
	Status            string // Defaults to active
	JoinedOn          string
}

// UpdateInput is a partial update; nil fields are left unchanged and empty
// strings clear optional fields.
type UpdateInput struct {
	UnitID            *string
	KudumbakutayimaID *string
	FullName          *string
	HouseName         *string
	Gender            *string
	DateOfBirth       *string
	Phone             *string
	Email             *string
	Address           *string
	Status            *string
	JoinedOn          *string
}

// # Queries

/*
List returns a page of the register selected by the filter.

Returns:
  - error: Validation on an unknown status
*/
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Member, int, error) {
	validator := &validate.Validator{}
	for _, status := range filter.Status {
		validator.OneOf(FieldStatus, string(status), statuses...)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	limit, offset := params.Window()
	members, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("member_service_list_failed: %w", err)
	}
	return members, total, nil
}

// Get returns a single member.
func (service *Service) Get(context context.Context, id string) (*Member, error) {
	member, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("member_service_get_failed: %w", err)
	}
	return member, nil
}

// # Mutations

/*
Create validates and registers a member.

Description: The unit must belong to the church and the kudumbakutayima to
the unit. A kudumbakutayima is only accepted together with its unit.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Member: The stored member
  - error: Validation, or Unprocessable on an inconsistent placement
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Member, error) {
	validator := &validate.Validator{}

	now := service.now().UTC()
	member := &Member{
		ID:                uuid.New(),
		ChurchID:          strings.TrimSpace(input.ChurchID),
		UnitID:            pointer.Trimmed(input.UnitID),
		KudumbakutayimaID: pointer.Trimmed(input.KudumbakutayimaID),
		FullName:          strings.TrimSpace(input.FullName),
		HouseName:         pointer.Trimmed(input.HouseName),
		Gender:            parseGender(validator, input.Gender),
		DateOfBirth:       validator.Date(FieldDateOfBirth, strings.TrimSpace(input.DateOfBirth)),
		Phone:             pointer.Trimmed(input.Phone),
		Email:             pointer.Trimmed(input.Email),
		Address:           pointer.Trimmed(input.Address),
		Status:            Status(pointer.Fallback(pointer.Trimmed(input.Status), string(StatusActive))),
		JoinedOn:          validator.Date(FieldJoinedOn, strings.TrimSpace(input.JoinedOn)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	validator.Required(FieldChurchID, member.ChurchID)
	if member.ChurchID != "" {
		validator.UUID(FieldChurchID, member.ChurchID)
	}
	if err := validateMember(validator, member); err != nil {
		return nil, err
	}

	if err := service.checkPlacement(context, member); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, member); err != nil {
		return nil, fmt.Errorf("member_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "member_created",
		slog.String("member_id", member.ID),
		slog.String("church_id", member.ChurchID),
	)

	return member, nil
}

/*
Update applies a partial update to a member of churchID.

Description: A member of another church is reported as not found. Moving a
member re-checks the placement; clearing the unit also clears the
kudumbakutayima.

Returns:
  - *Member: The updated member
  - error: NotFound, Validation, or Unprocessable
*/
func (service *Service) Update(context context.Context, churchID, id string, input UpdateInput) (*Member, error) {
	member, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("member_service_update_lookup_failed: %w", err)
	}
	if member.ChurchID != churchID {
		return nil, apperr.NotFound("Member")
	}

	validator := &validate.Validator{}
	moved := input.UnitID != nil || input.KudumbakutayimaID != nil

	if input.UnitID != nil {
		member.UnitID = pointer.Trimmed(*input.UnitID)
		if member.UnitID == nil {
			member.KudumbakutayimaID = nil
		}
	}
	if input.KudumbakutayimaID != nil {
		member.KudumbakutayimaID = pointer.Trimmed(*input.KudumbakutayimaID)
	}
	if input.FullName != nil {
		member.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.HouseName != nil {
		member.HouseName = pointer.Trimmed(*input.HouseName)
	}
	if input.Gender != nil {
		member.Gender = parseGender(validator, *input.Gender)
	}
	if input.DateOfBirth != nil {
		member.DateOfBirth = validator.Date(FieldDateOfBirth, strings.TrimSpace(*input.DateOfBirth))
	}
	if input.Phone != nil {
		member.Phone = pointer.Trimmed(*input.Phone)
	}
	if input.Email != nil {
		member.Email = pointer.Trimmed(*input.Email)
	}
	if input.Address != nil {
		member.Address = pointer.Trimmed(*input.Address)
	}
	if input.Status != nil {
		member.Status = Status(strings.TrimSpace(*input.Status))
	}
	if input.JoinedOn != nil {
		member.JoinedOn = validator.Date(FieldJoinedOn, strings.TrimSpace(*input.JoinedOn))
	}

	if err := validateMember(validator, member); err != nil {
		return nil, err
	}

	if moved {
		if err := service.checkPlacement(context, member); err != nil {
			return nil, err
		}
	}

	if err := service.repository.Update(context, member); err != nil {
		return nil, fmt.Errorf("member_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "member_updated",
		slog.String("member_id", member.ID),
		slog.String("status", string(member.Status)),
	)
	return member, nil
}

// Delete soft-deletes a member of churchID.
func (service *Service) Delete(context context.Context, churchID, id string) error {
	if err := service.repository.SoftDelete(context, churchID, id); err != nil {
		return fmt.Errorf("member_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(context, "member_deleted",
		slog.String("member_id", id),
		slog.String("church_id", churchID),
	)
	return nil
}

// # Helpers

func (service *Service) checkPlacement(context context.Context, member *Member) error {
	consistent, err := service.repository.PlacementConsistent(context, member.ChurchID, member.UnitID, member.KudumbakutayimaID)
	if err != nil {
		return fmt.Errorf("member_service_placement_failed: %w", err)
	}
	if !consistent {
		return apperr.Unprocessable("Unit and kudumbakutayima must belong to the member's church")
	}
	return nil
}

func parseGender(validator *validate.Validator, raw string) *Gender {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil
	}
	validator.OneOf(FieldGender, raw, genders...)
	return pointer.To(Gender(raw))
}

func validateMember(validator *validate.Validator, member *Member) error {
	validator.Required(FieldFullName, member.FullName).
		MaxLen(FieldFullName, member.FullName, maxNameLength).
		OneOf(FieldStatus, string(member.Status), statuses...)

	if member.HouseName != nil {
		validator.MaxLen(FieldHouseName, *member.HouseName, maxNameLength)
	}
	if member.Address != nil {
		validator.MaxLen(FieldAddress, *member.Address, maxAddressLength)
	}
	if member.UnitID != nil {
		validator.UUID(FieldUnitID, *member.UnitID)
	}
	if member.KudumbakutayimaID != nil {
		validator.UUID(FieldKudumbakutayimaID, *member.KudumbakutayimaID).
			Custom(FieldKudumbakutayimaID, member.UnitID == nil, "Requires unitId")
	}
	if member.Email != nil {
		validator.Email(FieldEmail, *member.Email)
	}
	if member.Phone != nil {
		validator.Phone(FieldPhone, *member.Phone)
	}
	if member.DateOfBirth != nil && member.JoinedOn != nil {
		validator.NotBefore(FieldJoinedOn, member.JoinedOn, *member.DateOfBirth)
	}

	return validator.Err()
}
