// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/pkg/pagination"
	"github.com/taibuivan/churchwallet/pkg/pointer"
	"github.com/taibuivan/churchwallet/pkg/uuid"
)

// # Contracts

// IdentityInvalidator drops cached identities. It is satisfied by the auth
// package's identity resolver.
type IdentityInvalidator interface {
	Invalidate(userID sec.UserID)
}

// Service implements account administration use cases.
type Service struct {
	repository  Repository
	invalidator IdentityInvalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new account [Service]. invalidator may be nil in
// processes that do not cache identities (the CLI).
func NewService(repository Repository, invalidator IdentityInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repository:  repository,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// # Creation

// CreateInput carries everything needed to create an account.
type CreateInput struct {
	Email    string
	Phone    string
	Password string
	FullName string
	Role     sec.Role
	Scopes   Scopes
}

/*
Create validates and persists an account with any role.

Description: The role decides which scoping identifiers are mandatory; any
identifier the role does not use must be absent. The identifiers must exist
and nest (unit in church, kudumbakutayima in unit, member in church).

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Account: The created account
  - error: Validation, Unprocessable (scope chain), Conflict (email/phone taken)
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Account, error) {
	input.Email = NormalizeEmail(input.Email)
	input.Phone = NormalizePhone(input.Phone)

	if err := validateCreate(input); err != nil {
		return nil, err
	}

	consistent, err := service.repository.ScopesConsistent(context, input.Scopes)
	if err != nil {
		return nil, fmt.Errorf("account_service_scope_check_failed: %w", err)
	}
	if !consistent {
		return nil, apperr.Unprocessable("Scoping identifiers do not exist or do not belong together")
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, validate.RequiredError(FieldPassword, "Password is too long")
	}
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	now := service.now().UTC()
	account := &Account{
		ID:                uuid.New(),
		Email:             pointer.NonZero(input.Email),
		Phone:             pointer.NonZero(input.Phone),
		PasswordHash:      passwordHash,
		FullName:          input.FullName,
		Role:              input.Role,
		ChurchID:          pointer.NonZero(input.Scopes.ChurchID),
		UnitID:            pointer.NonZero(input.Scopes.UnitID),
		KudumbakutayimaID: pointer.NonZero(input.Scopes.KudumbakutayimaID),
		MemberID:          pointer.NonZero(input.Scopes.MemberID),
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := service.repository.Create(context, account); err != nil {
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "account_created",
		slog.String("account_id", account.ID),
		slog.String("role", account.Role.String()),
	)

	return account, nil
}

/*
CreateInChurch creates an account on behalf of a church administrator.

Only [ChurchAssignableRoles] may be granted and the account is pinned to
churchID: an omitted church is filled in, a different one is rejected.
*/
func (service *Service) CreateInChurch(context context.Context, churchID string, input CreateInput) (*Account, error) {
	if !slices.Contains(ChurchAssignableRoles, input.Role) {
		return nil, validate.RequiredError(FieldRole, "Must be one of: unit_admin, kudumbakutayima_admin, member")
	}

	switch input.Scopes.ChurchID {
	case "":
		input.Scopes.ChurchID = churchID
	case churchID:
	default:
		return nil, validate.RequiredError(FieldChurchID, "Must match the church in the path")
	}

	return service.Create(context, input)
}

// BootstrapSuperAdmin creates a super admin account (used by the CLI).
func (service *Service) BootstrapSuperAdmin(context context.Context, email, password, fullName string) (*Account, error) {
	return service.Create(context, CreateInput{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     sec.RoleSuperAdmin,
	})
}

func validateCreate(input CreateInput) error {
	validator := &validate.Validator{}

	validator.Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, 120).
		MinLen(FieldPassword, input.Password, sec.MinPasswordLength).
		MaxLen(FieldPassword, input.Password, sec.MaxPasswordLength).
		Custom(FieldEmail, input.Email == "" && input.Phone == "", "Either email or phone is required")

	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.Phone != "" {
		validator.Phone(FieldPhone, input.Phone)
	}

	required, known := requiredScopes[input.Role]
	if !known {
		validator.OneOf(FieldRole, input.Role.String(), sec.RoleStrings()...)
		return validator.Err()
	}

	for _, scope := range input.Scopes.values() {
		field, value := scope.field, scope.value
		needed := slices.Contains(required, field)
		switch {
		case needed && value == "":
			validator.Custom(field, true, "This field is required for role "+input.Role.String())
		case !needed && value != "":
			validator.Custom(field, true, "Must not be set for role "+input.Role.String())
		case value != "":
			validator.UUID(field, value)
		}
	}

	return validator.Err()
}

// # Queries

// List returns a page of accounts.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Account, int, error) {
	limit, offset := params.Window()
	accounts, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return accounts, total, nil
}

// # Status

// SetActive enables or disables an account and drops its cached identity so
// the change applies to the very next request.
func (service *Service) SetActive(context context.Context, id string, active bool) (*Account, error) {
	account, err := service.repository.SetActive(context, id, active)
	if err != nil {
		return nil, fmt.Errorf("account_service_set_active_failed: %w", err)
	}

	if service.invalidator != nil {
		service.invalidator.Invalidate(sec.UserID(account.ID))
	}

	service.logger.InfoContext(context, "account_status_changed",
		slog.String("account_id", account.ID),
		slog.Bool("active", active),
	)

	return account, nil
}
