// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package campaign

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
	"github.com/taibuivan/churchwallet/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for campaigns.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new campaign [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// # Inputs

// CreateInput carries the fields of a new campaign. Dates are YYYY-MM-DD.
type CreateInput struct {
	Title        string
	Description  string
	Kind         string
	TargetAmount *decimal.Decimal
	StartDate    string
	EndDate      string
	Status       string // Defaults to draft
}

// UpdateInput is a partial update; nil fields are left unchanged. An empty
// EndDate or Description clears it.
type UpdateInput struct {
	Title        *string
	Description  *string
	Kind         *string
	TargetAmount *decimal.Decimal
	StartDate    *string
	EndDate      *string
	Status       *string
}

// # Queries

// List returns a page of the church's campaigns.
func (service *Service) List(context context.Context, churchID string, filter Filter, params pagination.Params) ([]*Campaign, int, error) {
	validator := &validate.Validator{}
	for _, status := range filter.Status {
		validator.OneOf(FieldStatus, string(status), statuses...)
	}
	if filter.Kind != "" {
		validator.OneOf(FieldKind, string(filter.Kind), kinds...)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	limit, offset := params.Window()
	campaigns, total, err := service.repository.List(context, churchID, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("campaign_service_list_failed: %w", err)
	}
	return campaigns, total, nil
}

// Get returns a single campaign of the church.
func (service *Service) Get(context context.Context, churchID, id string) (*Campaign, error) {
	campaign, err := service.repository.FindByID(context, churchID, id)
	if err != nil {
		return nil, fmt.Errorf("campaign_service_get_failed: %w", err)
	}
	return campaign, nil
}

// # Mutations

/*
Create validates and stores a campaign of churchID.

Description: Fundraising campaigns need a positive target; spiritual ones
must not carry one. The end date, when set, is not before the start.

Returns:
  - *Campaign: The stored campaign (raised amount zero)
  - error: Validation, or NotFound when the church is gone
*/
func (service *Service) Create(context context.Context, churchID string, input CreateInput) (*Campaign, error) {
	validator := &validate.Validator{}

	now := service.now().UTC()
	campaign := &Campaign{
		ID:           uuid.New(),
		ChurchID:     churchID,
		Title:        strings.TrimSpace(input.Title),
		Description:  pointer.Trimmed(input.Description),
		Kind:         Kind(strings.TrimSpace(input.Kind)),
		TargetAmount: input.TargetAmount,
		EndDate:      validator.Date(FieldEndDate, strings.TrimSpace(input.EndDate)),
		Status:       Status(pointer.Fallback(pointer.Trimmed(input.Status), string(StatusDraft))),
		RaisedAmount: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	validator.Required(FieldStartDate, input.StartDate)
	if start := validator.Date(FieldStartDate, strings.TrimSpace(input.StartDate)); start != nil {
		campaign.StartDate = *start
	}

	if err := validateCampaign(validator, campaign); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, campaign); err != nil {
		return nil, fmt.Errorf("campaign_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "campaign_created",
		slog.String("campaign_id", campaign.ID),
		slog.String("church_id", churchID),
		slog.String("kind", string(campaign.Kind)),
	)

	return campaign, nil
}

/*
Update applies a partial update to a campaign of churchID.

Description: Switching a campaign to spiritual drops its target.

Returns:
  - *Campaign: The updated campaign
  - error: NotFound or Validation
*/
func (service *Service) Update(context context.Context, churchID, id string, input UpdateInput) (*Campaign, error) {
	campaign, err := service.repository.FindByID(context, churchID, id)
	if err != nil {
		return nil, fmt.Errorf("campaign_service_update_lookup_failed: %w", err)
	}

	validator := &validate.Validator{}

	if input.Title != nil {
		campaign.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		campaign.Description = pointer.Trimmed(*input.Description)
	}
	if input.Kind != nil {
		campaign.Kind = Kind(strings.TrimSpace(*input.Kind))
		if campaign.Kind == KindSpiritual && input.TargetAmount == nil {
			campaign.TargetAmount = nil
		}
	}
	if input.TargetAmount != nil {
		campaign.TargetAmount = input.TargetAmount
	}
	if input.StartDate != nil {
		validator.Required(FieldStartDate, *input.StartDate)
		if start := validator.Date(FieldStartDate, strings.TrimSpace(*input.StartDate)); start != nil {
			campaign.StartDate = *start
		}
	}
	if input.EndDate != nil {
		campaign.EndDate = validator.Date(FieldEndDate, strings.TrimSpace(*input.EndDate))
	}
	if input.Status != nil {
		campaign.Status = Status(strings.TrimSpace(*input.Status))
	}

	if err := validateCampaign(validator, campaign); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, campaign); err != nil {
		return nil, fmt.Errorf("campaign_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "campaign_updated",
		slog.String("campaign_id", campaign.ID),
		slog.String("status", string(campaign.Status)),
	)
	return campaign, nil
}

// Delete soft-deletes a campaign of churchID.
func (service *Service) Delete(context context.Context, churchID, id string) error {
	if err := service.repository.SoftDelete(context, churchID, id); err != nil {
		return fmt.Errorf("campaign_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(context, "campaign_deleted",
		slog.String("campaign_id", id),
		slog.String("church_id", churchID),
	)
	return nil
}

func validateCampaign(validator *validate.Validator, campaign *Campaign) error {
	validator.Required(FieldTitle, campaign.Title).
		MaxLen(FieldTitle, campaign.Title, maxTitleLength).
		OneOf(FieldKind, string(campaign.Kind), kinds...).
		OneOf(FieldStatus, string(campaign.Status), statuses...)

	switch campaign.Kind {
	case KindFundraising:
		if campaign.TargetAmount == nil {
			validator.Custom(FieldTargetAmount, true, "Required for fundraising campaigns")
		} else {
			validator.Positive(FieldTargetAmount, *campaign.TargetAmount).
				MaxScale(FieldTargetAmount, *campaign.TargetAmount, 2)
		}
	case KindSpiritual:
		validator.Custom(FieldTargetAmount, campaign.TargetAmount != nil, "Only fundraising campaigns carry a target")
	}

	if !campaign.StartDate.IsZero() {
		validator.NotBefore(FieldEndDate, campaign.EndDate, campaign.StartDate)
	}

	return validator.Err()
}
