// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/pkg/pagination"
	"github.com/taibuivan/churchwallet/pkg/pointer"
	"github.com/taibuivan/churchwallet/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the ledger.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new ledger [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// # Inputs

// CreateInput carries a new ledger entry. OccurredOn is YYYY-MM-DD and
// defaults to today.
type CreateInput struct {
	UnitID      string
	MemberID    string
	CampaignID  string
	DuesID      string
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description string
	Reference   string
	OccurredOn  string
}

// # Queries

// List returns a page of the ledger selected by the filter.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Transaction, int, error) {
	if err := validateFilter(filter.Type, filter.Category, filter.From, filter.To); err != nil {
		return nil, 0, err
	}

	limit, offset := params.Window()
	transactions, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("transaction_service_list_failed: %w", err)
	}
	return transactions, total, nil
}

// Summary totals a church's ledger over an optional inclusive date range.
func (service *Service) Summary(context context.Context, churchID string, from, to *time.Time) (*Summary, error) {
	if err := validateFilter("", "", from, to); err != nil {
		return nil, err
	}

	summary, err := service.repository.Summary(context, churchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("transaction_service_summary_failed: %w", err)
	}
	return summary, nil
}

// # Mutations

/*
Record validates and appends a ledger entry of churchID.

Description: Dues and campaign categories are income. A dues record may only
be named by a dues payment, and a campaign entry must name its campaign. Every
referenced unit, member and campaign must belong to the church.

Parameters:
  - context: context.Context
  - churchID: string (UUID)
  - recordedBy: string (account ID of the caller)
  - input: CreateInput

Returns:
  - *Transaction: The stored entry
  - error: Validation, Unprocessable (foreign reference), or the settlement
    errors of the repository
*/
func (service *Service) Record(context context.Context, churchID, recordedBy string, input CreateInput) (*Transaction, error) {
	validator := &validate.Validator{}

	now := service.now().UTC()
	today := now.Truncate(24 * time.Hour)

	transaction := &Transaction{
		ID:          uuid.New(),
		ChurchID:    churchID,
		UnitID:      pointer.Trimmed(input.UnitID),
		MemberID:    pointer.Trimmed(input.MemberID),
		CampaignID:  pointer.Trimmed(input.CampaignID),
		DuesID:      pointer.Trimmed(input.DuesID),
		Type:        Type(strings.TrimSpace(input.Type)),
		Category:    Category(strings.TrimSpace(input.Category)),
		Amount:      input.Amount,
		Description: pointer.Trimmed(input.Description),
		Reference:   pointer.Trimmed(input.Reference),
		OccurredOn:  today,
		RecordedBy:  recordedBy,
		CreatedAt:   now,
	}
	if occurred := validator.Date(FieldOccurredOn, strings.TrimSpace(input.OccurredOn)); occurred != nil {
		transaction.OccurredOn = *occurred
	}

	if err := validateTransaction(validator, transaction, today); err != nil {
		return nil, err
	}

	consistent, err := service.repository.ReferencesConsistent(context, churchID,
		transaction.UnitID, transaction.MemberID, transaction.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("transaction_service_references_failed: %w", err)
	}
	if !consistent {
		return nil, apperr.Unprocessable("Unit, member and campaign must belong to the church")
	}

	if err := service.repository.Create(context, transaction); err != nil {
		return nil, fmt.Errorf("transaction_service_record_failed: %w", err)
	}

	service.logger.InfoContext(context, "transaction_recorded",
		slog.String("transaction_id", transaction.ID),
		slog.String("church_id", churchID),
		slog.String("type", string(transaction.Type)),
		slog.String("category", string(transaction.Category)),
		slog.String("amount", transaction.Amount.StringFixed(2)),
	)
	if transaction.DuesID != nil {
		service.logger.InfoContext(context, "dues_settled",
			slog.String("dues_id", *transaction.DuesID),
			slog.String("transaction_id", transaction.ID),
		)
	}

	return transaction, nil
}

// # Validation

func validateTransaction(validator *validate.Validator, transaction *Transaction, today time.Time) error {
	validator.OneOf(FieldType, string(transaction.Type), types...).
		OneOf(FieldCategory, string(transaction.Category), categories...).
		Positive(FieldAmount, transaction.Amount).
		MaxScale(FieldAmount, transaction.Amount, 2).
		Custom(FieldOccurredOn, transaction.OccurredOn.After(today), "Must not be in the future")

	switch transaction.Category {
	case CategoryDues:
		validator.Custom(FieldType, transaction.Type != TypeIncome, "Dues payments are income")
	case CategoryCampaign:
		validator.Custom(FieldType, transaction.Type != TypeIncome, "Campaign contributions are income").
			Custom(FieldCampaignID, transaction.CampaignID == nil, "Required for campaign contributions")
	}
	if transaction.DuesID != nil {
		validator.UUID(FieldDuesID, *transaction.DuesID).
			Custom(FieldDuesID, transaction.Category != CategoryDues, "Only dues payments may settle dues")
	}

	references := []struct {
		field string
		id    *string
	}{
		{FieldUnitID, transaction.UnitID},
		{FieldMemberID, transaction.MemberID},
		{FieldCampaignID, transaction.CampaignID},
	}
	for _, reference := range references {
		if reference.id != nil {
			validator.UUID(reference.field, *reference.id)
		}
	}

	if transaction.Description != nil {
		validator.MaxLen(FieldDescription, *transaction.Description, maxDescriptionLength)
	}
	if transaction.Reference != nil {
		validator.MaxLen(FieldReference, *transaction.Reference, maxReferenceLength)
	}

	return validator.Err()
}

func validateFilter(kind Type, category Category, from, to *time.Time) error {
	validator := &validate.Validator{}

	if kind != "" {
		validator.OneOf(FieldType, string(kind), types...)
	}
	if category != "" {
		validator.OneOf(FieldCategory, string(category), categories...)
	}
	if from != nil {
		validator.NotBefore(FieldTo, to, *from)
	}

	return validator.Err()
}
