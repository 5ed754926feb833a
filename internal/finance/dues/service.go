// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

import (
	"context"
	"fmt"

	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/pkg/pagination"
)

// Service serves dues listings.
type Service struct {
	repository Repository
}

// NewService constructs a new dues [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns a page of dues selected by the filter.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Dues, int, error) {
	validator := &validate.Validator{}
	if filter.Period != "" {
		validator.Period(FieldPeriod, filter.Period)
	}
	for _, status := range filter.Status {
		validator.OneOf(FieldStatus, string(status), statuses...)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	limit, offset := params.Window()
	records, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dues_service_list_failed: %w", err)
	}
	return records, total, nil
}
