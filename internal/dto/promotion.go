package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionRequestDTO struct {
	Name        string           `json:"name" validate:"required,min=1,max=100"`
	Description string           `json:"description"`
	Type        string           `json:"type" validate:"required,oneof=automatic one-time"`
	StartTime   time.Time        `json:"startTime" validate:"required"`
	EndTime     time.Time        `json:"endTime" validate:"required"`
	MinSpending *decimal.Decimal `json:"minSpending"`
	Rate        *decimal.Decimal `json:"rate"`
	Points      *int             `json:"points" validate:"omitempty,gte=0"`
}

type PromotionPatchDTO struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	Type        *string          `json:"type" validate:"omitempty,oneof=automatic one-time"`
	StartTime   *time.Time       `json:"startTime"`
	EndTime     *time.Time       `json:"endTime"`
	MinSpending *decimal.Decimal `json:"minSpending"`
	Rate        *decimal.Decimal `json:"rate"`
	Points      *int             `json:"points" validate:"omitempty,gte=0"`
}

type PromotionResponseDTO struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	StartTime   time.Time        `json:"startTime"`
	EndTime     time.Time        `json:"endTime"`
	MinSpending *decimal.Decimal `json:"minSpending,omitempty"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	Points      *int             `json:"points,omitempty"`
}

type ListPromotionsResponseDTO struct {
	Count   int                    `json:"count"`
	Results []PromotionResponseDTO `json:"results"`
}
