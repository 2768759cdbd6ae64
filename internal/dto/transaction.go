package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequestDTO struct {
	Utorid       string           `json:"utorid" validate:"required,alphanum,min=7,max=8"`
	Type         string           `json:"type" validate:"required,oneof=purchase adjustment"`
	Spent        *decimal.Decimal `json:"spent" validate:"required_if=Type purchase,omitempty,gt=0"`
	Amount       *int             `json:"amount" validate:"required_if=Type adjustment"`
	RelatedID    *int             `json:"relatedId" validate:"required_if=Type adjustment"`
	PromotionIDs []int            `json:"promotionIds"`
	Remark       string           `json:"remark"`
}

type CreateRedemptionRequestDTO struct {
	Type   string `json:"type" validate:"required,oneof=redemption"`
	Amount int    `json:"amount" validate:"required,gt=0"`
	Remark string `json:"remark"`
}

type TransferRequestDTO struct {
	Type   string `json:"type" validate:"required,oneof=transfer"`
	Amount int    `json:"amount" validate:"required,gt=0"`
	Remark string `json:"remark"`
}

type SuspiciousRequestDTO struct {
	Suspicious *bool `json:"suspicious" validate:"required"`
}

type ProcessedRequestDTO struct {
	Processed bool `json:"processed" validate:"required,eq=true"`
}

type TransactionResponseDTO struct {
	ID           int              `json:"id"`
	Utorid       string           `json:"utorid"`
	Type         string           `json:"type"`
	Spent        *decimal.Decimal `json:"spent,omitempty"`
	Amount       int              `json:"amount"`
	Redeemed     *int             `json:"redeemed,omitempty"`
	RelatedID    *int             `json:"relatedId,omitempty"`
	Suspicious   *bool            `json:"suspicious,omitempty"`
	Remark       string           `json:"remark"`
	CreatedBy    string           `json:"createdBy"`
	ProcessedBy  *string          `json:"processedBy,omitempty"`
	PromotionIDs []int            `json:"promotionIds"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type ListTransactionsResponseDTO struct {
	Count   int                      `json:"count"`
	Results []TransactionResponseDTO `json:"results"`
}
