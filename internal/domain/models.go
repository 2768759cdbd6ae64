package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/campuspoints/campuspoints/pkg/clearance"
)

type TransactionType string

const (
	TrxPurchase   TransactionType = "purchase"
	TrxAdjustment TransactionType = "adjustment"
	TrxTransfer   TransactionType = "transfer"
	TrxRedemption TransactionType = "redemption"
	TrxEvent      TransactionType = "event"
)

type PromotionType string

const (
	PromoAutomatic PromotionType = "automatic"
	PromoOneTime   PromotionType = "one-time"
)

type User struct {
	ID           int            `db:"id"`
	Utorid       string         `db:"utorid"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Role         clearance.Role `db:"role"`
	Points       int            `db:"points"`
	Verified     bool           `db:"verified"`
	Suspicious   bool           `db:"suspicious"`
	CreatedAt    time.Time      `db:"created_at"`
	LastLogin    *time.Time     `db:"last_login"`

	// Ids of promotions this user has already consumed.
	UsedPromotionIDs []int
}

// Transaction is an append-only ledger row. Amount is never mutated after
// creation; the only permitted patches are the suspicious flag and the
// one-shot processed fields of a redemption.
type Transaction struct {
	ID          int              `db:"id"`
	Utorid      string           `db:"utorid"`
	Type        TransactionType  `db:"type"`
	Spent       *decimal.Decimal `db:"spent"`
	Amount      int              `db:"amount"`
	Redeemed    *int             `db:"redeemed"`
	RelatedID   *int             `db:"related_id"`
	Suspicious  bool             `db:"suspicious"`
	Remark      string           `db:"remark"`
	CreatedBy   string           `db:"created_by"`
	ProcessedBy *string          `db:"processed_by"`
	CreatedAt   time.Time        `db:"created_at"`

	PromotionIDs []int
}

func (t *Transaction) Processed() bool {
	return t.ProcessedBy != nil
}

type Promotion struct {
	ID          int              `db:"id"`
	Name        string           `db:"name"`
	Description string           `db:"description"`
	Type        PromotionType    `db:"type"`
	StartTime   time.Time        `db:"start_time"`
	EndTime     time.Time        `db:"end_time"`
	MinSpending *decimal.Decimal `db:"min_spending"`
	Rate        *decimal.Decimal `db:"rate"`
	Points      *int             `db:"points"`
	CreatedAt   time.Time        `db:"created_at"`
}

// PromotionBonus is a resolved promotion together with the bonus points it
// contributes to a purchase or adjustment.
type PromotionBonus struct {
	Promotion Promotion
	Points    int
}

type Event struct {
	ID            int       `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	Location      string    `db:"location"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	Capacity      *int      `db:"capacity"`
	PointsRemain  int       `db:"points_remain"`
	PointsAwarded int       `db:"points_awarded"`
	Published     bool      `db:"published"`
	CreatedAt     time.Time `db:"created_at"`

	Organizers []EventMember
	Guests     []EventMember
}

type EventMember struct {
	ID     int    `db:"id"`
	Utorid string `db:"utorid"`
	Name   string `db:"name"`
}

func (e *Event) IsOrganizer(utorid string) bool {
	for _, o := range e.Organizers {
		if o.Utorid == utorid {
			return true
		}
	}
	return false
}

func (e *Event) IsGuest(utorid string) bool {
	for _, g := range e.Guests {
		if g.Utorid == utorid {
			return true
		}
	}
	return false
}

func (e *Event) Full() bool {
	return e.Capacity != nil && len(e.Guests) >= *e.Capacity
}

type TransactionFilter struct {
	Name        string
	CreatedBy   string
	Utorid      string
	Suspicious  *bool
	PromotionID *int
	Type        TransactionType
	RelatedID   *int
	Amount      *int
	Operator    string // "gte" or "lte", only meaningful with Amount
	Page        int
	Limit       int
}

type UserFilter struct {
	Name     string
	Role     clearance.Role
	Verified *bool
	Page     int
	Limit    int
}

type PromotionFilter struct {
	Name  string
	Type  PromotionType
	Page  int
	Limit int
}

type EventFilter struct {
	Name      string
	Location  string
	Published *bool
	Page      int
	Limit     int
}
