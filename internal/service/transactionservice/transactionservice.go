package transactionservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
	"github.com/campuspoints/campuspoints/pkg/clearance"
	"github.com/campuspoints/campuspoints/pkg/points"
)

//go:generate mockgen -source=transactionservice.go -destination=mock_transactionservice.go -package=transactionservice

type UserRepo interface {
	GetByUtorid(ctx context.Context, utorid string) (*domain.User, error)
	IncrementPoints(ctx context.Context, utorid string, delta int) (int, error)
}

type TrxRepo interface {
	Create(ctx context.Context, trx *domain.Transaction) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int) (*domain.Transaction, error)
	SetSuspicious(ctx context.Context, id int, suspicious bool) error
	MarkProcessed(ctx context.Context, id int, processedBy string, relatedID int) error
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
	Count(ctx context.Context, filter domain.TransactionFilter) (int, error)
}

type PromoResolver interface {
	Resolve(ctx context.Context, promotionIDs []int, spent *decimal.Decimal, consumer *domain.User) ([]domain.PromotionBonus, error)
	Consume(ctx context.Context, userID int, promotionIDs []int) error
}

// Service is the ledger transaction engine. Every operation evaluates its
// preconditions before any write, then applies the transaction row and the
// balance delta inside one database transaction.
type Service struct {
	userRepo  UserRepo
	trxRepo   TrxRepo
	promos    PromoResolver
	txManager pg.TXManager
}

func New(userRepo UserRepo, trxRepo TrxRepo, promos PromoResolver, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:  userRepo,
		trxRepo:   trxRepo,
		promos:    promos,
		txManager: txManager,
	}
}

var (
	ErrInsufficientClearance = errors.New("insufficient clearance")
	ErrUserNotFound          = errors.New("user not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrRelatedMismatch       = errors.New("related transaction does not belong to customer")
	ErrSelfTransfer          = errors.New("cannot transfer points to yourself")
	ErrNotVerified           = errors.New("user is not verified")
	ErrInsufficientPoints    = errors.New("insufficient points")
	ErrNotRedemption         = errors.New("transaction type must be redemption")
	ErrAlreadyProcessed      = errors.New("transaction has already been processed")
)

type PurchaseInput struct {
	Utorid       string
	Spent        decimal.Decimal
	PromotionIDs []int
	Remark       string
}

// CreatePurchase credits ceil(spent*4) base points plus promotion bonuses to
// the customer. A suspicious cashier still produces a row with the full
// computed amount, but the credited delta is forced to zero so the points can
// be reconciled later via the suspicious toggle.
func (s *Service) CreatePurchase(ctx context.Context, actorUtorid string, in PurchaseInput) (*domain.Transaction, error) {
	actor, err := s.loadUser(ctx, actorUtorid)
	if err != nil {
		return nil, err
	}
	if !clearance.OneOf(actor.Role, clearance.Cashier, clearance.Manager, clearance.Superuser) {
		return nil, ErrInsufficientClearance
	}

	customer, err := s.loadUser(ctx, in.Utorid)
	if err != nil {
		return nil, err
	}

	resolved, err := s.promos.Resolve(ctx, in.PromotionIDs, &in.Spent, customer)
	if err != nil {
		return nil, err
	}

	amount := points.CalcBase(in.Spent)
	for _, bonus := range resolved {
		amount += bonus.Points
	}

	credited := amount
	if actor.Suspicious {
		credited = 0
	}

	trx := &domain.Transaction{
		Utorid:       customer.Utorid,
		Type:         domain.TrxPurchase,
		Spent:        &in.Spent,
		Amount:       amount,
		Suspicious:   actor.Suspicious,
		Remark:       in.Remark,
		CreatedBy:    actor.Utorid,
		PromotionIDs: in.PromotionIDs,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.promos.Consume(ctx, customer.ID, in.PromotionIDs); err != nil {
			return err
		}
		if _, err := s.trxRepo.Create(ctx, trx); err != nil {
			return err
		}
		_, err := s.userRepo.IncrementPoints(ctx, customer.Utorid, credited)
		return err
	})
	if err != nil {
		zap.L().Error("failed to apply purchase", zap.Error(err))
		return nil, err
	}

	zap.L().Info("purchase recorded",
		zap.String("utorid", customer.Utorid),
		zap.Int("amount", amount),
		zap.Int("credited", credited),
		zap.Bool("suspicious", actor.Suspicious),
	)
	return trx, nil
}

type AdjustmentInput struct {
	Utorid       string
	Amount       int
	RelatedID    int
	PromotionIDs []int
	Remark       string
}

// CreateAdjustment applies a signed correction against an earlier
// transaction of the same customer. Promotion bonuses are computed from the
// related transaction's spend.
func (s *Service) CreateAdjustment(ctx context.Context, actorUtorid string, in AdjustmentInput) (*domain.Transaction, error) {
	actor, err := s.loadUser(ctx, actorUtorid)
	if err != nil {
		return nil, err
	}
	if !clearance.AtLeast(actor.Role, clearance.Manager) {
		return nil, ErrInsufficientClearance
	}

	customer, err := s.loadUser(ctx, in.Utorid)
	if err != nil {
		return nil, err
	}

	related, err := s.trxRepo.GetByID(ctx, in.RelatedID)
	if err != nil {
		return nil, err
	}
	if related == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrTransactionNotFound, in.RelatedID)
	}
	if related.Utorid != customer.Utorid {
		return nil, fmt.Errorf("%w: ID=%d", ErrRelatedMismatch, in.RelatedID)
	}

	// No spend on the adjustment itself: bonuses derive from the related
	// transaction's spend and the min-spend check does not apply.
	resolved, err := s.promos.Resolve(ctx, in.PromotionIDs, nil, customer)
	if err != nil {
		return nil, err
	}

	amount := in.Amount
	if related.Spent != nil {
		for _, bonus := range resolved {
			if bonus.Promotion.Rate != nil {
				amount += points.Calc(*related.Spent, *bonus.Promotion.Rate)
			}
		}
	}

	relatedID := in.RelatedID
	trx := &domain.Transaction{
		Utorid:       customer.Utorid,
		Type:         domain.TrxAdjustment,
		Amount:       amount,
		RelatedID:    &relatedID,
		Remark:       in.Remark,
		CreatedBy:    actor.Utorid,
		PromotionIDs: in.PromotionIDs,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.promos.Consume(ctx, customer.ID, in.PromotionIDs); err != nil {
			return err
		}
		if _, err := s.trxRepo.Create(ctx, trx); err != nil {
			return err
		}
		_, err := s.userRepo.IncrementPoints(ctx, customer.Utorid, amount)
		return err
	})
	if err != nil {
		zap.L().Error("failed to apply adjustment", zap.Error(err))
		return nil, err
	}
	return trx, nil
}

// Transfer moves points between two users. Both ledger rows and both balance
// deltas commit in one unit: a failure anywhere rolls the whole transfer back.
func (s *Service) Transfer(ctx context.Context, actorUtorid, receiverUtorid string, amount int, remark string) (*domain.Transaction, *domain.Transaction, error) {
	if receiverUtorid == actorUtorid {
		return nil, nil, ErrSelfTransfer
	}

	sender, err := s.loadUser(ctx, actorUtorid)
	if err != nil {
		return nil, nil, err
	}
	receiver, err := s.loadUser(ctx, receiverUtorid)
	if err != nil {
		return nil, nil, err
	}
	if !sender.Verified {
		return nil, nil, ErrNotVerified
	}
	if sender.Points < amount {
		return nil, nil, fmt.Errorf("%w: current balance: %d points", ErrInsufficientPoints, sender.Points)
	}

	debit := &domain.Transaction{
		Utorid:    sender.Utorid,
		Type:      domain.TrxTransfer,
		Amount:    amount,
		RelatedID: &receiver.ID,
		Remark:    remark,
		CreatedBy: sender.Utorid,
	}
	credit := &domain.Transaction{
		Utorid:    receiver.Utorid,
		Type:      domain.TrxTransfer,
		Amount:    amount,
		RelatedID: &sender.ID,
		Remark:    remark,
		CreatedBy: sender.Utorid,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.trxRepo.Create(ctx, debit); err != nil {
			return err
		}
		if _, err := s.trxRepo.Create(ctx, credit); err != nil {
			return err
		}
		if _, err := s.userRepo.IncrementPoints(ctx, sender.Utorid, -amount); err != nil {
			return err
		}
		_, err := s.userRepo.IncrementPoints(ctx, receiver.Utorid, amount)
		return err
	})
	if err != nil {
		zap.L().Error("failed to apply transfer", zap.Error(err))
		return nil, nil, err
	}

	zap.L().Info("transfer recorded",
		zap.String("sender", sender.Utorid),
		zap.String("receiver", receiver.Utorid),
		zap.Int("amount", amount),
	)
	return debit, credit, nil
}

// CreateRedemption records the customer's intent to redeem points. The
// balance is untouched until a cashier processes the redemption.
func (s *Service) CreateRedemption(ctx context.Context, actorUtorid string, amount int, remark string) (*domain.Transaction, error) {
	customer, err := s.loadUser(ctx, actorUtorid)
	if err != nil {
		return nil, err
	}
	if !customer.Verified {
		return nil, ErrNotVerified
	}
	if customer.Points < amount {
		return nil, fmt.Errorf("%w: current balance: %d points", ErrInsufficientPoints, customer.Points)
	}

	redeemed := amount
	trx := &domain.Transaction{
		Utorid:    customer.Utorid,
		Type:      domain.TrxRedemption,
		Amount:    amount,
		Redeemed:  &redeemed,
		Remark:    remark,
		CreatedBy: customer.Utorid,
	}
	if _, err := s.trxRepo.Create(ctx, trx); err != nil {
		zap.L().Error("failed to create redemption", zap.Error(err))
		return nil, err
	}
	return trx, nil
}

// ProcessRedemption finalizes a pending redemption: the processor is set
// exactly once and the owner's balance is debited in the same unit.
func (s *Service) ProcessRedemption(ctx context.Context, actorUtorid string, trxID int) (*domain.Transaction, error) {
	actor, err := s.loadUser(ctx, actorUtorid)
	if err != nil {
		return nil, err
	}
	if !clearance.AtLeast(actor.Role, clearance.Cashier) {
		return nil, ErrInsufficientClearance
	}

	trx, err := s.trxRepo.GetByID(ctx, trxID)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrTransactionNotFound, trxID)
	}
	if trx.Type != domain.TrxRedemption {
		return nil, ErrNotRedemption
	}
	if trx.Processed() {
		return nil, ErrAlreadyProcessed
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.trxRepo.MarkProcessed(ctx, trx.ID, actor.Utorid, actor.ID); err != nil {
			return err
		}
		_, err := s.userRepo.IncrementPoints(ctx, trx.Utorid, -trx.Amount)
		return err
	})
	if err != nil {
		zap.L().Error("failed to process redemption", zap.Error(err))
		return nil, err
	}

	processedBy := actor.Utorid
	relatedID := actor.ID
	redeemed := trx.Amount
	trx.ProcessedBy = &processedBy
	trx.RelatedID = &relatedID
	trx.Redeemed = &redeemed
	return trx, nil
}

// SetSuspicious toggles the flag on a transaction, reversing or restoring
// the credited points. Toggling twice is balance-neutral.
func (s *Service) SetSuspicious(ctx context.Context, trxID int, suspicious bool) (*domain.Transaction, error) {
	trx, err := s.trxRepo.GetByID(ctx, trxID)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrTransactionNotFound, trxID)
	}

	delta := 0
	switch {
	case !trx.Suspicious && suspicious:
		delta = -trx.Amount
	case trx.Suspicious && !suspicious:
		delta = trx.Amount
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if delta != 0 {
			if _, err := s.userRepo.IncrementPoints(ctx, trx.Utorid, delta); err != nil {
				return err
			}
		}
		return s.trxRepo.SetSuspicious(ctx, trx.ID, suspicious)
	})
	if err != nil {
		zap.L().Error("failed to toggle suspicious flag", zap.Error(err))
		return nil, err
	}

	trx.Suspicious = suspicious
	return trx, nil
}

func (s *Service) Get(ctx context.Context, trxID int) (*domain.Transaction, error) {
	trx, err := s.trxRepo.GetByID(ctx, trxID)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrTransactionNotFound, trxID)
	}
	return trx, nil
}

func (s *Service) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	count, err := s.trxRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	trxs, err := s.trxRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return trxs, count, nil
}

func (s *Service) loadUser(ctx context.Context, utorid string) (*domain.User, error) {
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: utorid=%s", ErrUserNotFound, utorid)
	}
	return user, nil
}
