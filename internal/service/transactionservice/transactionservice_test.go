package transactionservice

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockTrxRepo, *MockPromoResolver, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	trxRepo := NewMockTrxRepo(ctrl)
	promos := NewMockPromoResolver(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(userRepo, trxRepo, promos, txManager)
	defer ctrl.Finish()
	return service, userRepo, trxRepo, promos, txManager
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func TestCreatePurchase(t *testing.T) {
	service, userRepo, trxRepo, promos, txManager := NewMock(t)

	cashier := &domain.User{ID: 1, Utorid: "cashier1", Role: "cashier"}
	suspect := &domain.User{ID: 2, Utorid: "suspect1", Role: "cashier", Suspicious: true}
	customer := &domain.User{ID: 3, Utorid: "student1", Role: "regular"}
	spent := decimal.NewFromInt(20)

	tests := []struct {
		name           string
		actor          string
		input          PurchaseInput
		prepareMock    func()
		expectedAmount int
		expectedError  error
	}{
		{
			name:  "20 dollars earn 80 base points",
			actor: "cashier1",
			input: PurchaseInput{Utorid: "student1", Spent: spent},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "cashier1").Return(cashier, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				promos.EXPECT().Resolve(gomock.Any(), nil, gomock.Any(), customer).Return(nil, nil)
				passthroughTx(txManager)
				promos.EXPECT().Consume(gomock.Any(), customer.ID, nil).Return(nil)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 10}, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", 80).Return(80, nil)
			},
			expectedAmount: 80,
		},
		{
			name:  "promotion bonus added on top of base points",
			actor: "cashier1",
			input: PurchaseInput{Utorid: "student1", Spent: spent, PromotionIDs: []int{7}},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "cashier1").Return(cashier, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				promos.EXPECT().Resolve(gomock.Any(), []int{7}, gomock.Any(), customer).Return(
					[]domain.PromotionBonus{{Promotion: domain.Promotion{ID: 7}, Points: 20}}, nil)
				passthroughTx(txManager)
				promos.EXPECT().Consume(gomock.Any(), customer.ID, []int{7}).Return(nil)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 11}, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", 100).Return(100, nil)
			},
			expectedAmount: 100,
		},
		{
			name:  "suspicious cashier records full amount but credits zero",
			actor: "suspect1",
			input: PurchaseInput{Utorid: "student1", Spent: spent},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "suspect1").Return(suspect, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				promos.EXPECT().Resolve(gomock.Any(), nil, gomock.Any(), customer).Return(nil, nil)
				passthroughTx(txManager)
				promos.EXPECT().Consume(gomock.Any(), customer.ID, nil).Return(nil)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 12}, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", 0).Return(0, nil)
			},
			expectedAmount: 80,
		},
		{
			name:  "regular user cannot record purchases",
			actor: "student1",
			input: PurchaseInput{Utorid: "student1", Spent: spent},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
			},
			expectedError: ErrInsufficientClearance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			trx, err := service.CreatePurchase(context.Background(), tt.actor, tt.input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedAmount, trx.Amount)
			assert.Equal(t, domain.TrxPurchase, trx.Type)
		})
	}
}

func TestCreatePurchaseSuspiciousRowKeepsFlag(t *testing.T) {
	service, userRepo, trxRepo, promos, txManager := NewMock(t)

	suspect := &domain.User{ID: 2, Utorid: "suspect1", Role: "cashier", Suspicious: true}
	customer := &domain.User{ID: 3, Utorid: "student1", Role: "regular"}

	userRepo.EXPECT().GetByUtorid(gomock.Any(), "suspect1").Return(suspect, nil)
	userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
	promos.EXPECT().Resolve(gomock.Any(), nil, gomock.Any(), customer).Return(nil, nil)
	passthroughTx(txManager)
	promos.EXPECT().Consume(gomock.Any(), customer.ID, nil).Return(nil)
	trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, trx *domain.Transaction) (*domain.Transaction, error) {
			assert.True(t, trx.Suspicious)
			return trx, nil
		},
	)
	userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", 0).Return(0, nil)

	trx, err := service.CreatePurchase(context.Background(), "suspect1", PurchaseInput{
		Utorid: "student1",
		Spent:  decimal.NewFromInt(20),
	})
	assert.NoError(t, err)
	assert.True(t, trx.Suspicious)
}

func TestCreateAdjustment(t *testing.T) {
	service, userRepo, trxRepo, promos, txManager := NewMock(t)

	manager := &domain.User{ID: 1, Utorid: "manager1", Role: "manager"}
	customer := &domain.User{ID: 3, Utorid: "student1", Role: "regular"}
	spent := decimal.NewFromInt(10)
	relatedTrx := &domain.Transaction{ID: 5, Utorid: "student1", Type: domain.TrxPurchase, Spent: &spent, Amount: 40}
	rate := decimal.NewFromInt(1)

	tests := []struct {
		name           string
		input          AdjustmentInput
		prepareMock    func()
		expectedAmount int
		expectedError  error
	}{
		{
			name:  "signed correction applied",
			input: AdjustmentInput{Utorid: "student1", Amount: -20, RelatedID: 5},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				trxRepo.EXPECT().GetByID(gomock.Any(), 5).Return(relatedTrx, nil)
				promos.EXPECT().Resolve(gomock.Any(), nil, nil, customer).Return(nil, nil)
				passthroughTx(txManager)
				promos.EXPECT().Consume(gomock.Any(), customer.ID, nil).Return(nil)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 20}, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", -20).Return(20, nil)
			},
			expectedAmount: -20,
		},
		{
			name:  "promotion bonus computed from the related spend",
			input: AdjustmentInput{Utorid: "student1", Amount: 5, RelatedID: 5, PromotionIDs: []int{7}},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				trxRepo.EXPECT().GetByID(gomock.Any(), 5).Return(relatedTrx, nil)
				promos.EXPECT().Resolve(gomock.Any(), []int{7}, nil, customer).Return(
					[]domain.PromotionBonus{{Promotion: domain.Promotion{ID: 7, Rate: &rate}}}, nil)
				passthroughTx(txManager)
				promos.EXPECT().Consume(gomock.Any(), customer.ID, []int{7}).Return(nil)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 21}, nil)
				// 5 + ceil(10*1) = 15
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", 15).Return(55, nil)
			},
			expectedAmount: 15,
		},
		{
			name:  "related transaction must belong to the customer",
			input: AdjustmentInput{Utorid: "student1", Amount: -20, RelatedID: 6},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				trxRepo.EXPECT().GetByID(gomock.Any(), 6).Return(&domain.Transaction{ID: 6, Utorid: "other001"}, nil)
			},
			expectedError: ErrRelatedMismatch,
		},
		{
			name:  "unknown related transaction",
			input: AdjustmentInput{Utorid: "student1", Amount: -20, RelatedID: 99},
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				trxRepo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedError: ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			trx, err := service.CreateAdjustment(context.Background(), "manager1", tt.input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedAmount, trx.Amount)
			assert.Equal(t, domain.TrxAdjustment, trx.Type)
		})
	}
}

func TestTransfer(t *testing.T) {
	service, userRepo, trxRepo, _, txManager := NewMock(t)

	sender := &domain.User{ID: 1, Utorid: "sender01", Role: "regular", Points: 500, Verified: true}
	receiver := &domain.User{ID: 2, Utorid: "receiver", Role: "regular", Points: 100, Verified: true}

	tests := []struct {
		name          string
		receiver      string
		amount        int
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "both rows and both deltas committed",
			receiver: "receiver",
			amount:   100,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "sender01").Return(sender, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "receiver").Return(receiver, nil)
				passthroughTx(txManager)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 30}, nil).Times(2)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "sender01", -100).Return(400, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "receiver", 100).Return(200, nil)
			},
		},
		{
			name:          "self transfer rejected",
			receiver:      "sender01",
			amount:        100,
			prepareMock:   func() {},
			expectedError: ErrSelfTransfer,
		},
		{
			name:     "insufficient balance leaves both ledgers untouched",
			receiver: "receiver",
			amount:   9999,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "sender01").Return(sender, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "receiver").Return(receiver, nil)
			},
			expectedError: ErrInsufficientPoints,
		},
		{
			name:     "unverified sender rejected",
			receiver: "receiver",
			amount:   100,
			prepareMock: func() {
				unverified := &domain.User{ID: 1, Utorid: "sender01", Role: "regular", Points: 500}
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "sender01").Return(unverified, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "receiver").Return(receiver, nil)
			},
			expectedError: ErrNotVerified,
		},
		{
			name:     "a failed credit rolls the debit back",
			receiver: "receiver",
			amount:   100,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "sender01").Return(sender, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "receiver").Return(receiver, nil)
				txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(context.Context) error) error {
						if err := fn(ctx); err != nil {
							return err
						}
						return nil
					},
				)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 31}, nil).Times(2)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "sender01", -100).Return(400, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "receiver", 100).Return(0, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			debit, credit, err := service.Transfer(context.Background(), "sender01", tt.receiver, tt.amount, "")
			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(err, ErrSelfTransfer) || errors.Is(err, ErrInsufficientPoints) || errors.Is(err, ErrNotVerified) {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.amount, debit.Amount)
			assert.Equal(t, tt.amount, credit.Amount)
			assert.Equal(t, receiver.ID, *debit.RelatedID)
			assert.Equal(t, sender.ID, *credit.RelatedID)
		})
	}
}

func TestCreateRedemption(t *testing.T) {
	service, userRepo, trxRepo, _, _ := NewMock(t)

	customer := &domain.User{ID: 3, Utorid: "student1", Role: "regular", Points: 200, Verified: true}

	tests := []struct {
		name          string
		amount        int
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "pending redemption does not touch the balance",
			amount: 150,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, trx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, 150, *trx.Redeemed)
						assert.Nil(t, trx.ProcessedBy)
						return trx, nil
					},
				)
			},
		},
		{
			name:   "amount above balance rejected",
			amount: 500,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(customer, nil)
			},
			expectedError: ErrInsufficientPoints,
		},
		{
			name:   "unverified user rejected",
			amount: 50,
			prepareMock: func() {
				unverified := &domain.User{ID: 3, Utorid: "student1", Role: "regular", Points: 200}
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student1").Return(unverified, nil)
			},
			expectedError: ErrNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			trx, err := service.CreateRedemption(context.Background(), "student1", tt.amount, "")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.TrxRedemption, trx.Type)
			assert.False(t, trx.Processed())
		})
	}
}

func TestProcessRedemption(t *testing.T) {
	service, userRepo, trxRepo, _, txManager := NewMock(t)

	cashier := &domain.User{ID: 1, Utorid: "cashier1", Role: "cashier"}
	processedBy := "other001"

	tests := []struct {
		name          string
		trxID         int
		prepareMock   func()
		expectedError error
	}{
		{
			name:  "processing debits the owner exactly once",
			trxID: 40,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "cashier1").Return(cashier, nil)
				trxRepo.EXPECT().GetByID(gomock.Any(), 40).Return(&domain.Transaction{
					ID: 40, Utorid: "student1", Type: domain.TrxRedemption, Amount: 150,
				}, nil)
				passthroughTx(txManager)
				trxRepo.EXPECT().MarkProcessed(gomock.Any(), 40, "cashier1", cashier.ID).Return(nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", -150).Return(50, nil)
			},
		},
		{
			name:  "second processing attempt rejected",
			trxID: 40,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "cashier1").Return(cashier, nil)
				trxRepo.EXPECT().GetByID(gomock.Any(), 40).Return(&domain.Transaction{
					ID: 40, Utorid: "student1", Type: domain.TrxRedemption, Amount: 150,
					ProcessedBy: &processedBy,
				}, nil)
			},
			expectedError: ErrAlreadyProcessed,
		},
		{
			name:  "only redemptions can be processed",
			trxID: 41,
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "cashier1").Return(cashier, nil)
				trxRepo.EXPECT().GetByID(gomock.Any(), 41).Return(&domain.Transaction{
					ID: 41, Utorid: "student1", Type: domain.TrxPurchase, Amount: 80,
				}, nil)
			},
			expectedError: ErrNotRedemption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			trx, err := service.ProcessRedemption(context.Background(), "cashier1", tt.trxID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.True(t, trx.Processed())
			assert.Equal(t, "cashier1", *trx.ProcessedBy)
			assert.Equal(t, 150, *trx.Redeemed)
		})
	}
}

func TestSetSuspicious(t *testing.T) {
	service, userRepo, trxRepo, _, txManager := NewMock(t)

	tests := []struct {
		name        string
		current     bool
		target      bool
		delta       int
		prepareMock func(current, target bool, delta int)
	}{
		{
			name:    "flagging reverses the credited points",
			current: false,
			target:  true,
			delta:   -80,
		},
		{
			name:    "clearing restores the credited points",
			current: true,
			target:  false,
			delta:   80,
		},
		{
			name:    "setting the same state is balance neutral",
			current: true,
			target:  true,
			delta:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trxRepo.EXPECT().GetByID(gomock.Any(), 50).Return(&domain.Transaction{
				ID: 50, Utorid: "student1", Type: domain.TrxPurchase, Amount: 80, Suspicious: tt.current,
			}, nil)
			passthroughTx(txManager)
			if tt.delta != 0 {
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "student1", tt.delta).Return(0, nil)
			}
			trxRepo.EXPECT().SetSuspicious(gomock.Any(), 50, tt.target).Return(nil)

			trx, err := service.SetSuspicious(context.Background(), 50, tt.target)
			assert.NoError(t, err)
			assert.Equal(t, tt.target, trx.Suspicious)
		})
	}
}

func TestGetAndList(t *testing.T) {
	service, _, trxRepo, _, _ := NewMock(t)

	t.Run("get unknown transaction", func(t *testing.T) {
		trxRepo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)
		_, err := service.Get(context.Background(), 99)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("list returns rows and total", func(t *testing.T) {
		filter := domain.TransactionFilter{Utorid: "student1", Page: 1, Limit: 10}
		trxRepo.EXPECT().Count(gomock.Any(), filter).Return(2, nil)
		trxRepo.EXPECT().List(gomock.Any(), filter).Return([]domain.Transaction{{ID: 1}, {ID: 2}}, nil)

		trxs, count, err := service.List(context.Background(), filter)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Len(t, trxs, 2)
	})
}
