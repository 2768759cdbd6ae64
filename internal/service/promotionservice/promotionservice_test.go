package promotionservice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/campuspoints/campuspoints/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func activePromo(id int) *domain.Promotion {
	rate := decimal.NewFromInt(1)
	return &domain.Promotion{
		ID:        id,
		Name:      "bonus week",
		Type:      domain.PromoOneTime,
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
		Rate:      &rate,
	}
}

func TestResolve(t *testing.T) {
	service, repo := NewMock(t)

	spent := decimal.NewFromInt(20)
	consumer := &domain.User{ID: 3, Utorid: "student1"}
	usedConsumer := &domain.User{ID: 4, Utorid: "student2", UsedPromotionIDs: []int{7}}
	minSpending := decimal.NewFromInt(50)

	tests := []struct {
		name          string
		ids           []int
		spent         *decimal.Decimal
		consumer      *domain.User
		prepareMock   func()
		expectedBonus int
		expectedError error
	}{
		{
			name:     "active promotion contributes ceil(spent*rate)",
			ids:      []int{7},
			spent:    &spent,
			consumer: consumer,
			prepareMock: func() {
				repo.EXPECT().GetByID(gomock.Any(), 7).Return(activePromo(7), nil)
			},
			expectedBonus: 20,
		},
		{
			name:     "unknown promotion",
			ids:      []int{99},
			spent:    &spent,
			consumer: consumer,
			prepareMock: func() {
				repo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedError: ErrPromotionNotFound,
		},
		{
			name:     "already consumed promotion rejected",
			ids:      []int{7},
			spent:    &spent,
			consumer: usedConsumer,
			prepareMock: func() {
				repo.EXPECT().GetByID(gomock.Any(), 7).Return(activePromo(7), nil)
			},
			expectedError: ErrPromotionAlreadyUsed,
		},
		{
			name:     "promotion outside its window",
			ids:      []int{8},
			spent:    &spent,
			consumer: consumer,
			prepareMock: func() {
				promo := activePromo(8)
				promo.StartTime = time.Now().Add(time.Hour)
				promo.EndTime = time.Now().Add(2 * time.Hour)
				repo.EXPECT().GetByID(gomock.Any(), 8).Return(promo, nil)
			},
			expectedError: ErrPromotionNotStarted,
		},
		{
			name:     "expired promotion rejected",
			ids:      []int{8},
			spent:    &spent,
			consumer: consumer,
			prepareMock: func() {
				promo := activePromo(8)
				promo.StartTime = time.Now().Add(-2 * time.Hour)
				promo.EndTime = time.Now().Add(-time.Hour)
				repo.EXPECT().GetByID(gomock.Any(), 8).Return(promo, nil)
			},
			expectedError: ErrPromotionExpired,
		},
		{
			name:     "minimum spending enforced on purchases",
			ids:      []int{9},
			spent:    &spent,
			consumer: consumer,
			prepareMock: func() {
				promo := activePromo(9)
				promo.MinSpending = &minSpending
				repo.EXPECT().GetByID(gomock.Any(), 9).Return(promo, nil)
			},
			expectedError: ErrMinSpendingNotMet,
		},
		{
			name:     "nil spend skips the minimum spending check",
			ids:      []int{9},
			spent:    nil,
			consumer: consumer,
			prepareMock: func() {
				promo := activePromo(9)
				promo.MinSpending = &minSpending
				repo.EXPECT().GetByID(gomock.Any(), 9).Return(promo, nil)
			},
			expectedBonus: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			resolved, err := service.Resolve(context.Background(), tt.ids, tt.spent, tt.consumer)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, resolved, len(tt.ids))
			assert.Equal(t, tt.expectedBonus, resolved[0].Points)
		})
	}
}

func TestConsume(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("marks referenced promotions as used", func(t *testing.T) {
		repo.EXPECT().MarkConsumed(gomock.Any(), 3, []int{7, 8}).Return(nil)
		assert.NoError(t, service.Consume(context.Background(), 3, []int{7, 8}))
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		assert.NoError(t, service.Consume(context.Background(), 3, nil))
	})
}

func TestCreate(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("valid window", func(t *testing.T) {
		promo := activePromo(0)
		repo.EXPECT().Create(gomock.Any(), promo).Return(promo, nil)
		created, err := service.Create(context.Background(), promo)
		assert.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		promo := activePromo(0)
		promo.EndTime = promo.StartTime.Add(-time.Minute)
		_, err := service.Create(context.Background(), promo)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestUpdate(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("started promotion window cannot be rewritten", func(t *testing.T) {
		existing := activePromo(7)
		repo.EXPECT().GetByID(gomock.Any(), 7).Return(existing, nil)

		patched := *existing
		patched.StartTime = time.Now().Add(time.Hour)
		patched.EndTime = time.Now().Add(2 * time.Hour)
		_, err := service.Update(context.Background(), &patched)
		assert.ErrorIs(t, err, ErrPromotionStarted)
	})

	t.Run("future promotion can be rescheduled", func(t *testing.T) {
		existing := activePromo(7)
		existing.StartTime = time.Now().Add(time.Hour)
		existing.EndTime = time.Now().Add(2 * time.Hour)
		repo.EXPECT().GetByID(gomock.Any(), 7).Return(existing, nil)

		patched := *existing
		patched.StartTime = time.Now().Add(3 * time.Hour)
		patched.EndTime = time.Now().Add(4 * time.Hour)
		repo.EXPECT().Update(gomock.Any(), &patched).Return(&patched, nil)

		updated, err := service.Update(context.Background(), &patched)
		assert.NoError(t, err)
		assert.NotNil(t, updated)
	})
}

func TestDelete(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("started promotion cannot be deleted", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), 7).Return(activePromo(7), nil)
		err := service.Delete(context.Background(), 7)
		assert.ErrorIs(t, err, ErrPromotionStarted)
	})

	t.Run("future promotion deleted", func(t *testing.T) {
		promo := activePromo(7)
		promo.StartTime = time.Now().Add(time.Hour)
		repo.EXPECT().GetByID(gomock.Any(), 7).Return(promo, nil)
		repo.EXPECT().Delete(gomock.Any(), 7).Return(nil)
		assert.NoError(t, service.Delete(context.Background(), 7))
	})

	t.Run("unknown promotion", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)
		err := service.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, ErrPromotionNotFound)
	})
}
