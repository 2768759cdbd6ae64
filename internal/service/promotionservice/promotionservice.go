package promotionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/pkg/points"
)

//go:generate mockgen -source=promotionservice.go -destination=mock_promotionservice.go -package=promotionservice

type Repo interface {
	GetByID(ctx context.Context, id int) (*domain.Promotion, error)
	Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error)
	Update(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, id int) error
	MarkConsumed(ctx context.Context, userID int, promotionIDs []int) error
	List(ctx context.Context, filter domain.PromotionFilter) ([]domain.Promotion, error)
	Count(ctx context.Context, filter domain.PromotionFilter) (int, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var (
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrPromotionAlreadyUsed = errors.New("promotion already used by customer")
	ErrPromotionNotStarted  = errors.New("promotional period has not started")
	ErrPromotionExpired     = errors.New("promotion has expired")
	ErrMinSpendingNotMet    = errors.New("minimum spending not met")
	ErrInvalidWindow        = errors.New("end time must be after start time")
	ErrPromotionStarted     = errors.New("promotion has already started")
)

// Resolve validates every referenced promotion against the consumer and
// computes the bonus each one contributes. Checks run in a fixed order per
// id: existence, prior consumption, window start, window end, minimum spend.
// A nil spent (adjustments) skips the minimum-spend check. Resolve never
// mutates state; the engine marks consumption inside its own transaction.
func (s *Service) Resolve(ctx context.Context, promotionIDs []int, spent *decimal.Decimal, consumer *domain.User) ([]domain.PromotionBonus, error) {
	now := time.Now()
	used := make(map[int]struct{}, len(consumer.UsedPromotionIDs))
	for _, id := range consumer.UsedPromotionIDs {
		used[id] = struct{}{}
	}

	var resolved []domain.PromotionBonus
	for _, id := range promotionIDs {
		promo, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if promo == nil {
			return nil, fmt.Errorf("%w: ID=%d", ErrPromotionNotFound, id)
		}
		if _, ok := used[id]; ok {
			return nil, fmt.Errorf("%w: ID=%d", ErrPromotionAlreadyUsed, id)
		}
		if now.Before(promo.StartTime) {
			return nil, fmt.Errorf("%w: ID=%d", ErrPromotionNotStarted, id)
		}
		if !now.Before(promo.EndTime) {
			return nil, fmt.Errorf("%w: ID=%d", ErrPromotionExpired, id)
		}
		if spent != nil && promo.MinSpending != nil && spent.LessThan(*promo.MinSpending) {
			return nil, fmt.Errorf("%w: ID=%d requires a minimum spending of $%s", ErrMinSpendingNotMet, id, promo.MinSpending)
		}

		// Only rate feeds the bonus; the flat points field is stored on the
		// promotion but not part of the purchase formula.
		bonus := 0
		if spent != nil && promo.Rate != nil {
			bonus = points.Calc(*spent, *promo.Rate)
		}
		resolved = append(resolved, domain.PromotionBonus{Promotion: *promo, Points: bonus})
	}
	return resolved, nil
}

// Consume permanently marks the promotions as used by the customer.
func (s *Service) Consume(ctx context.Context, userID int, promotionIDs []int) error {
	if len(promotionIDs) == 0 {
		return nil
	}
	return s.repo.MarkConsumed(ctx, userID, promotionIDs)
}

func (s *Service) Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
	if !promo.EndTime.After(promo.StartTime) {
		return nil, ErrInvalidWindow
	}
	created, err := s.repo.Create(ctx, promo)
	if err != nil {
		zap.L().Error("failed to create promotion", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Promotion, error) {
	promo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrPromotionNotFound, id)
	}
	return promo, nil
}

func (s *Service) Update(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
	existing, err := s.repo.GetByID(ctx, promo.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrPromotionNotFound, promo.ID)
	}
	if !promo.EndTime.After(promo.StartTime) {
		return nil, ErrInvalidWindow
	}
	// The window cannot be rewritten once the promotion is live.
	if time.Now().After(existing.StartTime) && !promo.StartTime.Equal(existing.StartTime) {
		return nil, ErrPromotionStarted
	}
	updated, err := s.repo.Update(ctx, promo)
	if err != nil {
		zap.L().Error("failed to update promotion", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: ID=%d", ErrPromotionNotFound, id)
	}
	if time.Now().After(existing.StartTime) {
		return ErrPromotionStarted
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter domain.PromotionFilter) ([]domain.Promotion, int, error) {
	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	promos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return promos, count, nil
}
