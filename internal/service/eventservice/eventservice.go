package eventservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
	"github.com/campuspoints/campuspoints/pkg/clearance"
)

//go:generate mockgen -source=eventservice.go -destination=mock_eventservice.go -package=eventservice

type EventRepo interface {
	GetByID(ctx context.Context, id int) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int) error
	RewardUpdate(ctx context.Context, eventID, amount int) error
	AddOrganizer(ctx context.Context, eventID, userID int) error
	RemoveOrganizer(ctx context.Context, eventID, userID int) error
	AddGuest(ctx context.Context, eventID, userID int) error
	RemoveGuest(ctx context.Context, eventID, userID int) error
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	Count(ctx context.Context, filter domain.EventFilter) (int, error)
}

type UserRepo interface {
	GetByUtorid(ctx context.Context, utorid string) (*domain.User, error)
	IncrementPoints(ctx context.Context, utorid string, delta int) (int, error)
}

type TrxRepo interface {
	Create(ctx context.Context, trx *domain.Transaction) (*domain.Transaction, error)
}

type Service struct {
	eventRepo EventRepo
	userRepo  UserRepo
	trxRepo   TrxRepo
	txManager pg.TXManager
}

func New(eventRepo EventRepo, userRepo UserRepo, trxRepo TrxRepo, txManager pg.TXManager) *Service {
	return &Service{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		trxRepo:   trxRepo,
		txManager: txManager,
	}
}

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrInsufficientClearance = errors.New("insufficient clearance")
	ErrNoGuests              = errors.New("event has no guests to reward")
	ErrNotGuest              = errors.New("user is not a guest of the event")
	ErrInsufficientPool      = errors.New("not enough points available for awarding guests")
	ErrEventFull             = errors.New("event is full")
	ErrMemberConflict        = errors.New("user cannot be both organizer and guest")
	ErrAlreadyGuest          = errors.New("user is already a guest")
	ErrEventPublished        = errors.New("published events cannot be deleted")
	ErrInvalidWindow         = errors.New("end time must be after start time")
	ErrPointsBelowAwarded    = errors.New("point pool cannot drop below points already awarded")
)

type RewardInput struct {
	// Nil Utorid rewards every guest on the list.
	Utorid *string
	Amount int
}

// CreateReward distributes event pool points to one guest or to all of them.
// The whole distribution commits as one unit, so the pool counters and the
// issued transactions can never disagree: pointsRemain + pointsAwarded stays
// constant in every reachable state.
func (s *Service) CreateReward(ctx context.Context, actorUtorid string, eventID int, in RewardInput) ([]domain.Transaction, error) {
	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	actor, err := s.loadUser(ctx, actorUtorid)
	if err != nil {
		return nil, err
	}
	if !clearance.AtLeast(actor.Role, clearance.Manager) && !event.IsOrganizer(actor.Utorid) {
		return nil, ErrInsufficientClearance
	}
	if len(event.Guests) == 0 {
		return nil, fmt.Errorf("%w: ID=%d", ErrNoGuests, eventID)
	}

	if in.Utorid != nil {
		return s.rewardSingle(ctx, actor, event, *in.Utorid, in.Amount)
	}
	return s.rewardAll(ctx, actor, event, in.Amount)
}

func (s *Service) rewardSingle(ctx context.Context, actor *domain.User, event *domain.Event, utorid string, amount int) ([]domain.Transaction, error) {
	guest, err := s.loadUser(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if !event.IsGuest(guest.Utorid) {
		return nil, fmt.Errorf("%w: utorid=%s, event ID=%d", ErrNotGuest, utorid, event.ID)
	}
	if event.PointsRemain < amount {
		return nil, fmt.Errorf("%w: only %d points remain", ErrInsufficientPool, event.PointsRemain)
	}

	trx := &domain.Transaction{
		Utorid:    guest.Utorid,
		Type:      domain.TrxEvent,
		Amount:    amount,
		RelatedID: &event.ID,
		CreatedBy: actor.Utorid,
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.trxRepo.Create(ctx, trx); err != nil {
			return err
		}
		if _, err := s.userRepo.IncrementPoints(ctx, guest.Utorid, amount); err != nil {
			return err
		}
		return s.eventRepo.RewardUpdate(ctx, event.ID, amount)
	})
	if err != nil {
		zap.L().Error("failed to reward guest", zap.Error(err))
		return nil, err
	}
	return []domain.Transaction{*trx}, nil
}

func (s *Service) rewardAll(ctx context.Context, actor *domain.User, event *domain.Event, amount int) ([]domain.Transaction, error) {
	total := amount * len(event.Guests)
	if event.PointsRemain < total {
		return nil, fmt.Errorf("%w: only %d points remain", ErrInsufficientPool, event.PointsRemain)
	}

	trxs := make([]domain.Transaction, 0, len(event.Guests))
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		for _, guest := range event.Guests {
			trx := &domain.Transaction{
				Utorid:    guest.Utorid,
				Type:      domain.TrxEvent,
				Amount:    amount,
				RelatedID: &event.ID,
				CreatedBy: actor.Utorid,
			}
			if _, err := s.trxRepo.Create(ctx, trx); err != nil {
				return err
			}
			if _, err := s.userRepo.IncrementPoints(ctx, guest.Utorid, amount); err != nil {
				return err
			}
			trxs = append(trxs, *trx)
		}
		return s.eventRepo.RewardUpdate(ctx, event.ID, total)
	})
	if err != nil {
		zap.L().Error("failed to reward all guests", zap.Error(err))
		return nil, err
	}

	zap.L().Info("event reward distributed",
		zap.Int("eventID", event.ID),
		zap.Int("guests", len(event.Guests)),
		zap.Int("total", total),
	)
	return trxs, nil
}

func (s *Service) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if !event.EndTime.After(event.StartTime) {
		return nil, ErrInvalidWindow
	}
	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		zap.L().Error("failed to create event", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Event, error) {
	return s.loadEvent(ctx, id)
}

type EventPatch struct {
	Name        *string
	Description *string
	Location    *string
	Capacity    *int
	Points      *int
	Published   *bool
}

func (s *Service) Update(ctx context.Context, id int, patch EventPatch) (*domain.Event, error) {
	event, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Capacity != nil {
		if *patch.Capacity < len(event.Guests) {
			return nil, ErrEventFull
		}
		event.Capacity = patch.Capacity
	}
	if patch.Points != nil {
		// The pool total can be resized but never below what is already out.
		if *patch.Points < event.PointsAwarded {
			return nil, ErrPointsBelowAwarded
		}
		event.PointsRemain = *patch.Points - event.PointsAwarded
	}
	if patch.Published != nil {
		event.Published = *patch.Published
	}

	updated, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		zap.L().Error("failed to update event", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	event, err := s.loadEvent(ctx, id)
	if err != nil {
		return err
	}
	if event.Published {
		return ErrEventPublished
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *Service) AddOrganizer(ctx context.Context, eventID int, utorid string) (*domain.Event, error) {
	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	user, err := s.loadUser(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if event.IsGuest(user.Utorid) {
		return nil, ErrMemberConflict
	}
	if err := s.eventRepo.AddOrganizer(ctx, eventID, user.ID); err != nil {
		return nil, err
	}
	return s.loadEvent(ctx, eventID)
}

func (s *Service) RemoveOrganizer(ctx context.Context, eventID int, userID int) error {
	if _, err := s.loadEvent(ctx, eventID); err != nil {
		return err
	}
	return s.eventRepo.RemoveOrganizer(ctx, eventID, userID)
}

func (s *Service) AddGuest(ctx context.Context, eventID int, utorid string) (*domain.Event, error) {
	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	user, err := s.loadUser(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if event.IsOrganizer(user.Utorid) {
		return nil, ErrMemberConflict
	}
	if event.IsGuest(user.Utorid) {
		return nil, ErrAlreadyGuest
	}
	if event.Full() {
		return nil, ErrEventFull
	}
	if err := s.eventRepo.AddGuest(ctx, eventID, user.ID); err != nil {
		return nil, err
	}
	return s.loadEvent(ctx, eventID)
}

func (s *Service) RemoveGuest(ctx context.Context, eventID int, userID int) error {
	if _, err := s.loadEvent(ctx, eventID); err != nil {
		return err
	}
	return s.eventRepo.RemoveGuest(ctx, eventID, userID)
}

func (s *Service) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int, error) {
	count, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return events, count, nil
}

func (s *Service) loadEvent(ctx context.Context, id int) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrEventNotFound, id)
	}
	return event, nil
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
