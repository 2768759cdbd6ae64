package eventservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockEventRepo, *MockUserRepo, *MockTrxRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	eventRepo := NewMockEventRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	trxRepo := NewMockTrxRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(eventRepo, userRepo, trxRepo, txManager)
	defer ctrl.Finish()
	return service, eventRepo, userRepo, trxRepo, txManager
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func testEvent() *domain.Event {
	return &domain.Event{
		ID:           1,
		Name:         "orientation",
		Location:     "main hall",
		StartTime:    time.Now().Add(time.Hour),
		EndTime:      time.Now().Add(3 * time.Hour),
		PointsRemain: 300,
		Published:    true,
		Organizers:   []domain.EventMember{{ID: 10, Utorid: "organiz1"}},
		Guests: []domain.EventMember{
			{ID: 20, Utorid: "guest001"},
			{ID: 21, Utorid: "guest002"},
			{ID: 22, Utorid: "guest003"},
		},
	}
}

func TestCreateReward(t *testing.T) {
	service, eventRepo, userRepo, trxRepo, txManager := NewMock(t)

	manager := &domain.User{ID: 1, Utorid: "manager1", Role: "manager"}
	organizer := &domain.User{ID: 10, Utorid: "organiz1", Role: "regular"}
	regular := &domain.User{ID: 30, Utorid: "student9", Role: "regular"}
	guest := &domain.User{ID: 20, Utorid: "guest001", Role: "regular"}
	guestUtorid := "guest001"

	tests := []struct {
		name          string
		actor         string
		input         RewardInput
		prepareMock   func()
		expectedTrxs  int
		expectedError error
	}{
		{
			name:  "single guest reward moves pool points",
			actor: "manager1",
			input: RewardInput{Utorid: &guestUtorid, Amount: 50},
			prepareMock: func() {
				eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "guest001").Return(guest, nil)
				passthroughTx(txManager)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 60}, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "guest001", 50).Return(50, nil)
				eventRepo.EXPECT().RewardUpdate(gomock.Any(), 1, 50).Return(nil)
			},
			expectedTrxs: 1,
		},
		{
			name:  "organizer may reward without manager clearance",
			actor: "organiz1",
			input: RewardInput{Utorid: &guestUtorid, Amount: 50},
			prepareMock: func() {
				eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "organiz1").Return(organizer, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "guest001").Return(guest, nil)
				passthroughTx(txManager)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 61}, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "guest001", 50).Return(100, nil)
				eventRepo.EXPECT().RewardUpdate(gomock.Any(), 1, 50).Return(nil)
			},
			expectedTrxs: 1,
		},
		{
			name:  "reward all guests 50 each from a 300 point pool",
			actor: "manager1",
			input: RewardInput{Amount: 50},
			prepareMock: func() {
				eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				passthroughTx(txManager)
				trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 62}, nil).Times(3)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "guest001", 50).Return(50, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "guest002", 50).Return(50, nil)
				userRepo.EXPECT().IncrementPoints(gomock.Any(), "guest003", 50).Return(50, nil)
				eventRepo.EXPECT().RewardUpdate(gomock.Any(), 1, 150).Return(nil)
			},
			expectedTrxs: 3,
		},
		{
			name:  "bulk reward above the pool rejected before any write",
			actor: "manager1",
			input: RewardInput{Amount: 150},
			prepareMock: func() {
				// 150 x 3 guests = 450 > 300 remaining.
				eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
			},
			expectedError: ErrInsufficientPool,
		},
		{
			name:  "single reward above the pool rejected",
			actor: "manager1",
			input: RewardInput{Utorid: &guestUtorid, Amount: 999},
			prepareMock: func() {
				eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "guest001").Return(guest, nil)
			},
			expectedError: ErrInsufficientPool,
		},
		{
			name:  "non organizer regular user rejected",
			actor: "student9",
			input: RewardInput{Utorid: &guestUtorid, Amount: 50},
			prepareMock: func() {
				eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student9").Return(regular, nil)
			},
			expectedError: ErrInsufficientClearance,
		},
		{
			name:  "reward target must be on the guest list",
			actor: "manager1",
			input: RewardInput{Utorid: &regular.Utorid, Amount: 50},
			prepareMock: func() {
				eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
				userRepo.EXPECT().GetByUtorid(gomock.Any(), "student9").Return(regular, nil)
			},
			expectedError: ErrNotGuest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			trxs, err := service.CreateReward(context.Background(), tt.actor, 1, tt.input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, trxs, tt.expectedTrxs)
			for _, trx := range trxs {
				assert.Equal(t, domain.TrxEvent, trx.Type)
				assert.Equal(t, tt.input.Amount, trx.Amount)
			}
		})
	}
}

func TestCreateRewardRollsBackOnPoolConflict(t *testing.T) {
	service, eventRepo, userRepo, trxRepo, txManager := NewMock(t)

	manager := &domain.User{ID: 1, Utorid: "manager1", Role: "manager"}

	eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
	userRepo.EXPECT().GetByUtorid(gomock.Any(), "manager1").Return(manager, nil)
	passthroughTx(txManager)
	trxRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 63}, nil).Times(3)
	userRepo.EXPECT().IncrementPoints(gomock.Any(), gomock.Any(), 100).Return(100, nil).Times(3)
	// A concurrent reward drained the pool between the read and the guarded update.
	eventRepo.EXPECT().RewardUpdate(gomock.Any(), 1, 300).Return(errors.New("no rows affected"))

	_, err := service.CreateReward(context.Background(), "manager1", 1, RewardInput{Amount: 100})
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	service, eventRepo, _, _, _ := NewMock(t)

	t.Run("pool resize keeps awarded points intact", func(t *testing.T) {
		event := testEvent()
		event.PointsRemain = 100
		event.PointsAwarded = 200
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(event, nil)

		points := 500
		eventRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e *domain.Event) (*domain.Event, error) {
				assert.Equal(t, 300, e.PointsRemain)
				return e, nil
			},
		)

		updated, err := service.Update(context.Background(), 1, EventPatch{Points: &points})
		assert.NoError(t, err)
		assert.Equal(t, 300, updated.PointsRemain)
	})

	t.Run("pool cannot drop below awarded points", func(t *testing.T) {
		event := testEvent()
		event.PointsAwarded = 200
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(event, nil)

		points := 100
		_, err := service.Update(context.Background(), 1, EventPatch{Points: &points})
		assert.ErrorIs(t, err, ErrPointsBelowAwarded)
	})

	t.Run("capacity cannot drop below the guest count", func(t *testing.T) {
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)

		capacity := 2
		_, err := service.Update(context.Background(), 1, EventPatch{Capacity: &capacity})
		assert.ErrorIs(t, err, ErrEventFull)
	})
}

func TestDelete(t *testing.T) {
	service, eventRepo, _, _, _ := NewMock(t)

	t.Run("published events cannot be deleted", func(t *testing.T) {
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
		err := service.Delete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrEventPublished)
	})

	t.Run("unpublished event deleted", func(t *testing.T) {
		event := testEvent()
		event.Published = false
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(event, nil)
		eventRepo.EXPECT().Delete(gomock.Any(), 1).Return(nil)
		assert.NoError(t, service.Delete(context.Background(), 1))
	})
}

func TestMembership(t *testing.T) {
	service, eventRepo, userRepo, _, _ := NewMock(t)

	organizer := &domain.User{ID: 10, Utorid: "organiz1", Role: "regular"}
	guest := &domain.User{ID: 20, Utorid: "guest001", Role: "regular"}
	newcomer := &domain.User{ID: 40, Utorid: "newguest", Role: "regular"}

	t.Run("guest cannot become organizer", func(t *testing.T) {
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
		userRepo.EXPECT().GetByUtorid(gomock.Any(), "guest001").Return(guest, nil)

		_, err := service.AddOrganizer(context.Background(), 1, "guest001")
		assert.ErrorIs(t, err, ErrMemberConflict)
	})

	t.Run("organizer cannot join as guest", func(t *testing.T) {
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
		userRepo.EXPECT().GetByUtorid(gomock.Any(), "organiz1").Return(organizer, nil)

		_, err := service.AddGuest(context.Background(), 1, "organiz1")
		assert.ErrorIs(t, err, ErrMemberConflict)
	})

	t.Run("duplicate guest rejected", func(t *testing.T) {
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
		userRepo.EXPECT().GetByUtorid(gomock.Any(), "guest001").Return(guest, nil)

		_, err := service.AddGuest(context.Background(), 1, "guest001")
		assert.ErrorIs(t, err, ErrAlreadyGuest)
	})

	t.Run("full event rejects new guests", func(t *testing.T) {
		event := testEvent()
		capacity := 3
		event.Capacity = &capacity
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(event, nil)
		userRepo.EXPECT().GetByUtorid(gomock.Any(), "newguest").Return(newcomer, nil)

		_, err := service.AddGuest(context.Background(), 1, "newguest")
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("new guest added and event reloaded", func(t *testing.T) {
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(testEvent(), nil)
		userRepo.EXPECT().GetByUtorid(gomock.Any(), "newguest").Return(newcomer, nil)
		eventRepo.EXPECT().AddGuest(gomock.Any(), 1, 40).Return(nil)
		reloaded := testEvent()
		reloaded.Guests = append(reloaded.Guests, domain.EventMember{ID: 40, Utorid: "newguest"})
		eventRepo.EXPECT().GetByID(gomock.Any(), 1).Return(reloaded, nil)

		event, err := service.AddGuest(context.Background(), 1, "newguest")
		assert.NoError(t, err)
		assert.Len(t, event.Guests, 4)
	})
}

func TestCreateEvent(t *testing.T) {
	service, eventRepo, _, _, _ := NewMock(t)

	t.Run("valid window", func(t *testing.T) {
		event := testEvent()
		eventRepo.EXPECT().Create(gomock.Any(), event).Return(event, nil)
		created, err := service.Create(context.Background(), event)
		assert.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		event := testEvent()
		event.EndTime = event.StartTime.Add(-time.Minute)
		_, err := service.Create(context.Background(), event)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}
