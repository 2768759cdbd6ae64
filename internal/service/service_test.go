package service

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/campuspoints/campuspoints/internal/pg"
	"github.com/campuspoints/campuspoints/internal/repo"
	"github.com/campuspoints/campuspoints/pkg/mailer"
	"github.com/campuspoints/campuspoints/pkg/ratelimit"
)

type mailerStub struct{}

func (mailerStub) Enqueue(context.Context, mailer.Message) error { return nil }

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repos := repo.New(mockDB)
	txManager := pg.NewMockTXManager(ctrl)
	throttle := ratelimit.NewMemoryStore(time.Minute)

	services := New(repos, txManager, throttle, mailerStub{})

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.UserService)
	assert.NotNil(t, services.TransactionService)
	assert.NotNil(t, services.PromotionService)
	assert.NotNil(t, services.EventService)
}
