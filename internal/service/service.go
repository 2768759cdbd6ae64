package service

import (
	authhandlers "github.com/campuspoints/campuspoints/internal/handlers/auth"
	eventshandlers "github.com/campuspoints/campuspoints/internal/handlers/events"
	promotionshandlers "github.com/campuspoints/campuspoints/internal/handlers/promotions"
	transactionshandlers "github.com/campuspoints/campuspoints/internal/handlers/transactions"
	usershandlers "github.com/campuspoints/campuspoints/internal/handlers/users"

	pkgauth "github.com/campuspoints/campuspoints/pkg/auth"
	"github.com/campuspoints/campuspoints/pkg/mailer"
	"github.com/campuspoints/campuspoints/pkg/ratelimit"

	"github.com/campuspoints/campuspoints/internal/pg"
	"github.com/campuspoints/campuspoints/internal/repo"
	"github.com/campuspoints/campuspoints/internal/service/authservice"
	"github.com/campuspoints/campuspoints/internal/service/eventservice"
	"github.com/campuspoints/campuspoints/internal/service/promotionservice"
	"github.com/campuspoints/campuspoints/internal/service/transactionservice"
	"github.com/campuspoints/campuspoints/internal/service/userservice"
)

type Services struct {
	AuthService        authhandlers.Service
	UserService        usershandlers.Service
	TransactionService transactionshandlers.Service
	PromotionService   promotionshandlers.Service
	EventService       eventshandlers.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, throttle ratelimit.Store, mail mailer.MailerI) *Services {
	hashService := &pkgauth.HashService{}
	jwtService := &pkgauth.JWTService{}

	promotionService := promotionservice.New(repo.PromotionRepo)
	transactionService := transactionservice.New(repo.UserRepo, repo.TrxRepo, promotionService, txManager)
	eventService := eventservice.New(repo.EventRepo, repo.UserRepo, repo.TrxRepo, txManager)
	userService := userservice.New(repo.UserRepo, hashService)
	authService := authservice.New(repo.UserRepo, hashService, jwtService, throttle, mail)

	return &Services{
		AuthService:        authService,
		UserService:        userService,
		TransactionService: transactionService,
		PromotionService:   promotionService,
		EventService:       eventService,
	}
}
