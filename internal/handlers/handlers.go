package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/campuspoints/campuspoints/docs"
	authhandlers "github.com/campuspoints/campuspoints/internal/handlers/auth"
	eventshandlers "github.com/campuspoints/campuspoints/internal/handlers/events"
	promotionshandlers "github.com/campuspoints/campuspoints/internal/handlers/promotions"
	transactionshandlers "github.com/campuspoints/campuspoints/internal/handlers/transactions"
	usershandlers "github.com/campuspoints/campuspoints/internal/handlers/users"
	"github.com/campuspoints/campuspoints/internal/service"
	"github.com/campuspoints/campuspoints/pkg/auth"
	"github.com/campuspoints/campuspoints/pkg/clearance"
)

type AuthHandler interface {
	IssueToken(w http.ResponseWriter, r *http.Request)
	RequestReset(w http.ResponseWriter, r *http.Request)
	CompleteReset(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SetSuspicious(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	CreateRedemption(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
}

type PromotionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EventHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddOrganizer(w http.ResponseWriter, r *http.Request)
	RemoveOrganizer(w http.ResponseWriter, r *http.Request)
	AddGuest(w http.ResponseWriter, r *http.Request)
	RSVP(w http.ResponseWriter, r *http.Request)
	CancelRSVP(w http.ResponseWriter, r *http.Request)
	RemoveGuest(w http.ResponseWriter, r *http.Request)
	CreateReward(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	UserHandler        UserHandler
	TransactionHandler TransactionHandler
	PromotionHandler   PromotionHandler
	EventHandler       EventHandler

	frontendOrigin string
}

func New(s *service.Services, frontendOrigin string) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		UserHandler:        usershandlers.New(s.UserService),
		TransactionHandler: transactionshandlers.New(s.TransactionService, s.UserService),
		PromotionHandler:   promotionshandlers.New(s.PromotionService),
		EventHandler:       eventshandlers.New(s.EventService),
		frontendOrigin:     frontendOrigin,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.frontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/tokens", h.AuthHandler.IssueToken)
		r.Post("/resets", h.AuthHandler.RequestReset)
		r.Post("/resets/{resetToken}", h.AuthHandler.CompleteReset)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Route("/users", func(r chi.Router) {
			r.With(auth.RequireClearance(clearance.Cashier)).Post("/", h.UserHandler.Register)
			r.With(auth.RequireClearance(clearance.Manager)).Get("/", h.UserHandler.List)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.UserHandler.GetMe)
				r.Patch("/", h.UserHandler.UpdateMe)
				r.Patch("/password", h.UserHandler.ChangePassword)
				r.Post("/transactions", h.TransactionHandler.CreateRedemption)
				r.Get("/transactions", h.TransactionHandler.ListMine)
			})

			r.With(auth.RequireClearance(clearance.Manager)).Get("/{userId}", h.UserHandler.Get)
			r.With(auth.RequireClearance(clearance.Manager)).Patch("/{userId}", h.UserHandler.Update)
			r.Post("/{userId}/transactions", h.TransactionHandler.Transfer)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.With(auth.RequireClearance(clearance.Cashier)).Post("/", h.TransactionHandler.Create)
			r.With(auth.RequireClearance(clearance.Manager)).Get("/", h.TransactionHandler.List)
			r.With(auth.RequireClearance(clearance.Manager)).Get("/{transactionId}", h.TransactionHandler.Get)
			r.With(auth.RequireClearance(clearance.Manager)).Patch("/{transactionId}/suspicious", h.TransactionHandler.SetSuspicious)
			r.With(auth.RequireClearance(clearance.Cashier)).Patch("/{transactionId}/processed", h.TransactionHandler.Process)
		})

		r.Route("/promotions", func(r chi.Router) {
			r.With(auth.RequireClearance(clearance.Manager)).Post("/", h.PromotionHandler.Create)
			r.Get("/", h.PromotionHandler.List)
			r.Get("/{promotionId}", h.PromotionHandler.Get)
			r.With(auth.RequireClearance(clearance.Manager)).Patch("/{promotionId}", h.PromotionHandler.Update)
			r.With(auth.RequireClearance(clearance.Manager)).Delete("/{promotionId}", h.PromotionHandler.Delete)
		})

		r.Route("/events", func(r chi.Router) {
			r.With(auth.RequireClearance(clearance.Manager)).Post("/", h.EventHandler.Create)
			r.Get("/", h.EventHandler.List)

			r.Route("/{eventId}", func(r chi.Router) {
				r.Get("/", h.EventHandler.Get)
				r.Patch("/", h.EventHandler.Update)
				r.With(auth.RequireClearance(clearance.Manager)).Delete("/", h.EventHandler.Delete)
				r.With(auth.RequireClearance(clearance.Manager)).Post("/organizers", h.EventHandler.AddOrganizer)
				r.With(auth.RequireClearance(clearance.Manager)).Delete("/organizers/{userId}", h.EventHandler.RemoveOrganizer)
				r.Post("/guests", h.EventHandler.AddGuest)
				r.Post("/guests/me", h.EventHandler.RSVP)
				r.Delete("/guests/me", h.EventHandler.CancelRSVP)
				r.With(auth.RequireClearance(clearance.Manager)).Delete("/guests/{userId}", h.EventHandler.RemoveGuest)
				r.Post("/transactions", h.EventHandler.CreateReward)
			})
		})
	})

	return r
}
