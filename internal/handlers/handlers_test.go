package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

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

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:        authhandlers.NewMockService(ctrl),
		UserService:        usershandlers.NewMockService(ctrl),
		TransactionService: transactionshandlers.NewMockService(ctrl),
		PromotionService:   promotionshandlers.NewMockService(ctrl),
		EventService:       eventshandlers.NewMockService(ctrl),
	}

	h := New(services, "http://localhost:3000")
	assert.NotNil(t, h)
	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.EventHandler)
}

func bearer(t *testing.T, role clearance.Role) string {
	token, err := (&auth.JWTService{}).GenerateJWT(3, "student1", role, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	return "Bearer " + token
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockUserHandler := NewMockUserHandler(ctrl)
	mockTransactionHandler := NewMockTransactionHandler(ctrl)
	mockPromotionHandler := NewMockPromotionHandler(ctrl)
	mockEventHandler := NewMockEventHandler(ctrl)

	mockAuthHandler.EXPECT().IssueToken(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().RequestReset(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().CompleteReset(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().GetMe(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().Create(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().ListMine(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().SetSuspicious(gomock.Any(), gomock.Any()).AnyTimes()
	mockPromotionHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockEventHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockEventHandler.EXPECT().Create(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:        mockAuthHandler,
		UserHandler:        mockUserHandler,
		TransactionHandler: mockTransactionHandler,
		PromotionHandler:   mockPromotionHandler,
		EventHandler:       mockEventHandler,
		frontendOrigin:     "http://localhost:3000",
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/auth/tokens", "", http.StatusOK},
		{"POST", "/auth/resets", "", http.StatusOK},
		{"POST", "/auth/resets/some-token", "", http.StatusOK},
		{"GET", "/users/me", "", http.StatusUnauthorized},
		{"GET", "/users/me/transactions", "", http.StatusUnauthorized},
		{"POST", "/transactions", "", http.StatusUnauthorized},
		{"GET", "/promotions", "", http.StatusUnauthorized},
		{"GET", "/events", "", http.StatusUnauthorized},
		{"GET", "/users/me", bearer(t, clearance.Regular), http.StatusOK},
		{"GET", "/users", bearer(t, clearance.Regular), http.StatusForbidden},
		{"GET", "/users", bearer(t, clearance.Manager), http.StatusOK},
		{"POST", "/users", bearer(t, clearance.Regular), http.StatusForbidden},
		{"POST", "/users", bearer(t, clearance.Cashier), http.StatusOK},
		{"POST", "/transactions", bearer(t, clearance.Regular), http.StatusForbidden},
		{"POST", "/transactions", bearer(t, clearance.Cashier), http.StatusOK},
		{"PATCH", "/transactions/41/suspicious", bearer(t, clearance.Cashier), http.StatusForbidden},
		{"PATCH", "/transactions/41/suspicious", bearer(t, clearance.Manager), http.StatusOK},
		{"POST", "/events", bearer(t, clearance.Cashier), http.StatusForbidden},
		{"POST", "/events", bearer(t, clearance.Superuser), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
