package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/campuspoints/campuspoints/internal/dto"
	"github.com/campuspoints/campuspoints/internal/service/authservice"
	"github.com/campuspoints/campuspoints/pkg/utils"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestIssueToken(t *testing.T) {
	handler, service := NewMock(t)
	expiresAt := time.Now().Add(2 * time.Hour).UTC()

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"utorid":"student1","password":"Secret1!"}`,
			prepareMock: func() {
				service.EXPECT().
					Login(gomock.Any(), "student1", "Secret1!").
					Return("some-jwt-token", expiresAt, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"utorid":"student1","password":"wrong123"}`,
			prepareMock: func() {
				service.EXPECT().
					Login(gomock.Any(), "student1", "wrong123").
					Return("", time.Time{}, authservice.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:         "Utorid fails validation",
			body:         `{"utorid":"no","password":"Secret1!"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/auth/tokens", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.IssueToken(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp dto.AuthTokenResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "some-jwt-token", resp.Token)
				return
			}
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestRequestReset(t *testing.T) {
	handler, service := NewMock(t)
	expiresAt := time.Now().Add(time.Hour).UTC()

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Reset token issued",
			body: `{"utorid":"student1"}`,
			prepareMock: func() {
				service.EXPECT().
					RequestReset(gomock.Any(), "student1", gomock.Any()).
					Return("reset-token", expiresAt, nil)
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name: "Throttled",
			body: `{"utorid":"student1"}`,
			prepareMock: func() {
				service.EXPECT().
					RequestReset(gomock.Any(), "student1", gomock.Any()).
					Return("", time.Time{}, authservice.ErrTooManyRequests)
			},
			expectedCode: http.StatusTooManyRequests,
		},
		{
			name: "Unknown user",
			body: `{"utorid":"nobody01"}`,
			prepareMock: func() {
				service.EXPECT().
					RequestReset(gomock.Any(), "nobody01", gomock.Any()).
					Return("", time.Time{}, authservice.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Invalid request body",
			body:         `{invalid json`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/auth/resets", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.RequestReset(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusAccepted {
				var resp dto.ResetRequestResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "reset-token", resp.ResetToken)
			}
		})
	}
}

func TestCompleteReset(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Password updated",
			body: `{"utorid":"student1","password":"NewSecret1!"}`,
			prepareMock: func() {
				service.EXPECT().
					CompleteReset(gomock.Any(), "tok", "student1", "NewSecret1!").
					Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Weak password",
			body:         `{"utorid":"student1","password":"weakpass"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unknown token",
			body: `{"utorid":"student1","password":"NewSecret1!"}`,
			prepareMock: func() {
				service.EXPECT().
					CompleteReset(gomock.Any(), "tok", "student1", "NewSecret1!").
					Return(authservice.ErrTokenNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Token of another user",
			body: `{"utorid":"student1","password":"NewSecret1!"}`,
			prepareMock: func() {
				service.EXPECT().
					CompleteReset(gomock.Any(), "tok", "student1", "NewSecret1!").
					Return(authservice.ErrTokenMismatch)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			body: `{"utorid":"student1","password":"NewSecret1!"}`,
			prepareMock: func() {
				service.EXPECT().
					CompleteReset(gomock.Any(), "tok", "student1", "NewSecret1!").
					Return(authservice.ErrTokenExpired)
			},
			expectedCode: http.StatusGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/auth/resets/tok", bytes.NewReader([]byte(tt.body)))
			routeCtx := chi.NewRouteContext()
			routeCtx.URLParams.Add("resetToken", "tok")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
			rr := httptest.NewRecorder()

			handler.CompleteReset(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
