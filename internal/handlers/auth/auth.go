package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campuspoints/campuspoints/internal/dto"
	"github.com/campuspoints/campuspoints/internal/service/authservice"
	"github.com/campuspoints/campuspoints/pkg/utils"
	"github.com/campuspoints/campuspoints/pkg/validate"
)

type Service interface {
	Login(ctx context.Context, utorid, password string) (string, time.Time, error)
	RequestReset(ctx context.Context, utorid, clientIP string) (string, time.Time, error)
	CompleteReset(ctx context.Context, token, utorid, newPassword string) error
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// IssueToken godoc
//
//	@Summary		Authenticate user
//	@Description	Exchange utorid and password for a bearer token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AuthTokenRequestDTO	true	"Credentials"
//	@Success		200		{object}	dto.AuthTokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/auth/tokens [post]
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthTokenRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, expiresAt, err := h.authService.Login(r.Context(), req.Utorid, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthTokenResponseDTO{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// RequestReset godoc
//
//	@Summary		Request a password reset token
//	@Description	Issue a short-lived reset token and mail it to the account owner. Throttled per client.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ResetRequestDTO	true	"Account utorid"
//	@Success		202		{object}	dto.ResetRequestResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		429		{object}	utils.Response	"Too many requests"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/auth/resets [post]
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, expiresAt, err := h.authService.RequestReset(r.Context(), req.Utorid, r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrTooManyRequests):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, authservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.ResetRequestResponseDTO{
		ExpiresAt:  expiresAt,
		ResetToken: token,
	})
}

// CompleteReset godoc
//
//	@Summary		Reset password with a token
//	@Description	Set a new password using the reset token mailed to the account owner
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			resetToken	path		string						true	"Reset token"
//	@Param			request		body		dto.ResetCompleteRequestDTO	true	"Utorid and new password"
//	@Success		200			{string}	string						"Password updated"
//	@Failure		400			{object}	utils.Response				"Invalid request body or weak password"
//	@Failure		401			{object}	utils.Response				"Token belongs to another user"
//	@Failure		404			{object}	utils.Response				"Token not found"
//	@Failure		410			{object}	utils.Response				"Token expired"
//	@Failure		500			{object}	utils.Response				"Internal server error"
//	@Router			/auth/resets/{resetToken} [post]
func (h *AuthHandler) CompleteReset(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, "resetToken")

	var req dto.ResetCompleteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validate.IsStrongPassword(req.Password) {
		utils.RespondWithError(w, http.StatusBadRequest, "Password does not meet the strength requirements")
		return
	}

	err := h.authService.CompleteReset(r.Context(), resetToken, req.Utorid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrTokenNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, authservice.ErrTokenMismatch):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, authservice.ErrTokenExpired):
			utils.RespondWithError(w, http.StatusGone, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "password updated")
}
