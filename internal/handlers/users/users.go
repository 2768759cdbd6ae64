package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/dto"
	"github.com/campuspoints/campuspoints/internal/service/userservice"
	"github.com/campuspoints/campuspoints/pkg/auth"
	"github.com/campuspoints/campuspoints/pkg/clearance"
	"github.com/campuspoints/campuspoints/pkg/utils"
	"github.com/campuspoints/campuspoints/pkg/validate"
)

type Service interface {
	Register(ctx context.Context, utorid, name, email string) (*domain.User, string, error)
	Get(ctx context.Context, utorid string) (*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	Update(ctx context.Context, actorRole clearance.Role, utorid string, patch userservice.ManagerPatch) (*domain.User, error)
	UpdateSelf(ctx context.Context, utorid string, name, email *string) (*domain.User, error)
	ChangePassword(ctx context.Context, utorid, oldPassword, newPassword string) error
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create an unverified account; the response carries the activation token
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"New user payload"
//	@Success		201		{object}	dto.RegisterResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"Utorid or email already taken"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validate.IsUtorid(req.Utorid) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid utorid")
		return
	}
	if !validate.IsCampusEmail(req.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Email must be a campus address")
		return
	}

	user, resetToken, err := h.userService.Register(r.Context(), req.Utorid, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, userservice.ErrUserExists) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.RegisterResponseDTO{
		ID:         user.ID,
		Utorid:     user.Utorid,
		Name:       user.Name,
		Email:      user.Email,
		Verified:   user.Verified,
		ResetToken: resetToken,
	})
}

// List godoc
//
//	@Summary		List users
//	@Description	Paginated user listing with optional name, role and verified filters
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			name		query		string	false	"Utorid or name substring"
//	@Param			role		query		string	false	"Role filter"
//	@Param			verified	query		bool	false	"Verified filter"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	dto.ListUsersResponseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.UserFilter{
		Name: q.Get("name"),
		Role: clearance.Role(q.Get("role")),
	}
	if v := q.Get("verified"); v != "" {
		verified := v == "true"
		filter.Verified = &verified
	}
	filter.Page, filter.Limit = utils.Pagination(q.Get("page"), q.Get("limit"))

	users, count, err := h.userService.List(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	results := make([]dto.UserResponseDTO, len(users))
	for i, u := range users {
		results[i] = formatUser(&u, true)
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ListUsersResponseDTO{
		Count:   count,
		Results: results,
	})
}

// Get godoc
//
//	@Summary		Get a user by id
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId	path		int	true	"User id"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid user id"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/users/{userId} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatUser(user, true))
}

// Update godoc
//
//	@Summary		Update a user
//	@Description	Patch email, verified, suspicious or role. Promotion to manager or superuser needs superuser clearance.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		int						true	"User id"
//	@Param			request	body		dto.UpdateUserRequestDTO	true	"Fields to patch"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		403		{object}	utils.Response	"Role assignment not allowed"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/users/{userId} [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req dto.UpdateUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	target, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	patch := userservice.ManagerPatch{
		Email:      req.Email,
		Verified:   req.Verified,
		Suspicious: req.Suspicious,
	}
	if req.Role != nil {
		role := clearance.Role(*req.Role)
		patch.Role = &role
	}

	updated, err := h.userService.Update(r.Context(), actor.Role, target.Utorid, patch)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrRoleNotAllowed):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, userservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatUser(updated, true))
}

// GetMe godoc
//
//	@Summary		Get own profile
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.UserResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	user, err := h.userService.Get(r.Context(), actor.Utorid)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatUser(user, false))
}

// UpdateMe godoc
//
//	@Summary		Update own profile
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateSelfRequestDTO	true	"Fields to patch"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/users/me [patch]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.UpdateSelfRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email != nil && !validate.IsCampusEmail(*req.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Email must be a campus address")
		return
	}

	user, err := h.userService.UpdateSelf(r.Context(), actor.Utorid, req.Name, req.Email)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatUser(user, false))
}

// ChangePassword godoc
//
//	@Summary		Change own password
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ChangePasswordRequestDTO	true	"Old and new passwords"
//	@Success		200		{string}	string							"Password updated"
//	@Failure		400		{object}	utils.Response	"Invalid request body or weak password"
//	@Failure		403		{object}	utils.Response	"Wrong current password"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/users/me/password [patch]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.ChangePasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validate.IsStrongPassword(req.New) {
		utils.RespondWithError(w, http.StatusBadRequest, "Password does not meet the strength requirements")
		return
	}

	err := h.userService.ChangePassword(r.Context(), actor.Utorid, req.Old, req.New)
	if err != nil {
		if errors.Is(err, userservice.ErrWrongPassword) {
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "password updated")
}

// The suspicious flag is a back-office signal and stays hidden from the
// owner's own profile view.
func formatUser(u *domain.User, managerView bool) dto.UserResponseDTO {
	resp := dto.UserResponseDTO{
		ID:        u.ID,
		Utorid:    u.Utorid,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Points:    u.Points,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
	if managerView {
		suspicious := u.Suspicious
		resp.Suspicious = &suspicious
	}
	return resp
}
