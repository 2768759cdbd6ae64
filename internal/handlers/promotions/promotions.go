package promotions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/dto"
	"github.com/campuspoints/campuspoints/internal/service/promotionservice"
	"github.com/campuspoints/campuspoints/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error)
	Get(ctx context.Context, id int) (*domain.Promotion, error)
	Update(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter domain.PromotionFilter) ([]domain.Promotion, int, error)
}

type PromotionHandler struct {
	promotionService Service
}

func New(promotionService Service) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

// Create godoc
//
//	@Summary		Create a promotion
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PromotionRequestDTO	true	"Promotion payload"
//	@Success		201		{object}	dto.PromotionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or window"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/promotions [post]
func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PromotionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	promo := &domain.Promotion{
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.PromotionType(req.Type),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MinSpending: req.MinSpending,
		Rate:        req.Rate,
		Points:      req.Points,
	}
	created, err := h.promotionService.Create(r.Context(), promo)
	if err != nil {
		respondPromoError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatPromotion(created))
}

// List godoc
//
//	@Summary		List promotions
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			name	query		string	false	"Name substring"
//	@Param			type	query		string	false	"automatic or one-time"
//	@Param			page	query		int		false	"Page number"
//	@Param			limit	query		int		false	"Page size"
//	@Success		200		{object}	dto.ListPromotionsResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/promotions [get]
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PromotionFilter{
		Name: q.Get("name"),
		Type: domain.PromotionType(q.Get("type")),
	}
	filter.Page, filter.Limit = utils.Pagination(q.Get("page"), q.Get("limit"))

	promos, count, err := h.promotionService.List(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	results := make([]dto.PromotionResponseDTO, len(promos))
	for i := range promos {
		results[i] = formatPromotion(&promos[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ListPromotionsResponseDTO{
		Count:   count,
		Results: results,
	})
}

// Get godoc
//
//	@Summary		Get a promotion by id
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			promotionId	path		int	true	"Promotion id"
//	@Success		200			{object}	dto.PromotionResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid promotion id"
//	@Failure		404			{object}	utils.Response	"Promotion not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/promotions/{promotionId} [get]
func (h *PromotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "promotionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid promotion id")
		return
	}
	promo, err := h.promotionService.Get(r.Context(), id)
	if err != nil {
		respondPromoError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatPromotion(promo))
}

// Update godoc
//
//	@Summary		Update a promotion
//	@Description	Patch promotion fields. The window cannot be rewritten once the promotion is live.
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			promotionId	path		int						true	"Promotion id"
//	@Param			request		body		dto.PromotionPatchDTO	true	"Fields to patch"
//	@Success		200			{object}	dto.PromotionResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid request body or started promotion"
//	@Failure		404			{object}	utils.Response	"Promotion not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/promotions/{promotionId} [patch]
func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "promotionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid promotion id")
		return
	}

	var req dto.PromotionPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	promo, err := h.promotionService.Get(r.Context(), id)
	if err != nil {
		respondPromoError(w, err)
		return
	}

	if req.Name != nil {
		promo.Name = *req.Name
	}
	if req.Description != nil {
		promo.Description = *req.Description
	}
	if req.Type != nil {
		promo.Type = domain.PromotionType(*req.Type)
	}
	if req.StartTime != nil {
		promo.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		promo.EndTime = *req.EndTime
	}
	if req.MinSpending != nil {
		promo.MinSpending = req.MinSpending
	}
	if req.Rate != nil {
		promo.Rate = req.Rate
	}
	if req.Points != nil {
		promo.Points = req.Points
	}

	updated, err := h.promotionService.Update(r.Context(), promo)
	if err != nil {
		respondPromoError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatPromotion(updated))
}

// Delete godoc
//
//	@Summary		Delete a promotion
//	@Description	Only promotions that have not started can be deleted
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Param			promotionId	path	int	true	"Promotion id"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Promotion already started"
//	@Failure		404	{object}	utils.Response	"Promotion not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/promotions/{promotionId} [delete]
func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "promotionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid promotion id")
		return
	}
	if err := h.promotionService.Delete(r.Context(), id); err != nil {
		respondPromoError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

func respondPromoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, promotionservice.ErrPromotionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, promotionservice.ErrInvalidWindow),
		errors.Is(err, promotionservice.ErrPromotionStarted):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func formatPromotion(p *domain.Promotion) dto.PromotionResponseDTO {
	return dto.PromotionResponseDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		MinSpending: p.MinSpending,
		Rate:        p.Rate,
		Points:      p.Points,
	}
}
