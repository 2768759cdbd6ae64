package transactions

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
	"github.com/campuspoints/campuspoints/internal/service/transactionservice"
	"github.com/campuspoints/campuspoints/internal/service/userservice"
	"github.com/campuspoints/campuspoints/pkg/auth"
	"github.com/campuspoints/campuspoints/pkg/utils"
)

type Service interface {
	CreatePurchase(ctx context.Context, actorUtorid string, in transactionservice.PurchaseInput) (*domain.Transaction, error)
	CreateAdjustment(ctx context.Context, actorUtorid string, in transactionservice.AdjustmentInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, actorUtorid, receiverUtorid string, amount int, remark string) (*domain.Transaction, *domain.Transaction, error)
	CreateRedemption(ctx context.Context, actorUtorid string, amount int, remark string) (*domain.Transaction, error)
	ProcessRedemption(ctx context.Context, actorUtorid string, trxID int) (*domain.Transaction, error)
	SetSuspicious(ctx context.Context, trxID int, suspicious bool) (*domain.Transaction, error)
	Get(ctx context.Context, trxID int) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int, error)
}

// UserGetter resolves the numeric id in transfer routes to a utorid.
type UserGetter interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
}

type TransactionHandler struct {
	trxService  Service
	userService UserGetter
}

func New(trxService Service, userService UserGetter) *TransactionHandler {
	return &TransactionHandler{
		trxService:  trxService,
		userService: userService,
	}
}

// Create godoc
//
//	@Summary		Record a purchase or adjustment
//	@Description	Purchase credits ceil(spent*4) base points plus promotion bonuses; adjustment applies a signed correction against a related transaction
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateTransactionRequestDTO	true	"Transaction payload"
//	@Success		201		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or promotion"
//	@Failure		403		{object}	utils.Response	"Insufficient clearance"
//	@Failure		404		{object}	utils.Response	"User or related transaction not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/transactions [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.CreateTransactionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		trx *domain.Transaction
		err error
	)
	switch domain.TransactionType(req.Type) {
	case domain.TrxPurchase:
		trx, err = h.trxService.CreatePurchase(r.Context(), actor.Utorid, transactionservice.PurchaseInput{
			Utorid:       req.Utorid,
			Spent:        *req.Spent,
			PromotionIDs: req.PromotionIDs,
			Remark:       req.Remark,
		})
	case domain.TrxAdjustment:
		trx, err = h.trxService.CreateAdjustment(r.Context(), actor.Utorid, transactionservice.AdjustmentInput{
			Utorid:       req.Utorid,
			Amount:       *req.Amount,
			RelatedID:    *req.RelatedID,
			PromotionIDs: req.PromotionIDs,
			Remark:       req.Remark,
		})
	}
	if err != nil {
		respondTrxError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatTransaction(trx, true))
}

// List godoc
//
//	@Summary		List all transactions
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			name		query		string	false	"Customer utorid or name substring"
//	@Param			createdBy	query		string	false	"Creator utorid"
//	@Param			suspicious	query		bool	false	"Suspicious filter"
//	@Param			promotionId	query		int		false	"Applied promotion id"
//	@Param			type		query		string	false	"Transaction type"
//	@Param			relatedId	query		int		false	"Related id, only with type"
//	@Param			amount		query		int		false	"Amount bound, needs operator"
//	@Param			operator	query		string	false	"gte or lte"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	dto.ListTransactionsResponseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	trxs, count, err := h.trxService.List(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, listResponse(trxs, count, true))
}

// Get godoc
//
//	@Summary		Get a transaction by id
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			transactionId	path		int	true	"Transaction id"
//	@Success		200				{object}	dto.TransactionResponseDTO
//	@Failure		400				{object}	utils.Response	"Invalid transaction id"
//	@Failure		404				{object}	utils.Response	"Transaction not found"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/transactions/{transactionId} [get]
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "transactionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}
	trx, err := h.trxService.Get(r.Context(), id)
	if err != nil {
		respondTrxError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatTransaction(trx, true))
}

// SetSuspicious godoc
//
//	@Summary		Toggle the suspicious flag
//	@Description	Flagging reverses the credited points; clearing restores them. A double toggle is balance neutral.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			transactionId	path		int							true	"Transaction id"
//	@Param			request			body		dto.SuspiciousRequestDTO	true	"Desired flag state"
//	@Success		200				{object}	dto.TransactionResponseDTO
//	@Failure		400				{object}	utils.Response	"Invalid request body"
//	@Failure		404				{object}	utils.Response	"Transaction not found"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/transactions/{transactionId}/suspicious [patch]
func (h *TransactionHandler) SetSuspicious(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "transactionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req dto.SuspiciousRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	trx, err := h.trxService.SetSuspicious(r.Context(), id, *req.Suspicious)
	if err != nil {
		respondTrxError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatTransaction(trx, true))
}

// Process godoc
//
//	@Summary		Process a pending redemption
//	@Description	Sets the processor exactly once and debits the owner's balance in the same unit
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			transactionId	path		int						true	"Transaction id"
//	@Param			request			body		dto.ProcessedRequestDTO	true	"Must set processed to true"
//	@Success		200				{object}	dto.TransactionResponseDTO
//	@Failure		400				{object}	utils.Response	"Not a redemption or already processed"
//	@Failure		403				{object}	utils.Response	"Insufficient clearance"
//	@Failure		404				{object}	utils.Response	"Transaction not found"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/transactions/{transactionId}/processed [patch]
func (h *TransactionHandler) Process(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "transactionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req dto.ProcessedRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	trx, err := h.trxService.ProcessRedemption(r.Context(), actor.Utorid, id)
	if err != nil {
		respondTrxError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatTransaction(trx, true))
}

// CreateRedemption godoc
//
//	@Summary		Request a redemption
//	@Description	Records the intent to redeem points; the balance is untouched until a cashier processes it
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateRedemptionRequestDTO	true	"Redemption payload"
//	@Success		201		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or insufficient points"
//	@Failure		403		{object}	utils.Response	"User not verified"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/users/me/transactions [post]
func (h *TransactionHandler) CreateRedemption(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.CreateRedemptionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	trx, err := h.trxService.CreateRedemption(r.Context(), actor.Utorid, req.Amount, req.Remark)
	if err != nil {
		respondTrxError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatTransaction(trx, false))
}

// ListMine godoc
//
//	@Summary		List own transactions
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type		query		string	false	"Transaction type"
//	@Param			relatedId	query		int		false	"Related id, only with type"
//	@Param			amount		query		int		false	"Amount bound, needs operator"
//	@Param			operator	query		string	false	"gte or lte"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	dto.ListTransactionsResponseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/users/me/transactions [get]
func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	filter := parseFilter(r)
	filter.Utorid = actor.Utorid
	// Self view never filters or exposes the suspicious flag.
	filter.Suspicious = nil
	filter.Name = ""
	filter.CreatedBy = ""

	trxs, count, err := h.trxService.List(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, listResponse(trxs, count, false))
}

// Transfer godoc
//
//	@Summary		Transfer points to another user
//	@Description	Moves points between the sender and the user in the path; both ledger rows and both balance deltas commit together
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		int						true	"Receiver user id"
//	@Param			request	body		dto.TransferRequestDTO	true	"Transfer payload"
//	@Success		201		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Self transfer or insufficient points"
//	@Failure		403		{object}	utils.Response	"Sender not verified"
//	@Failure		404		{object}	utils.Response	"Receiver not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/users/{userId}/transactions [post]
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	receiverID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	receiver, err := h.userService.GetByID(r.Context(), receiverID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	debit, _, err := h.trxService.Transfer(r.Context(), actor.Utorid, receiver.Utorid, req.Amount, req.Remark)
	if err != nil {
		respondTrxError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatTransaction(debit, false))
}

func parseFilter(r *http.Request) domain.TransactionFilter {
	q := r.URL.Query()
	filter := domain.TransactionFilter{
		Name:      q.Get("name"),
		CreatedBy: q.Get("createdBy"),
		Type:      domain.TransactionType(q.Get("type")),
		Operator:  q.Get("operator"),
	}
	if v := q.Get("suspicious"); v != "" {
		suspicious := v == "true"
		filter.Suspicious = &suspicious
	}
	if v := q.Get("promotionId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.PromotionID = &id
		}
	}
	if v := q.Get("relatedId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.RelatedID = &id
		}
	}
	if v := q.Get("amount"); v != "" {
		if amount, err := strconv.Atoi(v); err == nil {
			filter.Amount = &amount
		}
	}
	filter.Page, filter.Limit = utils.Pagination(q.Get("page"), q.Get("limit"))
	return filter
}

func respondTrxError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transactionservice.ErrInsufficientClearance):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, transactionservice.ErrNotVerified):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, transactionservice.ErrUserNotFound),
		errors.Is(err, transactionservice.ErrTransactionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, transactionservice.ErrRelatedMismatch),
		errors.Is(err, transactionservice.ErrSelfTransfer),
		errors.Is(err, transactionservice.ErrInsufficientPoints),
		errors.Is(err, transactionservice.ErrNotRedemption),
		errors.Is(err, transactionservice.ErrAlreadyProcessed),
		errors.Is(err, promotionservice.ErrPromotionNotFound),
		errors.Is(err, promotionservice.ErrPromotionAlreadyUsed),
		errors.Is(err, promotionservice.ErrPromotionNotStarted),
		errors.Is(err, promotionservice.ErrPromotionExpired),
		errors.Is(err, promotionservice.ErrMinSpendingNotMet):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// formatTransaction shapes a ledger row for the response. The suspicious flag
// is only visible to back-office views.
func formatTransaction(trx *domain.Transaction, managerView bool) dto.TransactionResponseDTO {
	resp := dto.TransactionResponseDTO{
		ID:           trx.ID,
		Utorid:       trx.Utorid,
		Type:         string(trx.Type),
		Spent:        trx.Spent,
		Amount:       trx.Amount,
		Redeemed:     trx.Redeemed,
		RelatedID:    trx.RelatedID,
		Remark:       trx.Remark,
		CreatedBy:    trx.CreatedBy,
		ProcessedBy:  trx.ProcessedBy,
		PromotionIDs: trx.PromotionIDs,
		CreatedAt:    trx.CreatedAt,
	}
	if managerView {
		suspicious := trx.Suspicious
		resp.Suspicious = &suspicious
	}
	return resp
}

func listResponse(trxs []domain.Transaction, count int, managerView bool) dto.ListTransactionsResponseDTO {
	results := make([]dto.TransactionResponseDTO, len(trxs))
	for i := range trxs {
		results[i] = formatTransaction(&trxs[i], managerView)
	}
	return dto.ListTransactionsResponseDTO{
		Count:   count,
		Results: results,
	}
}
