package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/dto"
	"github.com/campuspoints/campuspoints/internal/service/eventservice"
	"github.com/campuspoints/campuspoints/pkg/auth"
	"github.com/campuspoints/campuspoints/pkg/clearance"
	"github.com/campuspoints/campuspoints/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Get(ctx context.Context, id int) (*domain.Event, error)
	Update(ctx context.Context, id int, patch eventservice.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, id int) error
	AddOrganizer(ctx context.Context, eventID int, utorid string) (*domain.Event, error)
	RemoveOrganizer(ctx context.Context, eventID int, userID int) error
	AddGuest(ctx context.Context, eventID int, utorid string) (*domain.Event, error)
	RemoveGuest(ctx context.Context, eventID int, userID int) error
	CreateReward(ctx context.Context, actorUtorid string, eventID int, in eventservice.RewardInput) ([]domain.Transaction, error)
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int, error)
}

type EventHandler struct {
	eventService Service
}

func New(eventService Service) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// Create godoc
//
//	@Summary		Create an event
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.EventRequestDTO	true	"Event payload"
//	@Success		201		{object}	dto.EventResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or window"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := &domain.Event{
		Name:         req.Name,
		Description:  req.Description,
		Location:     req.Location,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Capacity:     req.Capacity,
		PointsRemain: req.Points,
	}
	created, err := h.eventService.Create(r.Context(), event)
	if err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatEvent(created, true))
}

// List godoc
//
//	@Summary		List events
//	@Tags			Events
//	@Security		BearerAuth
//	@Produce		json
//	@Param			name		query		string	false	"Name substring"
//	@Param			location	query		string	false	"Location substring"
//	@Param			published	query		bool	false	"Published filter, manager view only"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	dto.ListEventsResponseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/events [get]
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	managerView := clearance.AtLeast(actor.Role, clearance.Manager)

	q := r.URL.Query()
	filter := domain.EventFilter{
		Name:     q.Get("name"),
		Location: q.Get("location"),
	}
	if managerView {
		if v := q.Get("published"); v != "" {
			published := v == "true"
			filter.Published = &published
		}
	} else {
		// Regular users only ever see published events.
		published := true
		filter.Published = &published
	}
	filter.Page, filter.Limit = utils.Pagination(q.Get("page"), q.Get("limit"))

	events, count, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	results := make([]dto.EventResponseDTO, len(events))
	for i := range events {
		results[i] = formatEvent(&events[i], managerView)
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ListEventsResponseDTO{
		Count:   count,
		Results: results,
	})
}

// Get godoc
//
//	@Summary		Get an event by id
//	@Tags			Events
//	@Security		BearerAuth
//	@Produce		json
//	@Param			eventId	path		int	true	"Event id"
//	@Success		200		{object}	dto.EventResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid event id"
//	@Failure		404		{object}	utils.Response	"Event not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId} [get]
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		respondEventError(w, err)
		return
	}

	fullView := clearance.AtLeast(actor.Role, clearance.Manager) || event.IsOrganizer(actor.Utorid)
	if !fullView && !event.Published {
		utils.RespondWithError(w, http.StatusNotFound, "event not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatEvent(event, fullView))
}

// Update godoc
//
//	@Summary		Update an event
//	@Description	Patch event fields. Organizers may edit their own events; capacity cannot drop below the guest count and the point pool never below what is already awarded.
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			eventId	path		int					true	"Event id"
//	@Param			request	body		dto.EventPatchDTO	true	"Fields to patch"
//	@Success		200		{object}	dto.EventResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or pool below awarded"
//	@Failure		403		{object}	utils.Response	"Not a manager or organizer"
//	@Failure		404		{object}	utils.Response	"Event not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId} [patch]
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req dto.EventPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		respondEventError(w, err)
		return
	}
	if !clearance.AtLeast(actor.Role, clearance.Manager) && !event.IsOrganizer(actor.Utorid) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden: Insufficient clearance")
		return
	}
	// Publication is a manager-only switch.
	if req.Published != nil && !clearance.AtLeast(actor.Role, clearance.Manager) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden: Insufficient clearance")
		return
	}

	updated, err := h.eventService.Update(r.Context(), id, eventservice.EventPatch{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Points:      req.Points,
		Published:   req.Published,
	})
	if err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, formatEvent(updated, true))
}

// Delete godoc
//
//	@Summary		Delete an unpublished event
//	@Tags			Events
//	@Security		BearerAuth
//	@Param			eventId	path	int	true	"Event id"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Event already published"
//	@Failure		404	{object}	utils.Response	"Event not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId} [delete]
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	if err := h.eventService.Delete(r.Context(), id); err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

// AddOrganizer godoc
//
//	@Summary		Add an organizer to an event
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			eventId	path		int						true	"Event id"
//	@Param			request	body		dto.AddMemberRequestDTO	true	"Organizer utorid"
//	@Success		201		{object}	dto.EventResponseDTO
//	@Failure		400		{object}	utils.Response	"User is already a guest"
//	@Failure		404		{object}	utils.Response	"Event or user not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId}/organizers [post]
func (h *EventHandler) AddOrganizer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req dto.AddMemberRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.AddOrganizer(r.Context(), id, req.Utorid)
	if err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatEvent(event, true))
}

// RemoveOrganizer godoc
//
//	@Summary		Remove an organizer from an event
//	@Tags			Events
//	@Security		BearerAuth
//	@Param			eventId	path	int	true	"Event id"
//	@Param			userId	path	int	true	"User id"
//	@Success		204
//	@Failure		404	{object}	utils.Response	"Event not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId}/organizers/{userId} [delete]
func (h *EventHandler) RemoveOrganizer(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.eventService.RemoveOrganizer(r.Context(), eventID, userID); err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

// AddGuest godoc
//
//	@Summary		Add a guest to an event
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			eventId	path		int						true	"Event id"
//	@Param			request	body		dto.AddMemberRequestDTO	true	"Guest utorid"
//	@Success		201		{object}	dto.EventResponseDTO
//	@Failure		400		{object}	utils.Response	"Already a guest, an organizer, or the event is full"
//	@Failure		404		{object}	utils.Response	"Event or user not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId}/guests [post]
func (h *EventHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	existing, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		respondEventError(w, err)
		return
	}
	if !clearance.AtLeast(actor.Role, clearance.Manager) && !existing.IsOrganizer(actor.Utorid) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden: Insufficient clearance")
		return
	}

	var req dto.AddMemberRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.AddGuest(r.Context(), id, req.Utorid)
	if err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatEvent(event, true))
}

// RSVP godoc
//
//	@Summary		Join an event as a guest
//	@Tags			Events
//	@Security		BearerAuth
//	@Produce		json
//	@Param			eventId	path		int	true	"Event id"
//	@Success		201		{object}	dto.EventResponseDTO
//	@Failure		400		{object}	utils.Response	"Already a guest or the event is full"
//	@Failure		404		{object}	utils.Response	"Event not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId}/guests/me [post]
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	event, err := h.eventService.AddGuest(r.Context(), id, actor.Utorid)
	if err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, formatEvent(event, false))
}

// CancelRSVP godoc
//
//	@Summary		Leave an event
//	@Tags			Events
//	@Security		BearerAuth
//	@Param			eventId	path	int	true	"Event id"
//	@Success		204
//	@Failure		404	{object}	utils.Response	"Event not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId}/guests/me [delete]
func (h *EventHandler) CancelRSVP(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	if err := h.eventService.RemoveGuest(r.Context(), id, actor.ID); err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

// RemoveGuest godoc
//
//	@Summary		Remove a guest from an event
//	@Tags			Events
//	@Security		BearerAuth
//	@Param			eventId	path	int	true	"Event id"
//	@Param			userId	path	int	true	"User id"
//	@Success		204
//	@Failure		404	{object}	utils.Response	"Event not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId}/guests/{userId} [delete]
func (h *EventHandler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.eventService.RemoveGuest(r.Context(), eventID, userID); err != nil {
		respondEventError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

// CreateReward godoc
//
//	@Summary		Award event points
//	@Description	Credits pool points to one guest, or to every guest when no utorid is given. The whole distribution commits as one unit.
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			eventId	path		int						true	"Event id"
//	@Param			request	body		dto.RewardRequestDTO	true	"Reward payload"
//	@Success		201		{array}		dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Not a guest, no guests, or the pool is short"
//	@Failure		403		{object}	utils.Response	"Not a manager or organizer"
//	@Failure		404		{object}	utils.Response	"Event or user not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/events/{eventId}/transactions [post]
func (h *EventHandler) CreateReward(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req dto.RewardRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	trxs, err := h.eventService.CreateReward(r.Context(), actor.Utorid, id, eventservice.RewardInput{
		Utorid: req.Utorid,
		Amount: req.Amount,
	})
	if err != nil {
		respondEventError(w, err)
		return
	}

	results := make([]dto.TransactionResponseDTO, len(trxs))
	for i := range trxs {
		results[i] = dto.TransactionResponseDTO{
			ID:        trxs[i].ID,
			Utorid:    trxs[i].Utorid,
			Type:      string(trxs[i].Type),
			Amount:    trxs[i].Amount,
			RelatedID: trxs[i].RelatedID,
			Remark:    trxs[i].Remark,
			CreatedBy: trxs[i].CreatedBy,
			CreatedAt: trxs[i].CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusCreated, results)
}

func respondEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventservice.ErrEventNotFound),
		errors.Is(err, eventservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, eventservice.ErrInsufficientClearance):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, eventservice.ErrNoGuests),
		errors.Is(err, eventservice.ErrNotGuest),
		errors.Is(err, eventservice.ErrInsufficientPool),
		errors.Is(err, eventservice.ErrEventFull),
		errors.Is(err, eventservice.ErrMemberConflict),
		errors.Is(err, eventservice.ErrAlreadyGuest),
		errors.Is(err, eventservice.ErrEventPublished),
		errors.Is(err, eventservice.ErrInvalidWindow),
		errors.Is(err, eventservice.ErrPointsBelowAwarded):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// formatEvent shapes an event for the response. Pool counters, publication
// state and the guest list are back-office details; the public view carries
// the guest count only.
func formatEvent(e *domain.Event, fullView bool) dto.EventResponseDTO {
	organizers := make([]dto.EventMemberDTO, len(e.Organizers))
	for i, o := range e.Organizers {
		organizers[i] = dto.EventMemberDTO{ID: o.ID, Utorid: o.Utorid, Name: o.Name}
	}

	resp := dto.EventResponseDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Capacity:    e.Capacity,
		Organizers:  organizers,
	}
	if fullView {
		pointsRemain := e.PointsRemain
		pointsAwarded := e.PointsAwarded
		published := e.Published
		resp.PointsRemain = &pointsRemain
		resp.PointsAwarded = &pointsAwarded
		resp.Published = &published
		guests := make([]dto.EventMemberDTO, len(e.Guests))
		for i, g := range e.Guests {
			guests[i] = dto.EventMemberDTO{ID: g.ID, Utorid: g.Utorid, Name: g.Name}
		}
		resp.Guests = guests
	} else {
		numGuests := len(e.Guests)
		resp.NumGuests = &numGuests
	}
	return resp
}
