package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"squeedr/internal/domain/bookings"
	"squeedr/internal/domain/waitlist"
	"squeedr/internal/domain/workspaces"
	"squeedr/internal/reference"

	"github.com/go-chi/chi/v5"
)

// waitlistBooker turns a claimed waitlist request into a confirmed booking.
type waitlistBooker struct {
	store bookings.Store
	refs  *reference.Generator
}

var _ waitlist.Booker = (*waitlistBooker)(nil)

func (b *waitlistBooker) CreateFromWaitlist(ctx context.Context, req *waitlist.Request) (int64, error) {
	ref, err := b.refs.Generate(req.UserID)
	if err != nil {
		return 0, err
	}

	booking := &bookings.Booking{
		Reference:   ref,
		WorkspaceID: req.WorkspaceID,
		UserID:      req.UserID,
		Start:       req.Start,
		End:         req.End,
		Attendees:   req.Attendees,
		Status:      bookings.StatusConfirmed,
		Source:      bookings.SourceWaitlist,
		Notes:       req.Notes,
	}
	if err := b.store.Create(ctx, booking); err != nil {
		return 0, err
	}
	return booking.ID, nil
}

// promoteFreedSlot offers a just-freed slot to the head of its waitlist, if
// anyone is queued. A failed offer is logged, not surfaced; the sweep picks
// the slot up again.
func (app *application) promoteFreedSlot(r *http.Request, booking *bookings.Booking) {
	slot := waitlist.Slot{
		WorkspaceID: booking.WorkspaceID,
		Start:       booking.Start,
		End:         booking.End,
	}

	next, err := app.store.Waitlist.NextPending(r.Context(), slot)
	if err != nil {
		app.logger.Errorw("error reading waitlist head for freed slot", "error", err)
		return
	}
	if next == nil {
		return
	}

	if _, err := app.waitlist.Offer(r.Context(), next.ID); err != nil {
		app.logger.Warnw("could not offer freed slot", "requestID", next.ID, "error", err)
	}
}

type JoinWaitlistPayload struct {
	Start     time.Time `json:"start_time" validate:"required"`
	End       time.Time `json:"end_time" validate:"required"`
	Purpose   string    `json:"purpose" validate:"required,max=255"`
	Attendees int       `json:"attendees" validate:"required,gte=1"`
	Notes     *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
	Priority  *int      `json:"priority,omitempty" validate:"omitempty,gte=1,lte=100"`
}

// joinWaitlistHandler godoc
//
//	@Summary		Join a workspace waitlist
//	@Description	Queues the caller for a currently unavailable slot. The request starts in pending status.
//	@Tags			waitlist
//	@Accept			json
//	@Produce		json
//	@Param			workspaceID	path		int						true	"Workspace ID"
//	@Param			payload		body		JoinWaitlistPayload		true	"Desired slot"
//	@Success		201			{object}	waitlist.Request		"Request queued"
//	@Failure		400			{object}	ErrorBadRequestResponse	"Bad request"
//	@Failure		404			{object}	error					"Workspace not found"
//	@Failure		500			{object}	error					"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID}/waitlist [post]
func (app *application) joinWaitlistHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	workspaceID, err := strconv.ParseInt(chi.URLParam(r, "workspaceID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload JoinWaitlistPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ws, err := app.store.Workspaces.GetByID(r.Context(), workspaceID)
	if err != nil {
		switch {
		case errors.Is(err, workspaces.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if payload.Attendees > ws.Capacity {
		app.badRequestResponse(w, r, errors.New("attendees exceed workspace capacity"))
		return
	}

	ref, err := app.refs.Generate(user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	req, err := app.waitlist.Create(r.Context(), waitlist.CreateInput{
		Reference:     ref,
		UserID:        user.ID,
		UserName:      user.DisplayName(),
		UserEmail:     user.Email,
		UserRole:      user.Role,
		WorkspaceID:   workspaceID,
		WorkspaceName: ws.Name,
		Start:         payload.Start,
		End:           payload.End,
		Purpose:       payload.Purpose,
		Attendees:     payload.Attendees,
		Notes:         payload.Notes,
		Priority:      payload.Priority,
	})
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, req); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listWorkspaceWaitlistHandler godoc
//
//	@Summary		List a workspace's waitlist
//	@Description	Returns the waitlist requests queued against a workspace, optionally filtered by status
//	@Tags			waitlist
//	@Produce		json
//	@Param			workspaceID	path		int		true	"Workspace ID"
//	@Param			status		query		string	false	"Filter by status"	Enums(pending, notified, fulfilled, expired, cancelled)
//	@Success		200			{array}		waitlist.Request
//	@Failure		400			{object}	error	"Invalid ID or status"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID}/waitlist [get]
func (app *application) listWorkspaceWaitlistHandler(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := strconv.ParseInt(chi.URLParam(r, "workspaceID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var status *waitlist.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := waitlist.Status(raw)
		switch s {
		case waitlist.StatusPending, waitlist.StatusNotified, waitlist.StatusFulfilled,
			waitlist.StatusExpired, waitlist.StatusCancelled:
			status = &s
		default:
			app.badRequestResponse(w, r, errors.New("invalid status filter"))
			return
		}
	}

	list, err := app.store.Waitlist.ListByWorkspace(r.Context(), workspaceID, status)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myWaitlistHandler godoc
//
//	@Summary		List my waitlist requests
//	@Description	Returns all waitlist requests the caller has made
//	@Tags			waitlist
//	@Produce		json
//	@Success		200	{array}		waitlist.Request
//	@Failure		500	{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/waitlist/mine [get]
func (app *application) myWaitlistHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Waitlist.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// notifyWaitlistHandler godoc
//
//	@Summary		Offer a slot to a pending request
//	@Description	Moves a pending request to notified and starts its claim window. Fails when the slot already carries an outstanding offer.
//	@Tags			waitlist
//	@Produce		json
//	@Param			requestID	path		string				true	"Waitlist request ID"
//	@Success		200			{object}	waitlist.Request	"Request notified"
//	@Failure		404			{object}	error				"Request not found"
//	@Failure		409			{object}	error				"Request not pending or slot already offered"
//	@Failure		500			{object}	error				"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/waitlist/{requestID}/notify [post]
func (app *application) notifyWaitlistHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	req, err := app.waitlist.Offer(r.Context(), requestID)
	if err != nil {
		app.waitlistErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, req); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ClaimResult carries the fulfilled request and the booking it produced.
type ClaimResult struct {
	Request   *waitlist.Request `json:"request"`
	BookingID int64             `json:"booking_id"`
}

// claimWaitlistHandler godoc
//
//	@Summary		Claim an offered slot
//	@Description	Accepts an outstanding offer, fulfilling the request and creating a confirmed booking. Offers past their deadline are rejected even before the sweep runs.
//	@Tags			waitlist
//	@Produce		json
//	@Param			requestID	path		string		true	"Waitlist request ID"
//	@Success		200			{object}	ClaimResult	"Slot claimed"
//	@Failure		403			{object}	error		"Not the requester"
//	@Failure		404			{object}	error		"Request not found"
//	@Failure		409			{object}	error		"Request is no longer active"
//	@Failure		410			{object}	error		"Offer has expired"
//	@Failure		500			{object}	error		"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/waitlist/{requestID}/claim [post]
func (app *application) claimWaitlistHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	requestID := chi.URLParam(r, "requestID")

	if !app.requireWaitlistOwnership(w, r, requestID, user.ID) {
		return
	}

	req, bookingID, err := app.waitlist.Claim(r.Context(), requestID)
	if err != nil {
		app.waitlistErrorResponse(w, r, err)
		return
	}

	result := ClaimResult{Request: req, BookingID: bookingID}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// declineWaitlistHandler godoc
//
//	@Summary		Decline an offered slot
//	@Description	Turns down an outstanding offer and promotes the next queued request for the slot
//	@Tags			waitlist
//	@Produce		json
//	@Param			requestID	path		string				true	"Waitlist request ID"
//	@Success		200			{object}	waitlist.Request	"Request cancelled"
//	@Failure		403			{object}	error				"Not the requester"
//	@Failure		404			{object}	error				"Request not found"
//	@Failure		409			{object}	error				"Request is no longer active"
//	@Failure		410			{object}	error				"Offer has expired"
//	@Failure		500			{object}	error				"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/waitlist/{requestID}/decline [post]
func (app *application) declineWaitlistHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	requestID := chi.URLParam(r, "requestID")

	if !app.requireWaitlistOwnership(w, r, requestID, user.ID) {
		return
	}

	req, err := app.waitlist.Decline(r.Context(), requestID)
	if err != nil {
		app.waitlistErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, req); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelWaitlistHandler godoc
//
//	@Summary		Cancel a waitlist request
//	@Description	Withdraws a pending or notified request. Cancelling a notified request promotes the next queued requester.
//	@Tags			waitlist
//	@Produce		json
//	@Param			requestID	path		string				true	"Waitlist request ID"
//	@Success		200			{object}	waitlist.Request	"Request cancelled"
//	@Failure		403			{object}	error				"Not the requester"
//	@Failure		404			{object}	error				"Request not found"
//	@Failure		409			{object}	error				"Request is no longer active"
//	@Failure		500			{object}	error				"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/waitlist/{requestID}/cancel [post]
func (app *application) cancelWaitlistHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	requestID := chi.URLParam(r, "requestID")

	if !app.requireWaitlistOwnership(w, r, requestID, user.ID) {
		return
	}

	req, err := app.waitlist.Cancel(r.Context(), requestID)
	if err != nil {
		app.waitlistErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, req); err != nil {
		app.internalServerError(w, r, err)
	}
}

// requireWaitlistOwnership rejects actions on another user's request. It
// writes the response itself and reports whether the handler may continue.
func (app *application) requireWaitlistOwnership(w http.ResponseWriter, r *http.Request, requestID string, userID int64) bool {
	req, err := app.store.Waitlist.GetByID(r.Context(), requestID)
	if err != nil {
		app.waitlistErrorResponse(w, r, err)
		return false
	}
	if req.UserID != userID {
		app.forbiddenResponse(w, r)
		return false
	}
	return true
}

// waitlistErrorResponse maps waitlist domain errors onto HTTP statuses.
func (app *application) waitlistErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *waitlist.InvalidTransitionError

	switch {
	case errors.Is(err, waitlist.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, waitlist.ErrStaleOffer):
		app.goneResponse(w, r, "this offer has expired")
	case errors.Is(err, waitlist.ErrSlotAlreadyOffered):
		app.conflictResponse(w, r, err)
	case errors.As(err, &invalid):
		app.conflictResponse(w, r, errors.New("this request is no longer active"))
	default:
		app.internalServerError(w, r, err)
	}
}
