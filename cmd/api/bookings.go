package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"squeedr/internal/domain/bookings"
	"squeedr/internal/domain/workspaces"
	"squeedr/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateBookingPayload struct {
	Start     time.Time `json:"start_time" validate:"required"`
	End       time.Time `json:"end_time" validate:"required"`
	Attendees int       `json:"attendees" validate:"required,gte=1"`
	Notes     *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// createBookingHandler godoc
//
//	@Summary		Book a workspace slot
//	@Description	Books the requested window. When the slot is already taken the response suggests joining the waitlist.
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			workspaceID	path		int						true	"Workspace ID"
//	@Param			payload		body		CreateBookingPayload	true	"Booking details"
//	@Success		201			{object}	bookings.Booking		"Booking confirmed"
//	@Failure		400			{object}	ErrorBadRequestResponse	"Bad request"
//	@Failure		404			{object}	error					"Workspace not found"
//	@Failure		409			{object}	error					"Slot already booked"
//	@Failure		500			{object}	error					"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID}/bookings [post]
func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	workspaceID, err := strconv.ParseInt(chi.URLParam(r, "workspaceID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateBookingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !payload.End.After(payload.Start) {
		app.badRequestResponse(w, r, errors.New("end_time must be after start_time"))
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

	booking := &bookings.Booking{
		Reference:   ref,
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Start:       payload.Start,
		End:         payload.End,
		Attendees:   payload.Attendees,
		Status:      bookings.StatusConfirmed,
		Source:      bookings.SourceDirect,
		Notes:       payload.Notes,
	}

	if err := app.store.Bookings.Create(r.Context(), booking); err != nil {
		if errors.Is(err, bookings.ErrSlotTaken) {
			writeJSONError(w, http.StatusConflict, "time slot is already booked, you can join the waitlist for this slot")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myBookingsHandler godoc
//
//	@Summary		List my bookings
//	@Description	Returns the caller's bookings, optionally filtered by status
//	@Tags			bookings
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	Enums(confirmed, cancelled)
//	@Param			page	query		int		false	"Page number (default: 1)"
//	@Param			limit	query		int		false	"Items per page (default: 20)"
//	@Success		200		{array}		bookings.Booking
//	@Failure		500		{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/bookings/mine [get]
func (app *application) myBookingsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	pg := params.ParsePagination(r.URL.Query())
	filter := bookings.Filter{
		Page:  pg.Page,
		Limit: pg.Limit,
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := bookings.Status(raw)
		if status != bookings.StatusConfirmed && status != bookings.StatusCancelled {
			app.badRequestResponse(w, r, errors.New("invalid status filter"))
			return
		}
		filter.Status = &status
	}

	list, err := app.store.Bookings.ListByUser(r.Context(), user.ID, filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// workspaceBookingsHandler godoc
//
//	@Summary		List a workspace's bookings
//	@Description	Returns bookings made against a workspace. Only the owner may list them.
//	@Tags			bookings
//	@Produce		json
//	@Param			workspaceID	path		int		true	"Workspace ID"
//	@Param			status		query		string	false	"Filter by status"	Enums(confirmed, cancelled)
//	@Param			page		query		int		false	"Page number (default: 1)"
//	@Param			limit		query		int		false	"Items per page (default: 20)"
//	@Success		200			{array}		bookings.Booking
//	@Failure		403			{object}	error	"Not the owner"
//	@Failure		404			{object}	error	"Workspace not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID}/bookings [get]
func (app *application) workspaceBookingsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	workspaceID, err := strconv.ParseInt(chi.URLParam(r, "workspaceID"), 10, 64)
	if err != nil {
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

	if ws.OwnerID != user.ID {
		app.forbiddenResponse(w, r)
		return
	}

	pg := params.ParsePagination(r.URL.Query())
	filter := bookings.Filter{
		Page:  pg.Page,
		Limit: pg.Limit,
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := bookings.Status(raw)
		if status != bookings.StatusConfirmed && status != bookings.StatusCancelled {
			app.badRequestResponse(w, r, errors.New("invalid status filter"))
			return
		}
		filter.Status = &status
	}

	list, err := app.store.Bookings.ListByWorkspace(r.Context(), workspaceID, filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelBookingHandler godoc
//
//	@Summary		Cancel a booking
//	@Description	Cancels the caller's confirmed booking, freeing the slot for the waitlist
//	@Tags			bookings
//	@Produce		json
//	@Param			bookingID	path		int		true	"Booking ID"
//	@Success		204			{string}	string	"Booking cancelled"
//	@Failure		400			{object}	error	"Invalid ID"
//	@Failure		404			{object}	error	"Booking not found or not cancellable"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/bookings/{bookingID}/cancel [post]
func (app *application) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.store.Bookings.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.Bookings.Cancel(r.Context(), bookingID, user.ID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// The freed slot may have a queue behind it.
	app.promoteFreedSlot(r, booking)

	w.WriteHeader(http.StatusNoContent)
}
