package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"squeedr/internal/domain/workspaces"
	"squeedr/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateWorkspacePayload struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Capacity    int     `json:"capacity" validate:"required,gte=1,lte=500"`
	OpenHour    int     `json:"open_hour" validate:"gte=0,lte=23"`
	CloseHour   int     `json:"close_hour" validate:"required,gte=1,lte=24"`
}

// createWorkspaceHandler godoc
//
//	@Summary		Create a workspace
//	@Description	Creates a bookable workspace owned by the current user
//	@Tags			workspaces
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateWorkspacePayload	true	"Workspace details"
//	@Success		201		{object}	workspaces.Workspace	"Workspace created"
//	@Failure		400		{object}	ErrorBadRequestResponse	"Bad request"
//	@Failure		500		{object}	error					"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces [post]
func (app *application) createWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreateWorkspacePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if payload.CloseHour <= payload.OpenHour {
		app.badRequestResponse(w, r, errors.New("close_hour must be after open_hour"))
		return
	}

	ws := &workspaces.Workspace{
		OwnerID:     user.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Location:    payload.Location,
		Capacity:    payload.Capacity,
		OpenHour:    payload.OpenHour,
		CloseHour:   payload.CloseHour,
	}

	if err := app.store.Workspaces.Create(r.Context(), ws); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, ws); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listWorkspacesHandler godoc
//
//	@Summary		List workspaces
//	@Description	Returns paginated workspaces, optionally filtered to those owned by the caller
//	@Tags			workspaces
//	@Produce		json
//	@Param			mine	query		bool	false	"Only workspaces owned by the caller"
//	@Param			page	query		int		false	"Page number (default: 1)"
//	@Param			limit	query		int		false	"Items per page (default: 20)"
//	@Success		200		{array}		workspaces.Workspace
//	@Failure		500		{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces [get]
func (app *application) listWorkspacesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	pg := params.ParsePagination(r.URL.Query())
	filter := workspaces.Filter{
		Page:  pg.Page,
		Limit: pg.Limit,
	}
	if r.URL.Query().Get("mine") == "true" {
		filter.OwnerID = &user.ID
	}

	list, err := app.store.Workspaces.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getWorkspaceHandler godoc
//
//	@Summary		Get workspace
//	@Description	Returns a single workspace by ID
//	@Tags			workspaces
//	@Produce		json
//	@Param			workspaceID	path		int	true	"Workspace ID"
//	@Success		200			{object}	workspaces.Workspace
//	@Failure		400			{object}	error	"Invalid ID"
//	@Failure		404			{object}	error	"Workspace not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID} [get]
func (app *application) getWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := app.jsonResponse(w, http.StatusOK, ws); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateWorkspaceHandler godoc
//
//	@Summary		Update workspace
//	@Description	Updates workspace fields. Only the owner may update.
//	@Tags			workspaces
//	@Accept			json
//	@Produce		json
//	@Param			workspaceID	path		int		true	"Workspace ID"
//	@Param			body		body		object	true	"Fields to update: name, description, location, capacity, open_hour, close_hour"
//	@Success		204			{string}	string	"Workspace updated"
//	@Failure		400			{object}	error	"Bad request"
//	@Failure		403			{object}	error	"Not the owner"
//	@Failure		404			{object}	error	"Workspace not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID} [patch]
func (app *application) updateWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
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

	var payload struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Location    *string `json:"location"`
		Capacity    *int    `json:"capacity"`
		OpenHour    *int    `json:"open_hour"`
		CloseHour   *int    `json:"close_hour"`
	}
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Location != nil {
		updates["location"] = *payload.Location
	}
	if payload.Capacity != nil {
		updates["capacity"] = *payload.Capacity
	}
	if payload.OpenHour != nil {
		updates["open_hour"] = *payload.OpenHour
	}
	if payload.CloseHour != nil {
		updates["close_hour"] = *payload.CloseHour
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, errors.New("bad request, updates values can't be nil"))
		return
	}

	if err := app.store.Workspaces.Update(r.Context(), workspaceID, updates); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteWorkspaceHandler godoc
//
//	@Summary		Delete workspace
//	@Description	Deletes a workspace. Only the owner may delete.
//	@Tags			workspaces
//	@Produce		json
//	@Param			workspaceID	path		int		true	"Workspace ID"
//	@Success		204			{string}	string	"Workspace deleted"
//	@Failure		400			{object}	error	"Invalid ID"
//	@Failure		403			{object}	error	"Not the owner"
//	@Failure		404			{object}	error	"Workspace not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID} [delete]
func (app *application) deleteWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := app.store.Workspaces.Delete(r.Context(), workspaceID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AvailableSlot is one bookable hour of a workspace's day.
type AvailableSlot struct {
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

// workspaceAvailabilityHandler godoc
//
//	@Summary		Workspace availability
//	@Description	Returns hourly slots for the given date with their booked/free status
//	@Tags			workspaces
//	@Produce		json
//	@Param			workspaceID	path		int		true	"Workspace ID"
//	@Param			date		path		string	true	"Date (YYYY-MM-DD)"	example(2026-09-01)
//	@Success		200			{array}		AvailableSlot
//	@Failure		400			{object}	error	"Invalid ID or date"
//	@Failure		404			{object}	error	"Workspace not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/workspaces/{workspaceID}/availability [get]
func (app *application) workspaceAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := strconv.ParseInt(chi.URLParam(r, "workspaceID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	dateStr := r.URL.Query().Get("date")
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("date must be YYYY-MM-DD"))
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

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := app.store.Workspaces.BookedIntervals(r.Context(), workspaceID, dayStart, dayEnd)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	var slots []AvailableSlot
	for hour := ws.OpenHour; hour < ws.CloseHour; hour++ {
		start := dayStart.Add(time.Duration(hour) * time.Hour)
		end := start.Add(time.Hour)

		available := true
		for _, iv := range booked {
			if start.Before(iv.End) && iv.Start.Before(end) {
				available = false
				break
			}
		}

		slots = append(slots, AvailableSlot{Start: start, End: end, Available: available})
	}

	if err := app.jsonResponse(w, http.StatusOK, slots); err != nil {
		app.internalServerError(w, r, err)
	}
}
