package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"squeedr/internal/domain/accesscontrol"
	"squeedr/internal/domain/sessions"
	"squeedr/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateSessionPayload struct {
	Title       string    `json:"title" validate:"required,max=200"`
	ClientID    int64     `json:"client_id" validate:"required"`
	WorkspaceID *int64    `json:"workspace_id,omitempty"`
	Start       time.Time `json:"start_time" validate:"required"`
	End         time.Time `json:"end_time" validate:"required"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// createSessionHandler godoc
//
//	@Summary		Create a session
//	@Description	Schedules a session between the calling expert and a client
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateSessionPayload	true	"Session details"
//	@Success		201		{object}	sessions.Session		"Session created"
//	@Failure		400		{object}	ErrorBadRequestResponse	"Bad request"
//	@Failure		500		{object}	error					"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/sessions [post]
func (app *application) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreateSessionPayload
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

	session := &sessions.Session{
		Title:       payload.Title,
		ExpertID:    user.ID,
		ClientID:    payload.ClientID,
		WorkspaceID: payload.WorkspaceID,
		Start:       payload.Start,
		End:         payload.End,
		Status:      sessions.StatusUpcoming,
		Notes:       payload.Notes,
	}

	if err := app.store.Sessions.Create(r.Context(), session); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listSessionsHandler godoc
//
//	@Summary		List sessions
//	@Description	Returns sessions the caller is part of, as expert or client depending on the active role
//	@Tags			sessions
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	Enums(upcoming, completed, cancelled)
//	@Param			page	query		int		false	"Page number (default: 1)"
//	@Param			limit	query		int		false	"Items per page (default: 20)"
//	@Success		200		{array}		sessions.Session
//	@Failure		500		{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/sessions [get]
func (app *application) listSessionsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	pg := params.ParsePagination(r.URL.Query())
	filter := sessions.Filter{
		Page:  pg.Page,
		Limit: pg.Limit,
	}

	// Experts and owners see the sessions they run, clients the ones they
	// attend.
	switch user.Role {
	case accesscontrol.RoleClient:
		filter.ClientID = &user.ID
	default:
		filter.ExpertID = &user.ID
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := sessions.Status(raw)
		switch status {
		case sessions.StatusUpcoming, sessions.StatusCompleted, sessions.StatusCancelled:
			filter.Status = &status
		default:
			app.badRequestResponse(w, r, errors.New("invalid status filter"))
			return
		}
	}

	list, err := app.store.Sessions.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getSessionHandler godoc
//
//	@Summary		Get session
//	@Description	Returns one session by ID. Only participants may view it.
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		int	true	"Session ID"
//	@Success		200			{object}	sessions.Session
//	@Failure		400			{object}	error	"Invalid ID"
//	@Failure		403			{object}	error	"Not a participant"
//	@Failure		404			{object}	error	"Session not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/sessions/{sessionID} [get]
func (app *application) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	if session.ExpertID != user.ID && session.ClientID != user.ID {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateSessionHandler godoc
//
//	@Summary		Update session
//	@Description	Updates session fields. Only the owning expert may update.
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		int		true	"Session ID"
//	@Param			body		body		object	true	"Fields to update: title, start_time, end_time, status, notes"
//	@Success		204			{string}	string	"Session updated"
//	@Failure		400			{object}	error	"Bad request"
//	@Failure		403			{object}	error	"Not the owning expert"
//	@Failure		404			{object}	error	"Session not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/sessions/{sessionID} [patch]
func (app *application) updateSessionHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	if session.ExpertID != user.ID {
		app.forbiddenResponse(w, r)
		return
	}

	var payload struct {
		Title  *string    `json:"title"`
		Start  *time.Time `json:"start_time"`
		End    *time.Time `json:"end_time"`
		Status *string    `json:"status"`
		Notes  *string    `json:"notes"`
	}
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := make(map[string]interface{})
	if payload.Title != nil {
		updates["title"] = *payload.Title
	}
	if payload.Start != nil {
		updates["start_time"] = *payload.Start
	}
	if payload.End != nil {
		updates["end_time"] = *payload.End
	}
	if payload.Status != nil {
		status := sessions.Status(*payload.Status)
		switch status {
		case sessions.StatusUpcoming, sessions.StatusCompleted, sessions.StatusCancelled:
			updates["status"] = status
		default:
			app.badRequestResponse(w, r, errors.New("invalid status"))
			return
		}
	}
	if payload.Notes != nil {
		updates["notes"] = *payload.Notes
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, errors.New("bad request, updates values can't be nil"))
		return
	}

	if err := app.store.Sessions.Update(r.Context(), session.ID, updates); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteSessionHandler godoc
//
//	@Summary		Delete session
//	@Description	Deletes a session. Only the owning expert may delete.
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		int		true	"Session ID"
//	@Success		204			{string}	string	"Session deleted"
//	@Failure		400			{object}	error	"Invalid ID"
//	@Failure		403			{object}	error	"Not the owning expert"
//	@Failure		404			{object}	error	"Session not found"
//	@Failure		500			{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/sessions/{sessionID} [delete]
func (app *application) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	if session.ExpertID != user.ID {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Sessions.Delete(r.Context(), session.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fetchSession loads the session named in the URL, writing the error
// response itself when that fails.
func (app *application) fetchSession(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	session, err := app.store.Sessions.GetByID(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return nil, false
	}
	return session, true
}
