package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"squeedr/internal/domain/calendartokens"

	"golang.org/x/oauth2"
)

const oauthStateCookie = "google_oauth_state"

// googleCalendarConnectHandler godoc
//
//	@Summary		Connect Google Calendar
//	@Description	Redirects the user to Google's consent screen to link their calendar
//	@Tags			calendar
//	@Produce		json
//	@Success		307	{string}	string	"Redirect to Google"
//	@Failure		500	{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/calendar/google/connect [get]
func (app *application) googleCalendarConnectHandler(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/v1/calendar/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Secure:   app.config.env == "production",
		SameSite: http.SameSiteLaxMode,
	})

	url := app.googleOAuth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// googleCalendarCallbackHandler godoc
//
//	@Summary		Google Calendar OAuth callback
//	@Description	Exchanges the authorization code for tokens and stores them for the user
//	@Tags			calendar
//	@Produce		json
//	@Param			state	query		string	true	"OAuth state"
//	@Param			code	query		string	true	"Authorization code"
//	@Success		200		{object}	map[string]string	"Calendar connected"
//	@Failure		400		{object}	error				"State mismatch or missing code"
//	@Failure		500		{object}	error				"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/calendar/google/callback [get]
func (app *application) googleCalendarCallbackHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		app.badRequestResponse(w, r, fmt.Errorf("oauth state mismatch"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		app.badRequestResponse(w, r, fmt.Errorf("missing authorization code"))
		return
	}

	token, err := app.googleOAuth.Exchange(r.Context(), code)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	err = app.store.CalendarTokens.Upsert(r.Context(), user.ID, calendartokens.ProviderGoogle, token)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// state cookie has served its purpose
	http.SetCookie(w, &http.Cookie{
		Name:   oauthStateCookie,
		Value:  "",
		Path:   "/v1/calendar/google",
		MaxAge: -1,
	})

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "google calendar connected"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// googleCalendarStatusHandler godoc
//
//	@Summary		Google Calendar connection status
//	@Description	Reports whether the user has linked their Google Calendar and when the stored token expires
//	@Tags			calendar
//	@Produce		json
//	@Success		200	{object}	map[string]any	"Connection status"
//	@Failure		500	{object}	error			"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/calendar/google [get]
func (app *application) googleCalendarStatusHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	token, err := app.store.CalendarTokens.Get(r.Context(), user.ID, calendartokens.ProviderGoogle)
	if err != nil {
		if errors.Is(err, calendartokens.ErrNotConnected) {
			app.jsonResponse(w, http.StatusOK, map[string]any{"connected": false})
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"connected": true,
		"expiry":    token.Expiry,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// googleCalendarDisconnectHandler godoc
//
//	@Summary		Disconnect Google Calendar
//	@Description	Removes the stored Google Calendar tokens for the user
//	@Tags			calendar
//	@Produce		json
//	@Success		204	{string}	string	"Calendar disconnected"
//	@Failure		404	{object}	error	"Calendar not connected"
//	@Failure		500	{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/calendar/google [delete]
func (app *application) googleCalendarDisconnectHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	err := app.store.CalendarTokens.Delete(r.Context(), user.ID, calendartokens.ProviderGoogle)
	if err != nil {
		switch {
		case errors.Is(err, calendartokens.ErrNotConnected):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
