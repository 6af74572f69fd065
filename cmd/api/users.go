package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"squeedr/internal/domain/accesscontrol"
	"squeedr/internal/domain/users"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type userKey string

const userCtx userKey = "user"

// for cloudinary uploadParams
func boolPtr(b bool) *bool {
	return &b
}

func getUserFromContext(r *http.Request) *users.User {
	if user, ok := r.Context().Value(userCtx).(*users.User); ok {
		return user
	}
	return nil
}

// getMeHandler godoc
//
//	@Summary		Get current user profile
//	@Description	Retrieve the authenticated user's profile information
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	users.User	"Current user data"
//	@Failure		401	{object}	error		"Unauthorized"
//	@Failure		500	{object}	error		"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getMeHandler(w http.ResponseWriter, r *http.Request) {
	current := getUserFromContext(r)
	if current == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("not authorized"))
		return
	}

	// re-fetch fresh data to avoid stale info
	user, err := app.store.Users.GetByID(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.notFoundResponse(w, r, err)
		} else {
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// UpdateUser godoc
//
//	@Summary		Update user information
//	@Description	Update user information such as first name and last name
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object	true	"Request body containing fields to update: first_name, last_name"
//	@Success		204		{string}	string	"User info updated successfully"
//	@Failure		400		{object}	error	"Bad request, update values can't be nil"
//	@Failure		500		{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/users [put]
func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	var payload struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}

	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := make(map[string]interface{})
	if payload.FirstName != nil {
		updates["first_name"] = *payload.FirstName
	}
	if payload.LastName != nil {
		updates["last_name"] = *payload.LastName
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, errors.New("bad request, updates values can't be nil"))
		return
	}

	if err := app.store.Users.Update(r.Context(), user.ID, updates); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SwitchRolePayload struct {
	Role string `json:"role" validate:"required,oneof=owner expert client"`
}

// switchRoleHandler godoc
//
//	@Summary		Switch active role
//	@Description	Changes the user's active role and issues fresh tokens carrying the new role. The change is recorded in the role audit trail.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SwitchRolePayload	true	"Target role"
//	@Success		200		{object}	Envelope			"New access and refresh tokens"
//	@Failure		400		{object}	error				"Unknown role"
//	@Failure		500		{object}	error				"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/users/role [post]
func (app *application) switchRoleHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload SwitchRolePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	role, err := accesscontrol.ParseRole(payload.Role)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.AccessControl.SwitchRole(r.Context(), user.ID, role); err != nil {
		switch {
		case errors.Is(err, accesscontrol.ErrUserNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, accesscontrol.ErrUnknownRole):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Old access tokens keep the old role until they expire; hand back a
	// fresh pair right away.
	accessToken, refreshToken, err := app.authenticator.GenerateTokens(user.ID, role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SaveRefreshToken(r.Context(), user.ID, refreshToken); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user_id":       strconv.FormatInt(user.ID, 10),
		"role":          string(role),
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// roleHistoryHandler godoc
//
//	@Summary		Role change history
//	@Description	Returns the audit trail of the caller's role switches, newest first
//	@Tags			users
//	@Produce		json
//	@Success		200	{array}		accesscontrol.RoleChange
//	@Failure		500	{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/users/role/history [get]
func (app *application) roleHistoryHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	history, err := app.store.AccessControl.RoleHistory(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, history); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadProfilePictureHandler godoc
//
//	@Summary		Upload profile picture
//	@Description	Uploads a user's profile picture and saves the URL in the database
//	@Tags			users
//	@Accept			mpfd
//	@Produce		json
//	@Param			profile_picture	formData	file	true	"Profile picture file size limit is 2MB"
//	@Success		200				{string}	string	"Profile picture uploaded successfully: <URL>"
//	@Failure		400				{object}	error	"Unable to parse form or retrieve file"
//	@Failure		500				{object}	error	"Failed to upload image to Cloudinary or save URL in database"
//	@Security		ApiKeyAuth
//	@Router			/users/profile-picture [post]
func (app *application) uploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	userID := user.ID

	// Parse the multipart form
	err := r.ParseMultipartForm(2 << 20) // 2 MB
	if err != nil {
		http.Error(w, "Unable to parse form, file size limit is 2MB", http.StatusBadRequest)
		return
	}

	// Retrieve the file from the form data
	file, fileHeader, err := r.FormFile("profile_picture")
	if err != nil {
		http.Error(w, "Unable to retrieve file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Validate file type (allow only JPEG & PNG)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		http.Error(w, "Only JPEG and PNG images are allowed", http.StatusBadRequest)
		return
	}

	uploadParams := uploader.UploadParams{
		PublicID:       fmt.Sprintf("/%d", userID), // Save with userID as filename
		Overwrite:      boolPtr(true),
		Folder:         "profile_pictures",
		Transformation: "w_300,h_300,c_fill,q_auto",
	}
	uploadResult, err := app.cld.Upload.Upload(r.Context(), file, uploadParams)
	if err != nil {
		http.Error(w, "Failed to upload image to Cloudinary", http.StatusInternalServerError)
		return
	}

	// Save the URL in the database
	if err := app.store.Users.SetProfilePicture(r.Context(), userID, uploadResult.SecureURL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, uploadResult.SecureURL); err != nil {
		app.internalServerError(w, r, err)
	}
}

type RegisterPushTokenPayload struct {
	Token string `json:"token" validate:"required"`
}

// registerPushTokenHandler godoc
//
//	@Summary		Register Expo push token
//	@Description	Stores the device's Expo push token so waitlist offers can reach it
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterPushTokenPayload	true	"Expo push token"
//	@Success		204		{string}	string						"Token stored"
//	@Failure		400		{object}	error						"Bad request"
//	@Failure		500		{object}	error						"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/users/push-token [post]
func (app *application) registerPushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload RegisterPushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.Save(r.Context(), user.ID, payload.Token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removePushTokenHandler godoc
//
//	@Summary		Remove Expo push token
//	@Description	Deletes a device's Expo push token, typically on logout from the device
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterPushTokenPayload	true	"Expo push token"
//	@Success		204		{string}	string						"Token removed"
//	@Failure		400		{object}	error						"Bad request"
//	@Failure		500		{object}	error						"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/users/push-token [delete]
func (app *application) removePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload RegisterPushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.Delete(r.Context(), user.ID, payload.Token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
