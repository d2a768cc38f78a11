package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	app_errors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/interfaces"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/service"
)

// maxImportBytes bounds an uploaded export file.
const maxImportBytes = 64 << 20

// ChatHandler serves the chat engine over HTTP.
type ChatHandler struct {
	service interfaces.ChatService
	events  interfaces.EventSource
}

func NewChatHandler(svc interfaces.ChatService, events interfaces.EventSource) *ChatHandler {
	return &ChatHandler{service: svc, events: events}
}

// SignInRequest is the DTO for the mock sign-in.
type SignInRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100" example:"Ada Lovelace"`
}

// UpdateTitleRequest is the DTO for the manual chat title update endpoint.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,notblank,max=100" example:"My Custom Chat Title"`
}

// NewSessionRequest optionally binds the new chat to an avatar.
type NewSessionRequest struct {
	AvatarID string `json:"avatarId,omitempty" example:"einstein"`
}

type CreateAvatarRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100" example:"Ada Lovelace"`
}

type FeedbackRequest struct {
	Feedback model.Feedback `json:"feedback" validate:"required,oneof=like dislike" example:"like"`
}

// decodeJSON decodes the request body into dst and validates it. An empty
// body is accepted when optional is set.
func decodeJSON(r *http.Request, dst interface{}, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation)
	}
	return validateRequest(dst)
}

func confirmFromQuery(r *http.Request) service.ConfirmFunc {
	return func(prompt string) bool {
		ok := r.URL.Query().Get("confirm") == "true"
		if !ok {
			slog.Debug("Destructive request not confirmed", "prompt", prompt)
		}
		return ok
	}
}

// HandleSignIn godoc
// @Summary      Sign in
// @Description  Signs in with a display name and loads that user's chats.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      SignInRequest  true  "Display name"
// @Success      200      {object}  model.User
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/auth/signin [post]
func (h *ChatHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	user, err := h.service.SignIn(r.Context(), req.Name)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// HandleSignOut godoc
// @Summary      Sign out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /v1/auth/signout [post]
func (h *ChatHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SignOut(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleGetProfile godoc
// @Summary      Get the signed-in profile
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  model.User
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/profile [get]
func (h *ChatHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser()
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// HandleUpdateProfile godoc
// @Summary      Update profile settings
// @Description  Merges the given fields into the profile. Omitted fields are left untouched.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request  body      model.ProfileUpdate  true  "Fields to change"
// @Success      200      {object}  model.User
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /v1/profile [patch]
func (h *ChatHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd model.ProfileUpdate
	if err := decodeJSON(r, &upd, false); err != nil {
		respondWithError(w, err)
		return
	}
	user, err := h.service.UpdateProfile(r.Context(), upd)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// HandleClearMemory godoc
// @Summary      Clear the knowledge base
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  model.User
// @Router       /v1/profile/memory [delete]
func (h *ChatHandler) HandleClearMemory(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.ClearMemory(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// HandleSelectModel godoc
// @Summary      Select a model
// @Description  Switches the active chat to the model and remembers it as the default.
// @Tags         Models
// @Produce      json
// @Param        modelID  path      string  true  "Model ID"
// @Success      200      {object}  StatusResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/models/{modelID}/select [post]
func (h *ChatHandler) HandleSelectModel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SelectModel(r.Context(), chi.URLParam(r, "modelID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleListAvatars godoc
// @Summary      List avatars
// @Description  Predefined avatars followed by the user's custom avatars.
// @Tags         Avatars
// @Produce      json
// @Success      200  {array}  model.Avatar
// @Router       /v1/avatars [get]
func (h *ChatHandler) HandleListAvatars(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.ListAvatars())
}

// HandleCreateAvatar godoc
// @Summary      Create a custom avatar
// @Description  Researches a persona for the name, renders a portrait and opens a chat with it.
// @Tags         Avatars
// @Accept       json
// @Produce      json
// @Param        request  body      CreateAvatarRequest  true  "Subject name"
// @Success      201      {object}  model.Avatar
// @Failure      400      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Router       /v1/avatars [post]
func (h *ChatHandler) HandleCreateAvatar(w http.ResponseWriter, r *http.Request) {
	var req CreateAvatarRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	avatar, err := h.service.CreateCustomAvatar(r.Context(), req.Name)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, avatar)
}

// HandleUpdateAvatar godoc
// @Summary      Edit a custom avatar
// @Tags         Avatars
// @Accept       json
// @Produce      json
// @Param        avatarID  path      string                 true  "Avatar ID"
// @Param        request   body      service.AvatarUpdate  true  "Fields to change"
// @Success      200       {object}  model.Avatar
// @Failure      403       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/avatars/{avatarID} [put]
func (h *ChatHandler) HandleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var upd service.AvatarUpdate
	if err := decodeJSON(r, &upd, false); err != nil {
		respondWithError(w, err)
		return
	}
	avatar, err := h.service.UpdateCustomAvatar(r.Context(), chi.URLParam(r, "avatarID"), upd)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, avatar)
}

// HandleListSessions godoc
// @Summary      List chats
// @Description  All chats of the signed-in user, most recently created first.
// @Tags         Sessions
// @Produce      json
// @Success      200  {array}   model.ChatSession
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/sessions [get]
func (h *ChatHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.Sessions()
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sessions)
}

// HandleNewSession godoc
// @Summary      Start a new chat
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      NewSessionRequest  false  "Optional avatar binding"
// @Success      201      {object}  model.ChatSession
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *ChatHandler) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	var req NewSessionRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondWithError(w, err)
		return
	}
	sess, err := h.service.NewSession(r.Context(), req.AvatarID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, sess)
}

// HandleSelectSession godoc
// @Summary      Make a chat active
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  model.ChatSession
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/select [post]
func (h *ChatHandler) HandleSelectSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	h.service.SelectSession(id)
	active, err := h.service.ActiveSession()
	if err != nil {
		respondWithError(w, err)
		return
	}
	if active.ID != id {
		respondWithError(w, fmt.Errorf("session %q: %w", id, app_errors.ErrNotFound))
		return
	}
	respondWithJSON(w, http.StatusOK, active)
}

// UpdateChatTitle godoc
// @Summary      Rename a chat
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string              true  "Session ID"
// @Param        request    body      UpdateTitleRequest  true  "New title"
// @Success      200        {object}  StatusResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/title [put]
func (h *ChatHandler) UpdateChatTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.RenameSession(r.Context(), chi.URLParam(r, "sessionID"), req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleDeleteSession godoc
// @Summary      Delete a chat
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true   "Session ID"
// @Param        confirm    query     bool    true   "Must be true"
// @Success      200        {object}  StatusResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      428        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *ChatHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionID"), confirmFromQuery(r)); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleDeleteAllSessions godoc
// @Summary      Delete every chat
// @Tags         Sessions
// @Produce      json
// @Param        confirm  query     bool  true  "Must be true"
// @Success      200      {object}  StatusResponse
// @Failure      428      {object}  ErrorResponse
// @Router       /v1/sessions [delete]
func (h *ChatHandler) HandleDeleteAllSessions(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAllSessions(r.Context(), confirmFromQuery(r)); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleGetMessages godoc
// @Summary      Messages of the active chat
// @Description  Includes a response that is still being generated.
// @Tags         Messages
// @Produce      json
// @Success      200  {array}   model.ChatMessage
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/messages [get]
func (h *ChatHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.Messages()
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msgs)
}

// HandleFeedback godoc
// @Summary      Toggle like or dislike
// @Description  Repeating the current reaction clears it.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        messageID  path      string           true  "Message ID"
// @Param        request    body      FeedbackRequest  true  "Reaction"
// @Success      200        {object}  model.ChatMessage
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /v1/messages/{messageID}/feedback [post]
func (h *ChatHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	msg, err := h.service.ToggleFeedback(r.Context(), chi.URLParam(r, "messageID"), req.Feedback)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msg)
}

// HandleExport godoc
// @Summary      Export all data
// @Tags         Data
// @Produce      json
// @Success      200  {object}  service.ExportBundle
// @Router       /v1/export [get]
func (h *ChatHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportData()
	if err != nil {
		respondWithError(w, err)
		return
	}
	filename := fmt.Sprintf("ufai-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write export", "error", err)
	}
}

// HandleImport godoc
// @Summary      Import an export file
// @Description  Replaces the profile, chats and custom avatars.
// @Tags         Data
// @Accept       json
// @Produce      json
// @Param        request  body      service.ExportBundle  true  "Export file"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/import [post]
func (h *ChatHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: could not read import file: %v", app_errors.ErrValidation, err))
		return
	}
	if err := h.service.ImportData(r.Context(), data); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
