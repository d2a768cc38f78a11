package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uf-ai/backend/internal/api"
	app_errors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/interfaces/mocks"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/service"
)

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService, *mocks.MockEventSource) {
	mockChatSvc := mocks.NewMockChatService(t)
	mockEvents := mocks.NewMockEventSource(t)
	handler := api.NewChatHandler(mockChatSvc, mockEvents)
	return handler, mockChatSvc, mockEvents
}

// addChiURLParams simulates how the chi router injects URL parameters into the request context.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "Not found", err: app_errors.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "Validation", err: app_errors.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "Unauthenticated", err: app_errors.ErrUnauthenticated, wantStatus: http.StatusUnauthorized},
		{name: "Permission", err: app_errors.ErrPermission, wantStatus: http.StatusForbidden},
		{name: "Busy", err: app_errors.ErrBusy, wantStatus: http.StatusConflict},
		{name: "Confirmation", err: app_errors.ErrConfirmationRequired, wantStatus: http.StatusPreconditionRequired},
		{name: "Unavailable", err: app_errors.ErrUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "Unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// ARRANGE
			handler, mockChatSvc, _ := setupChatHandler(t)
			mockChatSvc.On("Sessions").Return(nil, tc.err).Once()

			// ACT
			req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
			rr := httptest.NewRecorder()
			handler.HandleListSessions(rr, req)

			// ASSERT
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.NotEmpty(t, decodeError(t, rr))
		})
	}
}

func TestChatHandler_HandleSignIn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		user := &model.User{UID: "mock-uid-ada", Name: "Ada"}
		mockChatSvc.On("SignIn", mock.Anything, "Ada").Return(user, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signin", strings.NewReader(`{"name":"Ada"}`))
		rr := httptest.NewRecorder()
		handler.HandleSignIn(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got model.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, *user, got)
	})

	t.Run("Failure - Empty name", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signin", strings.NewReader(`{"name":""}`))
		rr := httptest.NewRecorder()
		handler.HandleSignIn(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "Field 'name' failed on the 'required' tag")
	})

	t.Run("Failure - Blank name", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signin", strings.NewReader(`{"name":"   "}`))
		rr := httptest.NewRecorder()
		handler.HandleSignIn(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "'notblank'")
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signin", strings.NewReader(`{"name":`))
		rr := httptest.NewRecorder()
		handler.HandleSignIn(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_HandleUpdateProfile(t *testing.T) {
	t.Run("Success - Only given fields are sent", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u model.ProfileUpdate) bool {
			return u.Theme != nil && *u.Theme == "dark" && u.Name == nil && u.Plan == nil
		})).Return(&model.User{Theme: "dark"}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/v1/profile", strings.NewReader(`{"theme":"dark"}`))
		rr := httptest.NewRecorder()
		handler.HandleUpdateProfile(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Invalid enum", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPatch, "/v1/profile", strings.NewReader(`{"chatStyle":"Sarcastic"}`))
		rr := httptest.NewRecorder()
		handler.HandleUpdateProfile(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "oneof")
	})
}

func TestChatHandler_HandleDeleteSession(t *testing.T) {
	testCases := []struct {
		name       string
		url        string
		confirmed  bool
		wantStatus int
	}{
		{name: "Confirmed", url: "/v1/sessions/chat-1?confirm=true", confirmed: true, wantStatus: http.StatusOK},
		{name: "Not confirmed", url: "/v1/sessions/chat-1", confirmed: false, wantStatus: http.StatusPreconditionRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// ARRANGE
			handler, mockChatSvc, _ := setupChatHandler(t)
			mockChatSvc.On("DeleteSession", mock.Anything, "chat-1", mock.Anything).
				Return(func(_ context.Context, _ string, confirm service.ConfirmFunc) error {
					if !confirm("Delete?") {
						return app_errors.ErrConfirmationRequired
					}
					return nil
				}).Once()

			// ACT
			req := addChiURLParams(httptest.NewRequest(http.MethodDelete, tc.url, nil), map[string]string{"sessionID": "chat-1"})
			rr := httptest.NewRecorder()
			handler.HandleDeleteSession(rr, req)

			// ASSERT
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestChatHandler_HandleSelectSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SelectSession", "chat-2").Return().Once()
		mockChatSvc.On("ActiveSession").Return(&model.ChatSession{ID: "chat-2"}, nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/v1/sessions/chat-2/select", nil), map[string]string{"sessionID": "chat-2"})
		rr := httptest.NewRecorder()
		handler.HandleSelectSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Unknown session", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SelectSession", "chat-404").Return().Once()
		mockChatSvc.On("ActiveSession").Return(&model.ChatSession{ID: "chat-1"}, nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/v1/sessions/chat-404/select", nil), map[string]string{"sessionID": "chat-404"})
		rr := httptest.NewRecorder()
		handler.HandleSelectSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_UpdateChatTitle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("RenameSession", mock.Anything, "chat-1", "Trip to Peru").Return(nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodPut, "/v1/sessions/chat-1/title", strings.NewReader(`{"title":"Trip to Peru"}`)), map[string]string{"sessionID": "chat-1"})
		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Title too long", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		body := `{"title":"` + strings.Repeat("a", 101) + `"}`

		req := addChiURLParams(httptest.NewRequest(http.MethodPut, "/v1/sessions/chat-1/title", strings.NewReader(body)), map[string]string{"sessionID": "chat-1"})
		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_HandleFeedback(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		liked := true
		mockChatSvc.On("ToggleFeedback", mock.Anything, "msg-1", model.FeedbackLike).
			Return(&model.ChatMessage{ID: "msg-1", Liked: &liked}, nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/v1/messages/msg-1/feedback", strings.NewReader(`{"feedback":"like"}`)), map[string]string{"messageID": "msg-1"})
		rr := httptest.NewRecorder()
		handler.HandleFeedback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"liked":true`)
	})

	t.Run("Failure - Message still streaming", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("ToggleFeedback", mock.Anything, "msg-1", model.FeedbackDislike).Return(nil, app_errors.ErrBusy).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/v1/messages/msg-1/feedback", strings.NewReader(`{"feedback":"dislike"}`)), map[string]string{"messageID": "msg-1"})
		rr := httptest.NewRecorder()
		handler.HandleFeedback(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Unknown reaction", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/v1/messages/msg-1/feedback", strings.NewReader(`{"feedback":"love"}`)), map[string]string{"messageID": "msg-1"})
		rr := httptest.NewRecorder()
		handler.HandleFeedback(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_HandleCreateAvatar(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("CreateCustomAvatar", mock.Anything, "Ada Lovelace").
			Return(&model.Avatar{ID: "custom-1", Name: "Ada Lovelace", Custom: true}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/avatars", strings.NewReader(`{"name":"Ada Lovelace"}`))
		rr := httptest.NewRecorder()
		handler.HandleCreateAvatar(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Provider cannot research", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("CreateCustomAvatar", mock.Anything, "Ada Lovelace").Return(nil, app_errors.ErrUnavailable).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/avatars", strings.NewReader(`{"name":"Ada Lovelace"}`))
		rr := httptest.NewRecorder()
		handler.HandleCreateAvatar(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestChatHandler_HandleUpdateAvatar(t *testing.T) {
	handler, mockChatSvc, _ := setupChatHandler(t)
	mockChatSvc.On("UpdateCustomAvatar", mock.Anything, "einstein", mock.AnythingOfType("service.AvatarUpdate")).
		Return(nil, app_errors.ErrPermission).Once()

	req := addChiURLParams(httptest.NewRequest(http.MethodPut, "/v1/avatars/einstein", strings.NewReader(`{"name":"Al"}`)), map[string]string{"avatarID": "einstein"})
	rr := httptest.NewRecorder()
	handler.HandleUpdateAvatar(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestChatHandler_HandleNewSession(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		avatarID string
	}{
		{name: "Empty body", body: "", avatarID: ""},
		{name: "Avatar chat", body: `{"avatarId":"einstein"}`, avatarID: "einstein"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, mockChatSvc, _ := setupChatHandler(t)
			mockChatSvc.On("NewSession", mock.Anything, tc.avatarID).Return(&model.ChatSession{ID: "chat-9"}, nil).Once()

			req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.HandleNewSession(rr, req)

			assert.Equal(t, http.StatusCreated, rr.Code)
		})
	}
}

func TestChatHandler_ExportImport(t *testing.T) {
	t.Run("Export is a download", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("ExportData").Return([]byte(`{"profile":{}}`), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/export", nil)
		rr := httptest.NewRecorder()
		handler.HandleExport(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "ufai-export-")
		assert.Equal(t, `{"profile":{}}`, rr.Body.String())
	})

	t.Run("Import passes the raw file through", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("ImportData", mock.Anything, []byte(`{"chats":[]}`)).
			Return(errors.Join(app_errors.ErrValidation, errors.New("profile is missing"))).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/import", strings.NewReader(`{"chats":[]}`))
		rr := httptest.NewRecorder()
		handler.HandleImport(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "profile is missing")
	})
}
