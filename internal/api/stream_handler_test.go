package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	app_errors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/service"
)

func TestChatHandler_HandleSendMessage(t *testing.T) {
	t.Run("Success - Events then result", func(t *testing.T) {
		// ARRANGE
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SendMessage", mock.Anything, mock.MatchedBy(func(req service.SendMessageRequest) bool {
			return req.Text == "Tell me a joke" && req.Attachment == nil
		})).Return(func(_ context.Context, req service.SendMessageRequest) (*service.TurnResult, error) {
			req.OnEvent(model.StreamEvent{Type: model.EventMessageUpdated, SessionID: "chat-1", Message: &model.ChatMessage{ID: "msg-2", Text: "Why"}})
			req.OnEvent(model.StreamEvent{Type: model.EventTurnCommitted, SessionID: "chat-1"})
			return &service.TurnResult{Status: service.TurnCompleted, SessionID: "chat-1"}, nil
		}).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"text":"Tell me a joke"}`))
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
		body := rr.Body.String()
		assert.Contains(t, body, `"type":"message.updated"`)
		assert.Contains(t, body, "event: result\n")
		assert.Contains(t, body, `"status":"completed"`)
		assert.Less(t, strings.Index(body, "message.updated"), strings.Index(body, "event: result"))
	})

	t.Run("Success - Attachment is decoded from base64", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SendMessage", mock.Anything, mock.MatchedBy(func(req service.SendMessageRequest) bool {
			return req.Attachment != nil && req.Attachment.Filename == "notes.txt" && string(req.Attachment.Data) == "hello"
		})).Return(&service.TurnResult{Status: service.TurnCompleted}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"attachment":{"filename":"notes.txt","data":"aGVsbG8="}}`))
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "event: result")
	})

	t.Run("Failure - Busy before streaming is plain JSON", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SendMessage", mock.Anything, mock.Anything).Return(nil, app_errors.ErrBusy).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"text":"again"}`))
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	})

	t.Run("Failure - Error after streaming started", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SendMessage", mock.Anything, mock.Anything).
			Return(func(_ context.Context, req service.SendMessageRequest) (*service.TurnResult, error) {
				req.OnEvent(model.StreamEvent{Type: model.EventLoading, SessionID: "chat-1"})
				return nil, app_errors.ErrInternal
			}).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"text":"hi"}`))
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "event: error\n")
		assert.NotContains(t, rr.Body.String(), "event: result")
	})

	t.Run("Failure - Text too long", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		body := `{"text":"` + strings.Repeat("x", 20001) + `"}`

		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_HandleRegenerate(t *testing.T) {
	handler, mockChatSvc, _ := setupChatHandler(t)
	mockChatSvc.On("Regenerate", mock.Anything, mock.Anything).
		Return(&service.TurnResult{Status: service.TurnBlocked, Draft: "again"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/v1/messages/regenerate", nil)
	rr := httptest.NewRecorder()
	handler.HandleRegenerate(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"blocked"`)
	assert.Contains(t, rr.Body.String(), `"draft":"again"`)
}

func TestChatHandler_HandleGenerateImage(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		setupMock  func(m *mock.Mock)
		wantStatus int
	}{
		{
			name: "Success",
			body: `{"prompt":"a red bicycle"}`,
			setupMock: func(m *mock.Mock) {
				m.On("GenerateImage", mock.Anything, mock.MatchedBy(func(req service.GenerateImageRequest) bool {
					return req.Prompt == "a red bicycle" && req.OnEvent != nil
				})).Return(&service.TurnResult{Status: service.TurnCompleted}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Failure - Missing prompt",
			body:       `{}`,
			setupMock:  func(m *mock.Mock) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, mockChatSvc, _ := setupChatHandler(t)
			tc.setupMock(&mockChatSvc.Mock)

			req := httptest.NewRequest(http.MethodPost, "/v1/images", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.HandleGenerateImage(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestChatHandler_HandleEvents(t *testing.T) {
	t.Run("Forwards events until the source closes", func(t *testing.T) {
		// ARRANGE
		handler, _, mockEvents := setupChatHandler(t)
		ch := make(chan model.StreamEvent, 2)
		ch <- model.StreamEvent{Type: model.EventTitleChanged, SessionID: "chat-1", Title: "Jokes"}
		ch <- model.StreamEvent{Type: model.EventProfileChanged}
		close(ch)
		unsubscribed := false
		mockEvents.On("Subscribe", 64).Return((<-chan model.StreamEvent)(ch), func() { unsubscribed = true }).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
		rr := httptest.NewRecorder()
		handler.HandleEvents(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `"title":"Jokes"`)
		assert.Contains(t, body, `"type":"profile.changed"`)
		assert.True(t, unsubscribed)
	})

	t.Run("Stops when the client disconnects", func(t *testing.T) {
		handler, _, mockEvents := setupChatHandler(t)
		ch := make(chan model.StreamEvent)
		mockEvents.On("Subscribe", 64).Return((<-chan model.StreamEvent)(ch), func() {}).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/v1/events", nil).WithContext(ctx)
		rr := httptest.NewRecorder()
		handler.HandleEvents(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}
