package api

import (
	"log/slog"
	"net/http"

	"uf-ai/backend/internal/media"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/service"
)

// Streaming endpoints answer with Server-Sent Events: one unnamed event per
// StreamEvent of the turn, then a "result" event carrying the TurnResult.

// SendMessageRequest is the DTO for a user submission. Attachment data is base64 in JSON.
type SendMessageRequest struct {
	Text       string             `json:"text" validate:"max=20000" example:"Tell me a joke"`
	Attachment *AttachmentRequest `json:"attachment,omitempty"`
}

type AttachmentRequest struct {
	Filename string `json:"filename" example:"photo.png"`
	Data     []byte `json:"data" validate:"required" swaggertype:"string" format:"base64"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required,max=2000" example:"a red bicycle at sunset"`
}

// runTurn streams a turn's events and its final result.
func runTurn(w http.ResponseWriter, r *http.Request, turn func(onEvent func(model.StreamEvent)) (*service.TurnResult, error)) {
	stream := &eventStream{w: w}
	res, err := turn(func(evt model.StreamEvent) { stream.send("", evt) })
	if err != nil {
		stream.fail(err)
		return
	}
	stream.send("result", res)
	slog.Debug("Finished streaming turn", "session_id", res.SessionID, "status", res.Status, "client_gone", r.Context().Err() != nil)
}

// HandleSendMessage godoc
// @Summary      Send a message
// @Description  Streams the response as SSE. A quota-blocked turn ends with a result whose status is "blocked" and carries the draft back.
// @Tags         Messages
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      SendMessageRequest  true  "Message"
// @Success      200      {object}  service.TurnResult  "Stream of model.StreamEvent, then a result event"
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /v1/messages [post]
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	runTurn(w, r, func(onEvent func(model.StreamEvent)) (*service.TurnResult, error) {
		in := service.SendMessageRequest{Text: req.Text, OnEvent: onEvent}
		if req.Attachment != nil {
			in.Attachment = &media.Attachment{Filename: req.Attachment.Filename, Data: req.Attachment.Data}
		}
		return h.service.SendMessage(r.Context(), in)
	})
}

// HandleRegenerate godoc
// @Summary      Regenerate the last response
// @Description  Resends the last user message of the active chat. Counts against the free quota.
// @Tags         Messages
// @Produce      text/event-stream
// @Success      200  {object}  service.TurnResult
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/messages/regenerate [post]
func (h *ChatHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	runTurn(w, r, func(onEvent func(model.StreamEvent)) (*service.TurnResult, error) {
		return h.service.Regenerate(r.Context(), onEvent)
	})
}

// HandleGenerateImage godoc
// @Summary      Generate an image
// @Tags         Messages
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      GenerateImageRequest  true  "Prompt"
// @Success      200      {object}  service.TurnResult
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/images [post]
func (h *ChatHandler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	runTurn(w, r, func(onEvent func(model.StreamEvent)) (*service.TurnResult, error) {
		return h.service.GenerateImage(r.Context(), service.GenerateImageRequest{Prompt: req.Prompt, OnEvent: onEvent})
	})
}

// HandleEvents godoc
// @Summary      Live chat events
// @Description  Every state change of the engine, including background title and memory updates.
// @Tags         Messages
// @Produce      text/event-stream
// @Success      200  {object}  model.StreamEvent
// @Router       /v1/events [get]
func (h *ChatHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	events, cancel := h.events.Subscribe(64)
	defer cancel()

	stream := &eventStream{w: w}
	stream.open()
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	for {
		select {
		case <-r.Context().Done():
			slog.Debug("Event subscriber disconnected")
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			stream.send("", evt)
			if stream.gone {
				return
			}
		}
	}
}
