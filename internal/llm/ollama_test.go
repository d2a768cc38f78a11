package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uf-ai/backend/internal/media"
	"uf-ai/backend/internal/model"
)

// TestOllamaProvider checks the HTTP client against a stand-in Ollama server.
func TestOllamaProvider(t *testing.T) {
	var captured ollamaChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.WriteHeader(http.StatusOK)
		case "/api/chat":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.Header().Set("Content-Type", "application/x-ndjson")
			if captured.Stream {
				_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Hel"},"done":false}` + "\n"))
				_, _ = w.Write([]byte("\n"))
				_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"lo"},"done":false}` + "\n"))
				_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":""},"done":true}` + "\n"))
				return
			}
			_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Trip Planning"},"done":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, provider.Ping(ctx))
	})

	t.Run("StreamRespond", func(t *testing.T) {
		// Arrange
		req := &StreamRequest{
			Prompt:  "hi",
			Persona: "be nice",
			History: []model.ChatMessage{
				{Sender: model.SenderUser, Text: "look", ImageURL: media.DataURI("image/png", []byte{1, 2})},
				{Sender: model.SenderAI, Text: "nice"},
			},
		}

		// Act
		var text strings.Builder
		for chunk, err := range provider.StreamRespond(ctx, req) {
			require.NoError(t, err)
			text.WriteString(chunk.Text)
		}

		// Assert
		assert.Equal(t, "Hello", text.String())
		assert.True(t, captured.Stream)
		assert.Equal(t, "llama3", captured.Model)
		require.Len(t, captured.Messages, 4)
		assert.Equal(t, "system", captured.Messages[0].Role)
		assert.Equal(t, []string{"AQI="}, captured.Messages[1].Images)
		assert.Equal(t, "assistant", captured.Messages[2].Role)
		assert.Equal(t, "hi", captured.Messages[3].Content)
	})

	t.Run("Complete", func(t *testing.T) {
		out, err := provider.Complete(ctx, "sys", "prompt")
		require.NoError(t, err)
		assert.Equal(t, "Trip Planning", out)
		assert.False(t, captured.Stream)
	})
}

func TestOllamaProvider_StreamErrorIsLastElement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"content":"partial"},"done":false}` + "\n"))
		_, _ = w.Write([]byte(`{"error":"model crashed"}` + "\n"))
		_, _ = w.Write([]byte(`{"message":{"content":"never"},"done":false}` + "\n"))
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")

	var texts []string
	var errs []error
	for chunk, err := range provider.StreamRespond(context.Background(), &StreamRequest{Prompt: "x"}) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		texts = append(texts, chunk.Text)
	}

	assert.Equal(t, []string{"partial"}, texts)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "model crashed")
}

func TestOllamaProvider_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")

	_, err := provider.Complete(context.Background(), "", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Error(t, provider.Ping(context.Background()))
}
