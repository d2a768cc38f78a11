package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"time"

	"uf-ai/backend/internal/model"
)

// OllamaProvider streams chat completions from a local Ollama server.
// Every catalog model bound to it is served by one configured Ollama model.
type OllamaProvider struct {
	client *http.Client
	url    string
	model  string
}

func NewOllamaProvider(url, model string) *OllamaProvider {
	return &OllamaProvider{
		client: &http.Client{},
		url:    url,
		model:  model,
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaChatChunk struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

// Ping reports whether the server answers at its root URL.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned non-200 status %d", resp.StatusCode)
	}
	return nil
}

// Complete runs a single non-streaming chat turn.
func (p *OllamaProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := ollamaChatRequest{
		Model: p.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}
	resp, err := p.post(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var chunk ollamaChatChunk
	if err := json.NewDecoder(resp.Body).Decode(&chunk); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if chunk.Error != "" {
		return "", fmt.Errorf("ollama: %s", chunk.Error)
	}
	return chunk.Message.Content, nil
}

func (p *OllamaProvider) StreamRespond(ctx context.Context, req *StreamRequest) iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		body := ollamaChatRequest{Model: p.model, Messages: ollamaMessages(req), Stream: true}
		resp, err := p.post(ctx, body)
		if err != nil {
			yield(Chunk{}, err)
			return
		}
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var chunk ollamaChatChunk
			if err := json.Unmarshal(line, &chunk); err != nil {
				yield(Chunk{}, fmt.Errorf("failed to decode stream chunk: %w", err))
				return
			}
			if chunk.Error != "" {
				yield(Chunk{}, fmt.Errorf("ollama: %s", chunk.Error))
				return
			}
			if chunk.Message.Content != "" {
				if !yield(Chunk{Text: chunk.Message.Content}, nil) {
					return
				}
			}
			if chunk.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Chunk{}, err)
		}
	}
}

func (p *OllamaProvider) post(ctx context.Context, req ollamaChatRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return resp, nil
}

func ollamaMessages(req *StreamRequest) []ollamaMessage {
	msgs := make([]ollamaMessage, 0, len(req.History)+2)
	msgs = append(msgs, ollamaMessage{Role: "system", Content: req.Persona})
	for _, m := range req.History {
		role := "user"
		if m.Sender == model.SenderAI {
			role = "assistant"
		}
		om := ollamaMessage{Role: role, Content: m.Text}
		if img := historyImage(m); img != nil {
			om.Images = []string{base64.StdEncoding.EncodeToString(img.Data)}
		}
		msgs = append(msgs, om)
	}
	cur := ollamaMessage{Role: "user", Content: req.Prompt}
	if req.Image != nil {
		cur.Images = []string{base64.StdEncoding.EncodeToString(req.Image.Data)}
	}
	return append(msgs, cur)
}
