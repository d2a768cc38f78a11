package llm

import (
	"context"
	"iter"
	"strings"

	"uf-ai/backend/internal/media"
	"uf-ai/backend/internal/model"
)

// Chunk is one increment of a streamed response. Text is appended to the open
// message and Sources are appended to its source list.
type Chunk struct {
	Text    string
	Sources []model.Source
}

// StreamRequest is everything a provider needs to answer one prompt.
type StreamRequest struct {
	Prompt    string
	Model     model.AIModel
	Persona   string
	History   []model.ChatMessage
	Memory    string
	Image     *media.InlineImage
	WebAccess bool
}

// StreamResponder produces a response as a lazy, finite sequence of chunks.
// The sequence is not restartable. A provider error is yielded once as the
// last element and iteration ends there.
type StreamResponder interface {
	StreamRespond(ctx context.Context, req *StreamRequest) iter.Seq2[Chunk, error]
}

// PersonaData is the result of researching a custom avatar subject.
type PersonaData struct {
	SystemPrompt string `json:"systemPrompt"`
	Greeting     string `json:"greeting"`
}

// ImageResult is the outcome of a context-aware image generation.
// Err is set instead of ImageURL on failure; FinalPrompt is always the prompt that was used.
type ImageResult struct {
	ImageURL    string
	Err         error
	FinalPrompt string
}

// Assistant covers the non-streaming provider calls.
type Assistant interface {
	ResearchPersona(ctx context.Context, name string) (*PersonaData, error)
	GeneratePortrait(ctx context.Context, name string) (string, error)
	GenerateImageFromContext(ctx context.Context, prompt string, recent []model.ChatMessage) ImageResult
	UpdateKnowledgeBase(ctx context.Context, knowledgeBase string, transcript []model.ChatMessage) (string, error)
	GenerateTitle(ctx context.Context, transcript []model.ChatMessage) (string, error)
}

// Completer is a plain single-shot text generation.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// FormatTranscript renders messages as "User: ..." / "AI: ..." lines.
func FormatTranscript(msgs []model.ChatMessage, maxRunes int) string {
	var b strings.Builder
	for _, m := range msgs {
		if m.IsError {
			continue
		}
		who := "User"
		if m.Sender == model.SenderAI {
			who = "AI"
		}
		text := Truncate(m.Text, maxRunes)
		if text == "" && m.ImageURL != "" {
			text = "[image]"
		}
		b.WriteString(who)
		b.WriteString(": ")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

// Truncate shortens a string to n runes. n <= 0 leaves it alone.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CleanTitle strips whitespace and quoting a model tends to wrap titles in.
func CleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`*")
	return strings.TrimSpace(s)
}
