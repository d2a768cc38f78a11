package llm

import (
	"context"
	"fmt"
	"strings"

	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/model"
)

const transcriptRuneLimit = 2000

const titleSystemPrompt = "You are an expert at creating short, concise titles for conversations. Based on the following exchange, create a title of 3-5 words. Do not use quotes or any introductory text. Just return the title itself."

const knowledgeSystemPrompt = "You maintain a short knowledge base of durable facts about a user: name, preferences, projects, goals. Merge the new conversation into the existing notes. Keep it under 15 bullet points. Return only the updated notes, or the existing notes unchanged if nothing new was learned."

func researchPrompt(name string) string {
	return fmt.Sprintf(`Research the person named %q. Provide:
1. A detailed system prompt defining their persona, knowledge, and speaking style.
2. A short, iconic greeting they would say to a visitor.
Format the response as JSON with the fields "systemPrompt" and "greeting".`, name)
}

func refinePrompt(prompt string, recent []model.ChatMessage) string {
	return fmt.Sprintf(`Recent conversation:
%s
The user now asks for an image: %q
Write one self-contained image generation prompt that resolves any references to the conversation above. Return only the prompt.`,
		FormatTranscript(recent, 500), prompt)
}

// TitleWith asks a Completer for a short session title.
func TitleWith(ctx context.Context, c Completer, transcript []model.ChatMessage) (string, error) {
	raw, err := c.Complete(ctx, titleSystemPrompt, FormatTranscript(transcript, transcriptRuneLimit))
	if err != nil {
		return "", fmt.Errorf("title generation failed: %w", err)
	}
	title := CleanTitle(raw)
	if title == "" {
		return "", fmt.Errorf("title generation returned an empty title")
	}
	return title, nil
}

// UpdateKnowledgeBaseWith asks a Completer to fold a transcript into the knowledge base.
// An empty answer keeps the existing notes.
func UpdateKnowledgeBaseWith(ctx context.Context, c Completer, knowledgeBase string, transcript []model.ChatMessage) (string, error) {
	prompt := fmt.Sprintf("Existing notes:\n%s\n\nConversation:\n%s", knowledgeBase, FormatTranscript(transcript, transcriptRuneLimit))
	raw, err := c.Complete(ctx, knowledgeSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("knowledge base update failed: %w", err)
	}
	if updated := strings.TrimSpace(raw); updated != "" {
		return updated, nil
	}
	return knowledgeBase, nil
}

// LocalAssistant serves enrichment without a Gemini key. Title and knowledge
// base go through an optional Completer; persona research and image
// generation are unavailable.
type LocalAssistant struct {
	completer     Completer
	titleMaxRunes int
}

func NewLocalAssistant(completer Completer, titleMaxRunes int) *LocalAssistant {
	return &LocalAssistant{completer: completer, titleMaxRunes: titleMaxRunes}
}

func (a *LocalAssistant) ResearchPersona(context.Context, string) (*PersonaData, error) {
	return nil, fmt.Errorf("persona research: %w", apperrors.ErrUnavailable)
}

func (a *LocalAssistant) GeneratePortrait(context.Context, string) (string, error) {
	return "", fmt.Errorf("portrait generation: %w", apperrors.ErrUnavailable)
}

func (a *LocalAssistant) GenerateImageFromContext(_ context.Context, prompt string, _ []model.ChatMessage) ImageResult {
	return ImageResult{Err: fmt.Errorf("image generation: %w", apperrors.ErrUnavailable), FinalPrompt: prompt}
}

func (a *LocalAssistant) UpdateKnowledgeBase(ctx context.Context, knowledgeBase string, transcript []model.ChatMessage) (string, error) {
	if a.completer == nil {
		return knowledgeBase, nil
	}
	return UpdateKnowledgeBaseWith(ctx, a.completer, knowledgeBase, transcript)
}

func (a *LocalAssistant) GenerateTitle(ctx context.Context, transcript []model.ChatMessage) (string, error) {
	if a.completer != nil {
		if title, err := TitleWith(ctx, a.completer, transcript); err == nil {
			return title, nil
		}
	}
	for _, m := range transcript {
		if m.Sender == model.SenderUser && strings.TrimSpace(m.Text) != "" {
			return Truncate(strings.TrimSpace(m.Text), a.titleMaxRunes), nil
		}
	}
	return "New Chat", nil
}
