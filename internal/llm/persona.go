package llm

import (
	"strings"

	"uf-ai/backend/internal/catalog"
	"uf-ai/backend/internal/media"
	"uf-ai/backend/internal/model"
)

const (
	baseIdentity = "You are UF AI, a highly capable and helpful assistant."
	creatorLine  = "Important: If the user asks who made you, respond exactly with: I was created by a 16-year-old boy named Umar Farooq. He designed me to be helpful, reliable, and easy to use. I'm still improving as Umar continues to upgrade and train me."
)

var styleInstructions = map[model.ChatStyle]string{
	model.StyleProfessional: "**Current Persona: Professional.** Tone is formal, concise, and objective.",
	model.StyleCreative:     "**Current Persona: Creative.** Imagination and storytelling are encouraged.",
	model.StyleFriendly:     "**Current Persona: Friendly.** Tone is warm and conversational.",
}

// StreamContext is the per-turn input used to build a StreamRequest.
type StreamContext struct {
	AvatarID      string
	CustomPersona string
	PriorTurns    []model.ChatMessage
	User          model.User
	AttachedImage *media.InlineImage
}

// ResolvePersona picks the single instruction set that governs tone.
// A custom avatar prompt wins over a predefined avatar, which wins over the user's style.
func ResolvePersona(customPersona, avatarID string, style model.ChatStyle) string {
	if strings.TrimSpace(customPersona) != "" {
		return customPersona
	}
	if p := catalog.Persona(avatarID); p != "" {
		return p
	}
	instr, ok := styleInstructions[style]
	if !ok {
		instr = styleInstructions[model.StyleFriendly]
	}
	return baseIdentity + "\n" + instr
}

// BuildStreamRequest assembles the provider request for one prompt.
// Prior turns and the knowledge base are only included when chat memory is on.
func BuildStreamRequest(prompt string, m model.AIModel, sc StreamContext) *StreamRequest {
	persona := ResolvePersona(sc.CustomPersona, sc.AvatarID, sc.User.ChatStyle) + "\n\n" + creatorLine

	req := &StreamRequest{
		Prompt:    prompt,
		Model:     m,
		Image:     sc.AttachedImage,
		WebAccess: sc.User.WebAccessEnabled,
	}
	if sc.User.UseChatMemory {
		req.History = usableHistory(sc.PriorTurns)
		if kb := strings.TrimSpace(sc.User.KnowledgeBase); kb != "" {
			req.Memory = kb
			persona += "\n\n### USER KNOWLEDGE BASE (MEMORY)\n" + kb + "\n### END OF MEMORY"
		}
	}
	req.Persona = persona
	return req
}

// usableHistory drops error turns and messages with nothing to send.
func usableHistory(msgs []model.ChatMessage) []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.IsError || (m.Text == "" && m.ImageURL == "") {
			continue
		}
		out = append(out, m.Clone())
	}
	return out
}

// historyImage returns the inline image carried by a prior turn, if any.
func historyImage(m model.ChatMessage) *media.InlineImage {
	if m.ImageURL == "" {
		return nil
	}
	img, ok := media.ParseDataURI(m.ImageURL)
	if !ok {
		return nil
	}
	return img
}
