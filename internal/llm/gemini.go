package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"uf-ai/backend/internal/media"
	"uf-ai/backend/internal/model"
)

// GeminiModels names the backing models for the non-chat calls.
type GeminiModels struct {
	Research string
	Image    string
	Support  string
}

// GeminiProvider talks to the Gemini API. It streams chat turns and serves
// every Assistant call.
type GeminiProvider struct {
	client *genai.Client
	models GeminiModels
}

func NewGeminiProvider(ctx context.Context, apiKey string, models GeminiModels) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiProvider{client: client, models: models}, nil
}

func (p *GeminiProvider) StreamRespond(ctx context.Context, req *StreamRequest) iter.Seq2[Chunk, error] {
	contents := geminiContents(req)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Persona, genai.RoleUser),
	}
	if req.WebAccess {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return func(yield func(Chunk, error) bool) {
		for resp, err := range p.client.Models.GenerateContentStream(ctx, req.Model.ID, contents, cfg) {
			if err != nil {
				yield(Chunk{}, fmt.Errorf("gemini stream failed: %w", err))
				return
			}
			chunk := Chunk{Text: resp.Text(), Sources: groundingSources(resp)}
			if chunk.Text == "" && len(chunk.Sources) == 0 {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// Complete runs a single text generation on the support model.
func (p *GeminiProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{SystemInstruction: genai.NewContentFromText(system, genai.RoleUser)}
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.models.Support, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}

func (p *GeminiProvider) ResearchPersona(ctx context.Context, name string) (*PersonaData, error) {
	cfg := &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"systemPrompt": {Type: genai.TypeString},
				"greeting":     {Type: genai.TypeString},
			},
			Required: []string{"systemPrompt", "greeting"},
		},
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.models.Research, genai.Text(researchPrompt(name)), cfg)
	if err != nil {
		return nil, fmt.Errorf("persona research failed: %w", err)
	}
	return ParsePersona(resp.Text())
}

func (p *GeminiProvider) GeneratePortrait(ctx context.Context, name string) (string, error) {
	prompt := fmt.Sprintf("A professional, cinematic close-up headshot portrait of %s, centered, clean background, square 1:1 framing, 8k resolution, photorealistic.", name)
	return p.generateImage(ctx, prompt)
}

func (p *GeminiProvider) GenerateImageFromContext(ctx context.Context, prompt string, recent []model.ChatMessage) ImageResult {
	final := prompt
	if len(recent) > 0 {
		refined, err := p.Complete(ctx, "", refinePrompt(prompt, recent))
		if refined = strings.TrimSpace(refined); err == nil && refined != "" {
			final = refined
		}
	}
	url, err := p.generateImage(ctx, final)
	if err != nil {
		return ImageResult{Err: err, FinalPrompt: final}
	}
	return ImageResult{ImageURL: url, FinalPrompt: final}
}

func (p *GeminiProvider) UpdateKnowledgeBase(ctx context.Context, knowledgeBase string, transcript []model.ChatMessage) (string, error) {
	return UpdateKnowledgeBaseWith(ctx, p, knowledgeBase, transcript)
}

func (p *GeminiProvider) GenerateTitle(ctx context.Context, transcript []model.ChatMessage) (string, error) {
	return TitleWith(ctx, p, transcript)
}

func (p *GeminiProvider) generateImage(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{ResponseModalities: []string{"TEXT", "IMAGE"}}
	resp, err := p.client.Models.GenerateContent(ctx, p.models.Image, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return media.DataURI(part.InlineData.MIMEType, part.InlineData.Data), nil
			}
		}
	}
	return "", errors.New("image generation returned no image data")
}

func geminiContents(req *StreamRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		var role genai.Role = genai.RoleUser
		if m.Sender == model.SenderAI {
			role = genai.RoleModel
		}
		var parts []*genai.Part
		if img := historyImage(m); img != nil {
			parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
		}
		if m.Text != "" {
			parts = append(parts, genai.NewPartFromText(m.Text))
		}
		if len(parts) == 0 {
			continue
		}
		contents = append(contents, genai.NewContentFromParts(parts, role))
	}

	var parts []*genai.Part
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	prompt := req.Prompt
	if prompt == "" && req.Image != nil {
		prompt = "Analyze this image."
	}
	parts = append(parts, genai.NewPartFromText(prompt))
	return append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
}

func groundingSources(resp *genai.GenerateContentResponse) []model.Source {
	var out []model.Source
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, gc := range cand.GroundingMetadata.GroundingChunks {
			if gc == nil || gc.Web == nil || gc.Web.URI == "" {
				continue
			}
			out = append(out, model.Source{Title: gc.Web.Title, URI: gc.Web.URI})
		}
	}
	return out
}

// ParsePersona decodes research output, tolerating a fenced JSON block.
func ParsePersona(raw string) (*PersonaData, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var data PersonaData
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &data); err != nil {
		return nil, fmt.Errorf("could not decode persona research: %w", err)
	}
	if strings.TrimSpace(data.SystemPrompt) == "" {
		return nil, errors.New("persona research returned no system prompt")
	}
	return &data, nil
}
