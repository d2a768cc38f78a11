package llm

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// SimulatedProvider emits a canned reply word by word. It stands in for models
// that have no live backend configured.
type SimulatedProvider struct {
	wordDelay time.Duration
}

func NewSimulatedProvider(wordDelay time.Duration) *SimulatedProvider {
	return &SimulatedProvider{wordDelay: wordDelay}
}

func (p *SimulatedProvider) StreamRespond(ctx context.Context, req *StreamRequest) iter.Seq2[Chunk, error] {
	text := fmt.Sprintf("This is a mock response from %s. Try selecting the Gemini model for a live AI-powered conversation!", req.Model.Name)

	return func(yield func(Chunk, error) bool) {
		var limiter *rate.Limiter
		if p.wordDelay > 0 {
			limiter = rate.NewLimiter(rate.Every(p.wordDelay), 1)
		}
		for _, word := range strings.Split(text, " ") {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					yield(Chunk{}, err)
					return
				}
			} else if err := ctx.Err(); err != nil {
				yield(Chunk{}, err)
				return
			}
			if !yield(Chunk{Text: word + " "}, nil) {
				return
			}
		}
	}
}
