package llm

import "sync"

// Kind tags the provider family behind a model.
type Kind string

const (
	KindGemini    Kind = "gemini"
	KindOllama    Kind = "ollama"
	KindSimulated Kind = "simulated"
)

// Capability is what the registry knows about a model. Attachments are refused
// for models without SupportsImages, and web search is only requested from
// models with SupportsSearch.
type Capability struct {
	Kind           Kind
	Responder      StreamResponder
	SupportsImages bool
	SupportsSearch bool
}

// Registry maps model ids to capabilities. Unknown ids resolve to the fallback.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]Capability
	fallback Capability
}

func NewRegistry(fallback Capability) *Registry {
	return &Registry{entries: make(map[string]Capability), fallback: fallback}
}

// Register binds a model id to a capability, replacing any previous binding.
func (r *Registry) Register(modelID string, c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[modelID] = c
}

// Resolve returns the capability for a model id.
func (r *Registry) Resolve(modelID string) Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.entries[modelID]; ok {
		return c
	}
	return r.fallback
}
