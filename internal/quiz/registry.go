package quiz

import (
	"sync"

	"github.com/rs/zerolog"
)

// Registry holds one Controller per subject slug, created on first use.
type Registry struct {
	provider Provider
	history  Recorder
	log      zerolog.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(provider Provider, history Recorder, log zerolog.Logger) *Registry {
	return &Registry{
		provider:    provider,
		history:     history,
		log:         log,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the controller for slug, creating it if needed.
func (r *Registry) Get(slug string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.controllers[slug]
	if !ok {
		c = NewController(SubjectName(slug), r.provider, r.history, r.log)
		r.controllers[slug] = c
	}
	return c
}

// Lookup returns the controller for slug without creating one.
func (r *Registry) Lookup(slug string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.controllers[slug]
	return c, ok
}
