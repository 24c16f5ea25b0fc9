package npc

import (
	"fmt"

	"go.uber.org/zap"
)

// Registry maps enemy type IDs to templates and falls back to a default
// profile for unknown types instead of failing.
type Registry struct {
	templates map[string]*Template
	fallback  string
	logger    *zap.Logger
}

// NewRegistry builds a Registry from templates.
//
// Precondition: fallbackID must name one of templates.
// Postcondition: Returns a Registry or an error on duplicate IDs or a missing fallback.
func NewRegistry(templates []*Template, fallbackID string, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	byID := make(map[string]*Template, len(templates))
	for _, t := range templates {
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy template %q", t.ID)
		}
		byID[t.ID] = t
	}
	if _, ok := byID[fallbackID]; !ok {
		return nil, fmt.Errorf("fallback enemy template %q not registered", fallbackID)
	}
	return &Registry{templates: byID, fallback: fallbackID, logger: logger}, nil
}

// DefaultRegistry returns a Registry over DefaultTemplates with the goon as fallback.
func DefaultRegistry(logger *zap.Logger) *Registry {
	r, err := NewRegistry(DefaultTemplates(), TypeTracksuitGoon, logger)
	if err != nil {
		panic("npc: default registry: " + err.Error())
	}
	return r
}

// Lookup returns the template for id. Unknown IDs resolve to the fallback
// profile and are logged at warn level.
//
// Postcondition: Returns a non-nil template; found is false iff the fallback was used.
func (r *Registry) Lookup(id string) (tmpl *Template, found bool) {
	if t, ok := r.templates[id]; ok {
		return t, true
	}
	r.logger.Warn("unknown enemy type, using fallback profile",
		zap.String("type", id),
		zap.String("fallback", r.fallback),
	)
	return r.templates[r.fallback], false
}

// Has reports whether id is a registered type.
func (r *Registry) Has(id string) bool {
	_, ok := r.templates[id]
	return ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int { return len(r.templates) }
