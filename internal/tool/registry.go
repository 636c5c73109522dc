// Package tool implements the MCP-style tool catalog exposed to AI
// integrations. Each tool pairs a JSON-schema description with a typed
// handler, so the advertised catalog and the dispatch table cannot drift
// apart.
package tool

import (
	"context"

	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
	"clientportal/pkg/metrics"
)

// Args is the free-form argument bag of a tool call.
type Args map[string]any

// String extracts a non-empty string argument.
func (a Args) String(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	s, ok := a[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Handler executes one tool call for the given principal.
type Handler func(ctx context.Context, principal *model.Principal, args Args) (any, error)

type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     Handler `json:"-"`
}

// Descriptor is the catalog entry advertised on the tools endpoint.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Registry maps tool names to handlers and keeps the catalog order stable.
type Registry struct {
	tools  map[string]*Tool
	order  []string
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger, tools ...*Tool) *Registry {
	r := &Registry{
		tools:  make(map[string]*Tool, len(tools)),
		logger: logger,
	}
	for _, t := range tools {
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r
}

// Catalog lists every registered tool in registration order.
func (r *Registry) Catalog() []Descriptor {
	catalog := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		catalog = append(catalog, Descriptor{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return catalog
}

// Call dispatches a named tool for the given principal.
func (r *Registry) Call(ctx context.Context, principal *model.Principal, name string, args Args) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		metrics.IncrementToolCall(name, "unknown")
		return nil, apperr.Invalid("Unknown tool: %s", name)
	}

	result, err := t.Handler(ctx, principal, args)
	if err != nil {
		metrics.IncrementToolCall(name, "failed")
		r.logger.Warn("Tool call failed",
			zap.String("tool", name),
			zap.String("user_id", principal.ID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.IncrementToolCall(name, "ok")
	return result, nil
}
