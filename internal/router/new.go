package router

import (
	"context"

	"wa-assistant/internal/model"
	"wa-assistant/pkg/log"
)

// Router is the interface for intent classification
type Router interface {
	Classify(ctx context.Context, msg model.Message) Classification
}

// PatternRouter classifies user intent with a fixed-priority rule set
type PatternRouter struct {
	l log.Logger
}

// Ensure PatternRouter implements Router interface
var _ Router = (*PatternRouter)(nil)

// New creates a new PatternRouter
// Convention: Factory function returns concrete type (not interface) for internal packages
func New(l log.Logger) *PatternRouter {
	return &PatternRouter{l: l}
}
