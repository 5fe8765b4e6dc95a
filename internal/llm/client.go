package llm

import (
	"context"
)

// CompletionRequest is one prompt sent to a completion provider.
type CompletionRequest struct {
	System string
	User   string
}

// Client defines the interface for completion providers. Implementations
// return the raw completion text; the orchestrator parses it defensively and
// never assumes well-formed JSON.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
