package llm

import (
	"fmt"
	"strings"

	"github.com/taxxyapp/taxxy/internal/common"
)

// NewClient creates a raw completion client based on the provided
// configuration. Used directly by callers that need a completion outside the
// classification pipeline.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", common.ErrInvalidConfig, cfg.Provider)
	}
}
