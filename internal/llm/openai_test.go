package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestOpenAIRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "rate limited",
			err:  &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests},
			want: true,
		},
		{
			name: "server error",
			err:  &openai.APIError{HTTPStatusCode: http.StatusInternalServerError},
			want: true,
		},
		{
			name: "bad gateway",
			err:  &openai.APIError{HTTPStatusCode: http.StatusBadGateway},
			want: true,
		},
		{
			name: "invalid api key",
			err:  &openai.APIError{HTTPStatusCode: http.StatusUnauthorized},
			want: false,
		},
		{
			name: "malformed request",
			err:  &openai.APIError{HTTPStatusCode: http.StatusBadRequest},
			want: false,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("request failed: %w", &openai.APIError{HTTPStatusCode: http.StatusForbidden}),
			want: false,
		},
		{
			name: "transport failure",
			err:  errors.New("connection reset by peer"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, openAIRetryable(tt.err))
		})
	}
}
