package llm

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestIsQuotaExceeded(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"googleapi 429", &googleapi.Error{Code: http.StatusTooManyRequests}, true},
		{"wrapped googleapi 429", fmt.Errorf("call failed: %w", &googleapi.Error{Code: http.StatusTooManyRequests}), true},
		{"quota message", fmt.Errorf("Quota exceeded for model"), true},
		{"rate limit message", fmt.Errorf("rate limit reached"), true},
		{"grpc resource exhausted", fmt.Errorf("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"unrelated error", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuotaExceeded(tt.err))
		})
	}
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.True(t, IsTimeout(fmt.Errorf("embed: %w", context.DeadlineExceeded)))
	assert.False(t, IsTimeout(fmt.Errorf("boom")))
	assert.False(t, IsTimeout(nil))
}

func TestIsMalformedResponse(t *testing.T) {
	assert.True(t, IsMalformedResponse(NewParseError("bad", "raw")))
	assert.True(t, IsMalformedResponse(fmt.Errorf("extract: %w", NewParseError("bad", "raw"))))
	assert.False(t, IsMalformedResponse(fmt.Errorf("boom")))
}
