// Package embedding turns free text into fixed-length numeric vectors
// for similarity comparison. The primary path calls the Gemini embedding
// backend; any failure substitutes a deterministic term-frequency vector
// so the matching pipeline never stalls on an unavailable backend.
package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// maxInputChars caps the text length sent to the embedding backend.
// Longer text is truncated, not rejected.
const maxInputChars = 8000

// Backend generates vector embeddings from text.
type Backend interface {
	// Embed returns a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)
}

// GeminiBackend implements Backend using the Gemini embedding API
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// DefaultEmbeddingModel is the Gemini embedding model used unless overridden
const DefaultEmbeddingModel = "text-embedding-004"

// NewGeminiBackend creates a Gemini embedding backend
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{client: client, model: model}, nil
}

// Embed returns the backend's vector for the given text, unmodified
func (b *GeminiBackend) Embed(ctx context.Context, text string) ([]float64, error) {
	em := b.client.EmbeddingModel(b.model)

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}

	vector := make([]float64, len(resp.Embedding.Values))
	for i, v := range resp.Embedding.Values {
		vector[i] = float64(v)
	}
	return vector, nil
}

// Close releases resources held by the backend
func (b *GeminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// Embedder wraps a Backend with input truncation and the deterministic
// fallback path. A single backend failure immediately triggers the
// fallback; the primary path is never retried, which bounds worst-case
// latency under exhausted quota.
type Embedder struct {
	backend Backend
	logger  *zap.Logger
}

// NewEmbedder creates an Embedder. backend may be nil, in which case
// every call takes the fallback path.
func NewEmbedder(backend Backend, logger *zap.Logger) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{backend: backend, logger: logger}
}

// Embed returns an embedding for text. The result is either the
// backend's vector or, on any backend failure, the 50-dimensional
// term-frequency fallback vector.
func (e *Embedder) Embed(ctx context.Context, text string) []float64 {
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	if e.backend != nil {
		vector, err := e.backend.Embed(ctx, text)
		if err == nil {
			return vector
		}
		e.logger.Warn("embedding backend failed, using fallback vector",
			zap.Error(err),
			zap.Int("text_length", len(text)))
	}

	return FallbackEmbed(text)
}
