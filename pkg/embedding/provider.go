package embedding

import "context"

// Provider defines the interface for generating text embeddings.
// Implementations must be deterministic for identical input text and
// honor ctx cancellation on the underlying HTTP call.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}
