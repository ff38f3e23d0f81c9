package service

import "context"

// AIService is the external text-generation capability the pipeline consumes.
// A backend is chosen once at pipeline construction; the orchestrator never
// inspects which variant it holds. Any returned error is treated as a soft,
// per-call failure by the pipeline.
type AIService interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxOutputTokens int) (string, error)
}
