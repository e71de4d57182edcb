package llm

import "context"

// Request is one completion call. Model is a provider-specific tier name,
// System the instruction demanding strict JSON output.
type Request struct {
	Model           string
	System          string
	Prompt          string
	MaxOutputTokens int32
}

// Provider abstracts the hosted completion service so tests can stub it and
// gemini/openai stay interchangeable.
//
// CompleteStream delivers response deltas strictly in arrival order through
// onDelta. Callers must concatenate them in that order before parsing -
// parsing a partial buffer is invalid.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	CompleteStream(ctx context.Context, req Request, onDelta func(delta string)) error
}
