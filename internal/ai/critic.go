package ai

import "context"

// Style describes one critique persona: the system instruction handed to the
// model and the sampling temperature it runs with.
type Style struct {
	Name        string  `mapstructure:"name"`
	Instruction string  `mapstructure:"instruction"`
	Temperature float32 `mapstructure:"temperature"`
}

// Critic produces a free-text critique of a CV in the given style.
type Critic interface {
	Critique(ctx context.Context, style Style, documentText string) (string, error)
}
