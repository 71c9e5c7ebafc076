package critique

import (
	"context"

	"github.com/ashagraev/roast-my-cv/internal/ai"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is one generated critique. Err is set when the style failed; the
// batch carries on so a single quota hiccup does not abort the run.
type Result struct {
	Style string
	Text  string
	Err   error
}

// Generate produces one critique per style. Styles run concurrently, but the
// returned slice always matches the order of the styles argument: each
// goroutine writes only its own slot.
func Generate(ctx context.Context, critic ai.Critic, styles []ai.Style, documentText string, logger *zap.Logger) []Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, len(styles))

	group, ctx := errgroup.WithContext(ctx)
	for i, style := range styles {
		group.Go(func() error {
			logger.Info("generating critique", zap.String("style", style.Name))

			text, err := critic.Critique(ctx, style, documentText)
			if err != nil {
				logger.Warn("critique generation failed",
					zap.String("style", style.Name),
					zap.Error(err),
				)
				results[i] = Result{Style: style.Name, Err: err}
				return nil
			}

			results[i] = Result{Style: style.Name, Text: text}
			return nil
		})
	}

	// Workers never return errors; failures are recorded per style.
	_ = group.Wait()

	return results
}
