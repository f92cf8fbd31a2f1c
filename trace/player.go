package trace

import (
	"context"

	"golang.org/x/time/rate"
)

// Player replays a decoded trace at a paced rate, for terminal or UI
// animation of a recorded run.
type Player struct {
	trace   *Trace
	limiter *rate.Limiter
}

// NewPlayer creates a Player. stepsPerSecond <= 0 replays without
// pacing.
func NewPlayer(t *Trace, stepsPerSecond float64) *Player {
	limit := rate.Inf
	if stepsPerSecond > 0 {
		limit = rate.Limit(stepsPerSecond)
	}
	return &Player{
		trace:   t,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Play feeds every record to fn in order, waiting out the pace between
// records. It stops early when fn returns an error or the context is
// cancelled.
func (p *Player) Play(ctx context.Context, fn func(rec StepRecord) error) error {
	for _, rec := range p.trace.Records {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}
