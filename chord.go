package audio8

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PlayChord plays several tones at once, each on its own voice, and returns
// when the longest one has finished. Invalid tones are ignored as in PlayTone.
// If ctx is cancelled every tone still waiting is silenced.
func (e *Engine) PlayChord(ctx context.Context, tones ...Tone) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tones {
		t := t
		g.Go(func() error {
			return e.PlayTone(gctx, t)
		})
	}
	return g.Wait()
}
