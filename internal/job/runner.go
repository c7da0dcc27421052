package job

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/thumbvid/internal/compose"
)

// RunBatch processes jobs with at most workers in flight. Every job owns
// independent source, sink and thumbnail-cache instances, so parallel
// requests never share state. The first failure cancels the rest.
func RunBatch(ctx context.Context, batch *Batch, workers int, settings compose.Settings) error {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range batch.Jobs {
		j := batch.Jobs[i]
		g.Go(func() error {
			if err := j.Run(ctx, settings); err != nil {
				return fmt.Errorf("job %s: %w", j.label(), err)
			}
			log.Printf("[>] Готово: %s", j.Output)
			return nil
		})
	}

	return g.Wait()
}

func (j Job) label() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Output
}
