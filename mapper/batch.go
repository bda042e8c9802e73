package mapper

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/c360/semld/errors"
	"github.com/c360/semld/thing"
)

// QueryMany runs Query over several sources with at most workers queries in
// flight (unbounded when workers <= 0). Results are indexed like sources. The
// first failure cancels the queries that have not started and is returned
// with the failing source's index.
func (m *Mapper) QueryMany(ctx context.Context, typeName string, sources []Source, opts QueryOptions, workers int) ([][]*thing.Node, error) {
	results := make([][]*thing.Node, len(sources))

	g, gCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			nodes, err := m.Query(typeName, src, opts)
			if err != nil {
				return fmt.Errorf("source %d (%s): %w", i, src.String(), err)
			}
			results[i] = nodes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "Mapper", "QueryMany", "batch query")
	}
	return results, nil
}
