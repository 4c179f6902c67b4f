package matcher

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Document is one independent citation/reference set in a batch.
type Document struct {
	ID         string   `json:"id"`
	Citations  []string `json:"citations"`
	References []string `json:"references"`
}

// DocumentReport pairs a document ID with its report.
type DocumentReport struct {
	ID     string `json:"id"`
	Report Report `json:"report"`
}

// Batch runs independent documents concurrently with at most workers
// documents in flight. Reports are returned in input order. Cancelling ctx
// stops documents that have not started yet.
func (m *Matcher) Batch(ctx context.Context, docs []Document, workers int) ([]DocumentReport, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", workers)
	}

	out := make([]DocumentReport, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = DocumentReport{ID: doc.ID, Report: m.Run(doc.Citations, doc.References)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	m.logger.Info("batch complete", zap.Int("documents", len(docs)), zap.Int("workers", workers))
	return out, nil
}
