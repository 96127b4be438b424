package summarizer

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// BatchItem is the outcome of summarizing one document in a batch. Exactly
// one of Result and Err is set.
type BatchItem struct {
	Index  int
	Result *Result
	Err    error
}

// SummarizeBatch processes each document independently and returns one
// item per input, in input order. Documents are independent, so they run
// concurrently against the shared read-only model; a failure on one
// document never aborts its siblings.
func (s *Summarizer) SummarizeBatch(ctx context.Context, docs []string) []BatchItem {
	items := make([]BatchItem, len(docs))
	if len(docs) == 0 {
		return items
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(docs) {
		workers = len(docs)
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := s.Summarize(ctx, doc)
			items[i] = BatchItem{Index: i, Result: result, Err: err}
			if err != nil {
				s.opts.logger.Warn("document failed in batch",
					zap.Int("index", i), zap.Error(err))
			}
		}(i, doc)
	}
	wg.Wait()

	return items
}
