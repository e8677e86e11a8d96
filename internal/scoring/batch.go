package scoring

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchItem reports the outcome of scoring one text within a batch.
// On success Result is populated; on rejection Error and Reason describe why.
type BatchItem struct {
	Index  int     `json:"index"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
	Reason Reason  `json:"reason,omitempty"`
}

// ScoreBatch scores texts concurrently with at most limit goroutines in flight.
// Rejected texts are reported per item; only context cancellation fails the batch.
// Items are returned in input order.
func (s *Scorer) ScoreBatch(ctx context.Context, texts []string, limit int) ([]BatchItem, error) {
	items := make([]BatchItem, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := BatchItem{Index: i}
			result, err := s.Score(text)
			if err != nil {
				item.Error = err.Error()
				if ie, ok := AsInvalidInput(err); ok {
					item.Reason = ie.Reason
				}
			} else {
				item.Result = result
			}

			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}
