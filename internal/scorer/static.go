// Package scorer provides quality classifiers for the review engine
package scorer

import "context"

// Static returns the same score for every source. With the zero value it
// never raises a quality issue.
type Static struct {
	Value float64
}

// Score implements domain.QualityScorer
func (s Static) Score(ctx context.Context, _ string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.Value, nil
}
