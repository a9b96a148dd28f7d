package names

import (
	"context"

	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
)

// Result is the outcome of a deduplication pass.
type Result struct {
	// Accepted holds the representative spellings in input order.
	Accepted []string
	// Rejected holds names judged to be misspellings of an accepted name.
	Rejected []string
	// Review holds malformed names that were accepted without comparison.
	Review []string
}

// Deduplicator collapses near-identical spellings of the same name.
type Deduplicator struct {
	threshold int
}

// Option configures a Deduplicator.
type Option func(*Deduplicator) error

// WithThreshold sets the largest edit distance still treated as a misspelling.
func WithThreshold(threshold int) Option {
	return func(d *Deduplicator) error {
		if threshold < 0 {
			return &errors.ValidationError{
				Field:   "threshold",
				Value:   threshold,
				Message: "must not be negative",
			}
		}
		d.threshold = threshold
		return nil
	}
}

// NewDeduplicator returns a Deduplicator using the default misspelling threshold
// unless overridden.
func NewDeduplicator(opts ...Option) (*Deduplicator, error) {
	d := &Deduplicator{threshold: constants.MisspellingThreshold}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Threshold returns the configured misspelling threshold.
func (d *Deduplicator) Threshold() int {
	return d.threshold
}

// Dedupe runs a single greedy pass over names. A name is rejected when an
// already accepted name has the same first-initial/family-name key and lies
// within the threshold; otherwise it is accepted. The first spelling seen wins,
// and rejected names never anchor later comparisons. Names without separable
// given/family parts are accepted and reported for manual review.
func (d *Deduplicator) Dedupe(ctx context.Context, names []string) Result {
	logger := logging.FromContext(ctx)

	var result Result
	buckets := make(map[Key][]string)

	for _, name := range names {
		parsed, ok := Parse(name)
		if !ok {
			logger.Warn().Str("name", name).Msg("Check this entry manually")
			result.Accepted = append(result.Accepted, name)
			result.Review = append(result.Review, name)
			continue
		}

		key := parsed.Key()
		if d.duplicate(name, buckets[key]) {
			logger.Debug().Str("name", name).Msg("Dropping misspelled duplicate")
			result.Rejected = append(result.Rejected, name)
			continue
		}

		buckets[key] = append(buckets[key], name)
		result.Accepted = append(result.Accepted, name)
	}

	return result
}

func (d *Deduplicator) duplicate(name string, anchors []string) bool {
	for _, anchor := range anchors {
		if Distance(name, anchor) <= d.threshold {
			return true
		}
	}
	return false
}
