package names

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
)

func newDeduplicator(t *testing.T, opts ...Option) *Deduplicator {
	t.Helper()
	d, err := NewDeduplicator(opts...)
	require.NoError(t, err)
	return d
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		accepted []string
		rejected []string
		review   []string
	}{
		{
			name:     "misspelling within threshold is rejected",
			input:    []string{"Jon Smith", "Jonn Smith"},
			accepted: []string{"Jon Smith"},
			rejected: []string{"Jonn Smith"},
		},
		{
			name:     "different first initial is a distinct name",
			input:    []string{"Jon Smith", "Kate Smith"},
			accepted: []string{"Jon Smith", "Kate Smith"},
		},
		{
			name:     "same key beyond threshold is kept",
			input:    []string{"Jon Smith", "Jonathan Smith"},
			accepted: []string{"Jon Smith", "Jonathan Smith"},
		},
		{
			name:     "case differences collapse",
			input:    []string{"Kim Lee", "KIM LEE", "kim lee"},
			accepted: []string{"Kim Lee"},
			rejected: []string{"KIM LEE", "kim lee"},
		},
		{
			name:     "first spelling wins",
			input:    []string{"Jonn Smith", "Jon Smith"},
			accepted: []string{"Jonn Smith"},
			rejected: []string{"Jon Smith"},
		},
		{
			name:     "malformed names pass through for review",
			input:    []string{"Madonna", "Madonna", "Jon Smith"},
			accepted: []string{"Madonna", "Madonna", "Jon Smith"},
			review:   []string{"Madonna", "Madonna"},
		},
		{
			name:  "empty input",
			input: nil,
		},
	}

	d := newDeduplicator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Dedupe(context.Background(), tt.input)
			assert.Equal(t, tt.accepted, result.Accepted)
			assert.Equal(t, tt.rejected, result.Rejected)
			assert.Equal(t, tt.review, result.Review)
		})
	}
}

// Rejected names never anchor later comparisons: "Jonn Smith" is within the
// threshold of the rejected "Jon Smith" but not of the accepted "Jo Smith".
func TestDedupeRejectedNamesDoNotAnchor(t *testing.T) {
	d := newDeduplicator(t, WithThreshold(1))

	result := d.Dedupe(context.Background(), []string{"Jo Smith", "Jon Smith", "Jonn Smith"})

	assert.Equal(t, []string{"Jo Smith", "Jonn Smith"}, result.Accepted)
	assert.Equal(t, []string{"Jon Smith"}, result.Rejected)
}

// Known false positive: two different people sharing an initial and surname
// within the threshold are merged.
func TestDedupeConflatesSharedInitialAndSurname(t *testing.T) {
	d := newDeduplicator(t)

	result := d.Dedupe(context.Background(), []string{"Ann Lee", "Amy Lee", "Jon Smith", "Jane Smith"})

	assert.Equal(t, []string{"Ann Lee", "Jon Smith"}, result.Accepted)
	assert.Equal(t, []string{"Amy Lee", "Jane Smith"}, result.Rejected)
}

func TestDedupeIsIdempotent(t *testing.T) {
	d := newDeduplicator(t)
	input := []string{
		"Jon Smith", "Jonn Smith", "Jane Smith", "Jonathan Smith",
		"Kim Lee", "Kym Lee", "Madonna", "Ravi Patel", "R. Patel",
	}

	first := d.Dedupe(context.Background(), input)
	second := d.Dedupe(context.Background(), first.Accepted)

	assert.Equal(t, first.Accepted, second.Accepted)
	assert.Empty(t, second.Rejected)
}

func TestDedupeLogsManualReview(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	newDeduplicator(t).Dedupe(ctx, []string{"Prince"})

	tl.AssertContains(t, "Check this entry manually")
	tl.AssertContains(t, `"name":"Prince"`)
}

func TestWithThreshold(t *testing.T) {
	d := newDeduplicator(t)
	assert.Equal(t, 3, d.Threshold())

	d = newDeduplicator(t, WithThreshold(0))
	result := d.Dedupe(context.Background(), []string{"Jon Smith", "Jonn Smith", "jon smith"})
	assert.Equal(t, []string{"Jon Smith", "Jonn Smith"}, result.Accepted)

	_, err := NewDeduplicator(WithThreshold(-1))
	assert.True(t, errors.IsValidationError(err))
}
