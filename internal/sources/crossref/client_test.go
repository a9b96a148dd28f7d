package crossref

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/citecheck/internal/transport"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/records"
)

func works(items ...Work) map[string]any {
	return map[string]any{
		"status":  "ok",
		"message": map[string]any{"items": items},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Mailto:    "lab@example.org",
		Threshold: 10,
		BaseURL:   server.URL,
	}, transport.WithRateLimit(0, 0), transport.WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	return client
}

func TestBestMatch(t *testing.T) {
	candidates := []Work{
		{DOI: "10.1/far", Title: []string{"Something else entirely"}},
		{DOI: "", Title: []string{"Pollinator decline in bees"}},
		{DOI: "10.1/near", Title: []string{"Pollinator Decline in Bees.", "Alt title"}},
		{DOI: "10.1/tie", Title: []string{"Pollinator decline in bees!"}},
	}

	best, ok := BestMatch("Pollinator decline in bees", candidates)
	require.True(t, ok)
	assert.Equal(t, Match{Title: "Pollinator Decline in Bees.", DOI: "10.1/near", Distance: 1}, best)

	_, ok = BestMatch("anything", nil)
	assert.False(t, ok)
}

func TestSearchSendsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Bees and wasps", q.Get("query.bibliographic"))
		assert.Equal(t, "has-full-text:true", q.Get("filter"))
		assert.Equal(t, "lab@example.org", q.Get("mailto"))
		assert.Equal(t, "20", q.Get("rows"))
		_ = json.NewEncoder(w).Encode(works(Work{DOI: "10.1/a", Title: []string{"Bees and wasps"}}))
	})

	got, err := client.Search(context.Background(), "Bees and wasps")
	require.NoError(t, err)
	assert.Equal(t, []Work{{DOI: "10.1/a", Title: []string{"Bees and wasps"}}}, got)
}

func TestResolveThreshold(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(works(Work{DOI: "10.1/x", Title: []string{"A completely unrelated paper"}}))
	})

	_, err := client.Resolve(context.Background(), "Bees")
	assert.ErrorIs(t, err, errors.ErrNoMatch)
}

func TestLookupContinuesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Query().Get("query.bibliographic") {
		case "Broken":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "Moss growth":
			_ = json.NewEncoder(w).Encode(works(Work{DOI: "10.1/moss", Title: []string{"Moss Growth"}}))
		case "Moss growth rates":
			_ = json.NewEncoder(w).Encode(works(Work{DOI: "10.1/moss2", Title: []string{"Moss Growth"}}))
		default:
			_ = json.NewEncoder(w).Encode(works())
		}
	})

	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	res, err := client.Lookup(ctx, []string{"Broken", "Moss growth", "", "Unknown", "Moss growth", "Moss growth rates"})
	require.NoError(t, err)

	assert.Equal(t, []records.DOI{{Title: "Moss Growth", DOI: "10.1/moss2"}}, res.DOIs)
	assert.Equal(t, []string{"Unknown"}, res.Unmatched)
	assert.Equal(t, []string{"Broken"}, res.Failed)
	assert.Equal(t, int32(6), calls.Load())
	logger.AssertContains(t, "DOI lookup failed")
	logger.AssertContains(t, "max retries exceeded")
}

func TestLookupStopsOnCancel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(works())
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Lookup(ctx, []string{"Bees"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{Threshold: -1})
	assert.True(t, errors.IsValidationError(err))

	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.crossref.org/works", client.baseURL)
	assert.Equal(t, 20, client.rows)
}
