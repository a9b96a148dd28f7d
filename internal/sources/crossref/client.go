// Package crossref resolves presentation titles to DOIs through the Crossref
// REST API.
package crossref

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/citecheck/internal/transport"
	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/names"
	"github.com/agentstation/citecheck/pkg/records"
)

// Work is a Crossref work candidate.
type Work struct {
	DOI   string   `json:"DOI"`
	Title []string `json:"title"`
}

type worksResponse struct {
	Status  string `json:"status"`
	Message struct {
		Items []Work `json:"items"`
	} `json:"message"`
}

// Config configures a Client.
type Config struct {
	// Mailto identifies the caller to Crossref's polite pool.
	Mailto string
	// Rows is the number of candidates requested per title.
	Rows int
	// Threshold is the largest accepted title edit distance.
	Threshold int
	// BaseURL overrides the works endpoint; used by tests.
	BaseURL string
}

// Client searches Crossref works.
type Client struct {
	transport *transport.Client
	baseURL   string
	mailto    string
	rows      int
	threshold int
}

// NewClient creates a Crossref client. Extra transport options are applied
// after the defaults.
func NewClient(cfg Config, opts ...transport.Option) (*Client, error) {
	if cfg.Threshold < 0 {
		return nil, errors.NewValidationError("doi_threshold", cfg.Threshold, "must not be negative")
	}
	if cfg.Rows <= 0 {
		cfg.Rows = constants.CrossrefRows
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.CrossrefWorksURL
	}

	return &Client{
		transport: transport.New("crossref", opts...),
		baseURL:   cfg.BaseURL,
		mailto:    strings.TrimSpace(cfg.Mailto),
		rows:      cfg.Rows,
		threshold: cfg.Threshold,
	}, nil
}

// Search returns the candidate works for a title.
func (c *Client) Search(ctx context.Context, title string) ([]Work, error) {
	query := url.Values{}
	query.Set("query.bibliographic", title)
	query.Set("filter", "has-full-text:true")
	query.Set("rows", strconv.Itoa(c.rows))
	if c.mailto != "" {
		query.Set("mailto", c.mailto)
	}

	var resp worksResponse
	if _, err := c.transport.GetJSON(ctx, c.baseURL+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Message.Items, nil
}

// Match is the closest candidate title for a query.
type Match struct {
	Title    string
	DOI      string
	Distance int
}

// BestMatch returns the candidate title with the smallest case-insensitive
// edit distance to title; the first one wins ties. ok is false when no
// candidate carries both a title and a DOI.
func BestMatch(title string, works []Work) (Match, bool) {
	var (
		best  Match
		found bool
	)
	for _, w := range works {
		if w.DOI == "" {
			continue
		}
		for _, candidate := range w.Title {
			if candidate == "" {
				continue
			}
			d := names.Distance(title, candidate)
			if !found || d < best.Distance {
				best = Match{Title: candidate, DOI: w.DOI, Distance: d}
				found = true
			}
		}
	}
	return best, found
}

// Resolve searches for title and returns its DOI. errors.ErrNoMatch is
// returned when the closest candidate is farther than the threshold.
func (c *Client) Resolve(ctx context.Context, title string) (records.DOI, error) {
	works, err := c.Search(ctx, title)
	if err != nil {
		return records.DOI{}, err
	}

	best, ok := BestMatch(title, works)
	if !ok || best.Distance > c.threshold {
		return records.DOI{}, errors.ErrNoMatch
	}
	return records.DOI{Title: best.Title, DOI: best.DOI}, nil
}

// LookupResult collects the outcome of a batch lookup.
type LookupResult struct {
	// DOIs are keyed by matched title; a later hit for the same title
	// replaces the DOI in place.
	DOIs []records.DOI
	// Unmatched are titles with no candidate within the threshold.
	Unmatched []string
	// Failed are titles whose search failed after all retries.
	Failed []string
}

// Lookup resolves each distinct non-empty title in order. A failed lookup is
// logged and recorded, and the batch continues; only cancellation of ctx
// stops it early.
func (c *Client) Lookup(ctx context.Context, titles []string) (LookupResult, error) {
	logger := logging.FromContext(ctx)

	var res LookupResult
	index := make(map[string]int)
	seen := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}

		doi, err := c.Resolve(ctx, title)
		switch {
		case err == nil:
			if i, ok := index[doi.Title]; ok {
				res.DOIs[i].DOI = doi.DOI
			} else {
				index[doi.Title] = len(res.DOIs)
				res.DOIs = append(res.DOIs, doi)
			}
			logger.Debug().Str("title", title).Str("doi", doi.DOI).Msg("Resolved DOI")
		case errors.Is(err, errors.ErrNoMatch):
			res.Unmatched = append(res.Unmatched, title)
			logger.Info().Str("title", title).Msg("No DOI found")
		default:
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed = append(res.Failed, title)
			logger.Error().Err(err).Str("title", title).Msg("DOI lookup failed")
		}
	}

	logger.Info().
		Int("titles", len(seen)).
		Int("resolved", len(res.DOIs)).
		Int("unmatched", len(res.Unmatched)).
		Int("failed", len(res.Failed)).
		Msg("DOI lookup complete")
	return res, nil
}
