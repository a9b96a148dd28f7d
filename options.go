package citecheck

import (
	"net/http"
	"strings"
	"time"

	"github.com/agentstation/citecheck/internal/transport"
	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
)

// Option is a function that configures a Checker
type Option func(*config) error

// config holds the settings shared by all stages
type config struct {
	sheetPath            string
	outputDir            string
	firstYear            int
	lastYear             int
	misspellingThreshold int
	doiThreshold         int

	zoteroLibraryID   string
	zoteroLibraryType string
	zoteroAPIKey      string
	zoteroCollection  string
	zoteroURL         string

	crossrefMailto  string
	crossrefURL     string
	crossrefEnabled bool

	httpClient  *http.Client
	rateLimit   float64
	burst       int
	maxAttempts int
	backoff     time.Duration
}

func defaultConfig() *config {
	return &config{
		sheetPath:            constants.DefaultSheetPath,
		outputDir:            constants.DefaultOutputDir,
		firstYear:            constants.DefaultFirstYear,
		lastYear:             constants.DefaultLastYear,
		misspellingThreshold: constants.MisspellingThreshold,
		doiThreshold:         constants.DOIThreshold,
		zoteroLibraryType:    constants.DefaultLibraryType,
		rateLimit:            constants.DefaultRateLimit,
		burst:                constants.BurstSize,
		maxAttempts:          constants.MaxAttempts,
		backoff:              constants.RetryBackoff,
	}
}

// transportOptions converts the HTTP settings for the remote clients.
func (c *config) transportOptions() []transport.Option {
	return []transport.Option{
		transport.WithHTTPClient(c.httpClient),
		transport.WithRateLimit(c.rateLimit, c.burst),
		transport.WithRetry(c.maxAttempts, c.backoff),
	}
}

// WithSheetPath sets the workbook to read. A .csv path is read as one sheet.
func WithSheetPath(path string) Option {
	return func(c *config) error {
		if strings.TrimSpace(path) == "" {
			return errors.NewValidationError("sheet_path", path, "must not be empty")
		}
		c.sheetPath = path
		return nil
	}
}

// WithOutputDir sets the directory the CSV files are written to and read from
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if strings.TrimSpace(dir) == "" {
			dir = constants.DefaultOutputDir
		}
		c.outputDir = dir
		return nil
	}
}

// WithYears sets the sheet range, read from first down to last. A zero bound
// keeps the current value.
func WithYears(first, last int) Option {
	return func(c *config) error {
		if first == 0 {
			first = c.firstYear
		}
		if last == 0 {
			last = c.lastYear
		}
		if first < last {
			return errors.NewValidationError("first_year", first, "must not be before last_year")
		}
		c.firstYear, c.lastYear = first, last
		return nil
	}
}

// WithMisspellingThreshold sets the near-duplicate edit distance
func WithMisspellingThreshold(threshold int) Option {
	return func(c *config) error {
		if threshold < 0 {
			return errors.NewValidationError("misspelling_threshold", threshold, "must not be negative")
		}
		c.misspellingThreshold = threshold
		return nil
	}
}

// WithDOIThreshold sets the largest accepted title edit distance
func WithDOIThreshold(threshold int) Option {
	return func(c *config) error {
		if threshold < 0 {
			return errors.NewValidationError("doi_threshold", threshold, "must not be negative")
		}
		c.doiThreshold = threshold
		return nil
	}
}

// WithZotero identifies the library. Empty arguments keep the current value;
// without a collection the whole library is scanned.
func WithZotero(libraryID, libraryType, apiKey, collection string) Option {
	return func(c *config) error {
		if libraryID != "" {
			c.zoteroLibraryID = libraryID
		}
		if libraryType != "" {
			c.zoteroLibraryType = libraryType
		}
		if apiKey != "" {
			c.zoteroAPIKey = apiKey
		}
		if collection != "" {
			c.zoteroCollection = collection
		}
		return nil
	}
}

// WithZoteroURL overrides the Zotero API root
func WithZoteroURL(url string) Option {
	return func(c *config) error {
		c.zoteroURL = url
		return nil
	}
}

// WithCrossrefMailto sets the contact address for Crossref's polite pool
func WithCrossrefMailto(mailto string) Option {
	return func(c *config) error {
		c.crossrefMailto = mailto
		return nil
	}
}

// WithDOIStage controls whether Run ends with the Crossref stage
func WithDOIStage(enabled bool) Option {
	return func(c *config) error {
		c.crossrefEnabled = enabled
		return nil
	}
}

// WithCrossrefURL overrides the Crossref works endpoint
func WithCrossrefURL(url string) Option {
	return func(c *config) error {
		c.crossrefURL = url
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for remote APIs
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) error {
		c.httpClient = client
		return nil
	}
}

// WithRateLimit caps requests per second to each remote API; zero disables it
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *config) error {
		if perSecond < 0 {
			return errors.NewValidationError("rate_limit", perSecond, "must not be negative")
		}
		c.rateLimit, c.burst = perSecond, burst
		return nil
	}
}

// WithRetry sets the attempts per remote call and the first retry delay
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(c *config) error {
		if maxAttempts < 1 {
			return errors.NewValidationError("max_attempts", maxAttempts, "must be at least 1")
		}
		c.maxAttempts, c.backoff = maxAttempts, backoff
		return nil
	}
}
