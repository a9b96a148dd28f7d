// Package constants provides shared constants used throughout the citecheck codebase.
// This includes thresholds, timeouts, retry limits, file names and the column
// headers of the spreadsheets and CSV files the tool reads and writes.
package constants

import "time"

// Matching thresholds
const (
	// MisspellingThreshold is the largest edit distance at which two names sharing
	// a first-initial/family-name key are treated as the same person.
	MisspellingThreshold = 3

	// DOIThreshold is the largest edit distance between a presentation title and
	// a Crossref title that still counts as a match.
	DOIThreshold = 10
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to remote APIs
	DefaultHTTPTimeout = 30 * time.Second

	// RetryBackoff is the delay before the first retry; it doubles on every retry
	RetryBackoff = 1 * time.Second

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Limit constants define various limits and capacities
const (
	// MaxAttempts is the number of attempts made for a single remote lookup
	MaxAttempts = 3

	// ZoteroPageSize is the page size used for Zotero list endpoints (API maximum)
	ZoteroPageSize = 100

	// CrossrefRows is the number of candidate works requested per title
	CrossrefRows = 20

	// DefaultRateLimit is the default requests per second sent to a remote API
	DefaultRateLimit = 5.0

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 2
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Spreadsheet defaults
const (
	// DefaultFirstYear is the newest year sheet read from the workbook
	DefaultFirstYear = 2022

	// DefaultLastYear is the oldest year sheet read from the workbook
	DefaultLastYear = 2006

	// DefaultSheetPath is the workbook read when nothing else is configured
	DefaultSheetPath = "ESA Conferences.xlsx"
)

// Spreadsheet column headers
const (
	ColumnProfessor = "Professor"
	ColumnTitle     = "Title of Presentation"
)

// TitleColumnAliases lists the known spellings of the presentation title column.
var TitleColumnAliases = []string{ColumnTitle, "Title of presentation", "Presentation Title"}

// ProfessorColumnAliases lists the known spellings of the author column.
var ProfessorColumnAliases = []string{ColumnProfessor, "Professors"}

// CSV column headers
const (
	ColumnFullName       = "Full Name"
	ColumnFirstName      = "First Name"
	ColumnLastName       = "Last Name"
	ColumnSubcollections = "Subcollections"
	ColumnAppeared       = "Appeared"
	ColumnPresentation   = "Presentation Names"
	ColumnDOI            = "DOI Numbers"
)

// Output file names
const (
	SheetNamesFile   = "esa_names.csv"
	CreatorsFile     = "zotero_creators.csv"
	ComparisonFile   = "citation_checker.csv"
	DOIFile          = "dois_names.csv"
	DefaultOutputDir = "."
)

// Remote API constants
const (
	// ZoteroAPIURL is the base URL of the Zotero web API
	ZoteroAPIURL = "https://api.zotero.org"

	// ZoteroAPIVersion is the Zotero API version requested
	ZoteroAPIVersion = "3"

	// ZoteroKeyHeader carries the Zotero API key
	ZoteroKeyHeader = "Zotero-API-Key"

	// CrossrefWorksURL is the Crossref REST API works endpoint
	CrossrefWorksURL = "https://api.crossref.org/works"

	// DefaultLibraryType is the Zotero library type used when none is configured
	DefaultLibraryType = "group"
)
