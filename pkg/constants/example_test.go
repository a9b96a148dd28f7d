package constants_test

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/agentstation/citecheck/pkg/constants"
)

// Example demonstrates where each stage writes its output
func Example() {
	dir := "out"
	for _, file := range []string{
		constants.SheetNamesFile,
		constants.CreatorsFile,
		constants.ComparisonFile,
		constants.DOIFile,
	} {
		fmt.Println(filepath.Join(dir, file))
	}
	// Output:
	// out/esa_names.csv
	// out/zotero_creators.csv
	// out/citation_checker.csv
	// out/dois_names.csv
}

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}
	fmt.Printf("HTTP timeout: %v\n", client.Timeout)
	fmt.Printf("Shutdown timeout: %v\n", constants.ShutdownTimeout)

	// Output:
	// HTTP timeout: 30s
	// Shutdown timeout: 5s
}

// Example_retryLogic shows the delay before each retry of a remote lookup
func Example_retryLogic() {
	for i := 1; i < constants.MaxAttempts; i++ {
		backoff := constants.RetryBackoff * time.Duration(1<<(i-1))
		fmt.Printf("Retry %d/%d after %v\n", i, constants.MaxAttempts-1, backoff)
	}
	// Output:
	// Retry 1/2 after 1s
	// Retry 2/2 after 2s
}

// Example_thresholds shows the default edit distance limits
func Example_thresholds() {
	fmt.Printf("Misspelling threshold: %d\n", constants.MisspellingThreshold)
	fmt.Printf("DOI threshold: %d\n", constants.DOIThreshold)
	fmt.Printf("Years: %d-%d\n", constants.DefaultLastYear, constants.DefaultFirstYear)
	// Output:
	// Misspelling threshold: 3
	// DOI threshold: 10
	// Years: 2006-2022
}
