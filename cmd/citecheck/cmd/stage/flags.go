package stage

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/citecheck"
)

// flags holds per-command overrides of the configuration. Only flags that
// were set on the command line are applied.
type flags struct {
	// workbook is set for commands that read the workbook.
	workbook bool

	sheet     string
	firstYear int
	lastYear  int
	threshold int

	libraryID   string
	libraryType string
	collection  string

	mailto       string
	doiThreshold int
	dois         bool
}

func (f *flags) addSheet(cmd *cobra.Command) {
	f.workbook = true
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "workbook path (.xlsx, or .csv for a single sheet)")
	cmd.Flags().IntVar(&f.firstYear, "first-year", 0, "newest year sheet to read")
	cmd.Flags().IntVar(&f.lastYear, "last-year", 0, "oldest year sheet to read")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "largest edit distance treated as a misspelling")
}

func (f *flags) addZotero(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.libraryID, "library-id", "", "Zotero library id")
	cmd.Flags().StringVar(&f.libraryType, "library-type", "", "Zotero library type: user or group")
	cmd.Flags().StringVar(&f.collection, "collection", "", "Zotero collection key to scope the scan")
}

func (f *flags) addCrossref(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mailto, "mailto", "", "contact address sent to Crossref")
	cmd.Flags().IntVar(&f.doiThreshold, "doi-threshold", 0, "largest title edit distance accepted as a match")
}

// options converts the changed flags to checker options.
func (f *flags) options(cmd *cobra.Command) []citecheck.Option {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	var opts []citecheck.Option
	if changed("sheet") {
		opts = append(opts, citecheck.WithSheetPath(f.sheet))
	}
	if changed("first-year") || changed("last-year") {
		opts = append(opts, citecheck.WithYears(f.firstYear, f.lastYear))
	}
	if changed("threshold") {
		opts = append(opts, citecheck.WithMisspellingThreshold(f.threshold))
	}
	if changed("library-id") || changed("library-type") || changed("collection") {
		opts = append(opts, citecheck.WithZotero(f.libraryID, f.libraryType, "", f.collection))
	}
	if changed("mailto") {
		opts = append(opts, citecheck.WithCrossrefMailto(f.mailto))
	}
	if changed("doi-threshold") {
		opts = append(opts, citecheck.WithDOIThreshold(f.doiThreshold))
	}
	if changed("dois") {
		opts = append(opts, citecheck.WithDOIStage(f.dois))
	}
	return opts
}
