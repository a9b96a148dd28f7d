// Package stage provides the commands that run the reconciliation stages.
package stage

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/citecheck"
	"github.com/agentstation/citecheck/internal/appcontext"
	"github.com/agentstation/citecheck/internal/cmd/output"
	"github.com/agentstation/citecheck/pkg/logging"
)

// stageFunc runs one or more stages on a checker.
type stageFunc func(ctx context.Context, c citecheck.Checker) ([]citecheck.Summary, error)

func single(fn func(citecheck.Checker) func(context.Context) (citecheck.Summary, error)) stageFunc {
	return func(ctx context.Context, c citecheck.Checker) ([]citecheck.Summary, error) {
		s, err := fn(c)(ctx)
		if err != nil {
			return nil, err
		}
		return []citecheck.Summary{s}, nil
	}
}

// NewSheetCommand creates the sheet command.
func NewSheetCommand(app appcontext.Interface) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:     "sheet",
		GroupID: "stages",
		Short:   "Extract author names from the conference workbook",
		Long: `Sheet reads one sheet per year from the conference workbook, splits the
Professor column into individual names, drops near-duplicate spellings and
writes esa_names.csv.`,
		Example: `  citecheck sheet --sheet "ESA Conferences.xlsx"
  citecheck sheet --first-year 2020 --last-year 2010 --threshold 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, app, f, single(func(c citecheck.Checker) func(context.Context) (citecheck.Summary, error) {
				return c.Sheet
			}))
		},
	}
	f.addSheet(cmd)
	return cmd
}

// NewZoteroCommand creates the zotero command.
func NewZoteroCommand(app appcontext.Interface) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:     "zotero",
		GroupID: "stages",
		Short:   "Export the creators of a Zotero library",
		Long: `Zotero scans the top-level items of the library, or of one collection and
all of its subcollections, and writes every creator to zotero_creators.csv
together with the collections they appear in.`,
		Example: `  citecheck zotero --library-id 4907635 --collection D7X5DJBX
  ZOTERO_API_KEY=... citecheck zotero --library-type user --library-id 123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, app, f, single(func(c citecheck.Checker) func(context.Context) (citecheck.Summary, error) {
				return c.Zotero
			}))
		},
	}
	f.addZotero(cmd)
	return cmd
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(app appcontext.Interface) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:     "compare",
		GroupID: "stages",
		Short:   "Flag spreadsheet names that appear in the library",
		Long: `Compare reads esa_names.csv and zotero_creators.csv from the output
directory and writes citation_checker.csv, marking each spreadsheet name
that shares a first initial and last name with a library creator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, app, f, single(func(c citecheck.Checker) func(context.Context) (citecheck.Summary, error) {
				return c.Compare
			}))
		},
	}
	return cmd
}

// NewDOIsCommand creates the dois command.
func NewDOIsCommand(app appcontext.Interface) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:     "dois",
		GroupID: "stages",
		Short:   "Look up DOIs for presentation titles on Crossref",
		Long: `DOIs searches Crossref for every distinct title in esa_names.csv and
writes the closest match within the DOI threshold to dois_names.csv.
Failed lookups are logged and skipped.`,
		Example: `  citecheck dois --mailto lab@example.org`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, app, f, single(func(c citecheck.Checker) func(context.Context) (citecheck.Summary, error) {
				return c.DOIs
			}))
		},
	}
	f.addCrossref(cmd)
	return cmd
}

// NewRunCommand creates the run command.
func NewRunCommand(app appcontext.Interface) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "stages",
		Short:   "Run sheet, zotero and compare in sequence",
		Long: `Run executes the sheet, zotero and compare stages in order. With --dois,
or crossref_enabled in the configuration, the Crossref stage runs last.`,
		Example: `  citecheck run
  citecheck run --dois --mailto lab@example.org -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, app, f, func(ctx context.Context, c citecheck.Checker) ([]citecheck.Summary, error) {
				return c.Run(ctx)
			})
		},
	}
	f.addSheet(cmd)
	f.addZotero(cmd)
	f.addCrossref(cmd)
	cmd.Flags().BoolVar(&f.dois, "dois", false, "also look up DOIs on Crossref")
	return cmd
}

func execute(cmd *cobra.Command, app appcontext.Interface, f *flags, run stageFunc) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	opts := f.options(cmd)
	if f.workbook && !cmd.Flags().Changed("sheet") {
		path, err := app.SheetPath()
		if err != nil {
			return err
		}
		opts = append([]citecheck.Option{citecheck.WithSheetPath(path)}, opts...)
	}

	checker, err := app.Checker(opts...)
	if err != nil {
		return err
	}
	checker.OnStage(func(s citecheck.Summary) {
		app.Logger().Debug().Str("stage", s.Stage).Str("file", s.File).Msg("Wrote output")
	})

	summaries, err := run(ctx, checker)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
	return formatter.Format(cmd.OutOrStdout(), summaryList(summaries))
}
