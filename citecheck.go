// Package citecheck reconciles the author names of a conference spreadsheet
// with the creators of a Zotero library.
//
// The work is split into stages that exchange flat CSV files in the output
// directory, so each stage can run on its own:
//
//	sheet    workbook          -> esa_names.csv
//	zotero   Zotero library    -> zotero_creators.csv
//	compare  both CSV files    -> citation_checker.csv
//	dois     esa_names.csv     -> dois_names.csv (Crossref)
package citecheck

import (
	"context"
	"path/filepath"

	"github.com/agentstation/citecheck/internal/sources/crossref"
	"github.com/agentstation/citecheck/internal/sources/spreadsheet"
	"github.com/agentstation/citecheck/internal/sources/zotero"
	"github.com/agentstation/citecheck/internal/tabular"
	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/names"
	"github.com/agentstation/citecheck/pkg/reconciler"
)

// Stage names
const (
	StageSheet   = "sheet"
	StageZotero  = "zotero"
	StageCompare = "compare"
	StageDOIs    = "dois"
)

// Checker runs the reconciliation stages
type Checker interface {
	// Sheet extracts and deduplicates spreadsheet names
	Sheet(ctx context.Context) (Summary, error)

	// Zotero scans the library's creators
	Zotero(ctx context.Context) (Summary, error)

	// Compare flags spreadsheet names that appear in the library
	Compare(ctx context.Context) (Summary, error)

	// DOIs resolves presentation titles through Crossref
	DOIs(ctx context.Context) (Summary, error)

	// Run executes sheet, zotero and compare, then dois when enabled
	Run(ctx context.Context) ([]Summary, error)

	// OnStage registers a callback for completed stages
	OnStage(StageHook)
}

// Summary describes the output of one stage
type Summary struct {
	Stage    string   `json:"stage"`
	File     string   `json:"file"`
	Rows     int      `json:"rows"`
	Matched  int      `json:"matched,omitempty"`
	Rejected int      `json:"rejected,omitempty"`
	Review   []string `json:"review,omitempty"`
	Skipped  []string `json:"skipped,omitempty"`
	Failed   []string `json:"failed,omitempty"`
}

// checker is the internal implementation of the Checker interface
type checker struct {
	config *config
	hooks  *hooks
}

// New creates a Checker with the given options
func New(opts ...Option) (Checker, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &checker{config: cfg, hooks: newHooks()}, nil
}

func (c *checker) OnStage(fn StageHook) {
	c.hooks.OnStage(fn)
}

func (c *checker) path(file string) string {
	return filepath.Join(c.config.outputDir, file)
}

func (c *checker) finish(ctx context.Context, s Summary) Summary {
	logging.FromContext(ctx).Info().
		Str("file", s.File).
		Int("rows", s.Rows).
		Msg("Stage complete")
	c.hooks.triggerStage(s)
	return s
}

func (c *checker) Sheet(ctx context.Context) (Summary, error) {
	ctx = logging.WithStage(ctx, StageSheet)

	dedupe, err := names.NewDeduplicator(names.WithThreshold(c.config.misspellingThreshold))
	if err != nil {
		return Summary{}, err
	}
	reader, err := spreadsheet.New(c.config.sheetPath,
		spreadsheet.WithYears(c.config.firstYear, c.config.lastYear),
		spreadsheet.WithDeduplicator(dedupe),
	)
	if err != nil {
		return Summary{}, err
	}

	res, err := reader.Read(ctx)
	if err != nil {
		return Summary{}, err
	}

	out := c.path(constants.SheetNamesFile)
	if err := tabular.Write(ctx, out, tabular.SheetNamesTable(res.Names)); err != nil {
		return Summary{}, err
	}

	return c.finish(ctx, Summary{
		Stage:    StageSheet,
		File:     out,
		Rows:     len(res.Names),
		Rejected: len(res.Rejected),
		Review:   res.Review,
		Skipped:  res.Skipped,
	}), nil
}

func (c *checker) Zotero(ctx context.Context) (Summary, error) {
	ctx = logging.WithStage(ctx, StageZotero)

	if c.config.zoteroAPIKey == "" {
		logging.FromContext(ctx).Warn().
			Err(errors.ErrAPIKeyRequired).
			Msg("No Zotero API key configured, only public libraries are readable")
	}

	client, err := zotero.NewClient(zotero.Config{
		LibraryID:   c.config.zoteroLibraryID,
		LibraryType: c.config.zoteroLibraryType,
		APIKey:      c.config.zoteroAPIKey,
		Collection:  c.config.zoteroCollection,
		BaseURL:     c.config.zoteroURL,
	}, c.config.transportOptions()...)
	if err != nil {
		return Summary{}, err
	}

	authors, err := client.Scan(ctx)
	if err != nil {
		return Summary{}, err
	}

	out := c.path(constants.CreatorsFile)
	if err := tabular.Write(ctx, out, tabular.CreatorsTable(authors)); err != nil {
		return Summary{}, err
	}

	return c.finish(ctx, Summary{Stage: StageZotero, File: out, Rows: len(authors)}), nil
}

func (c *checker) Compare(ctx context.Context) (Summary, error) {
	ctx = logging.WithStage(ctx, StageCompare)

	sheetTable, err := tabular.Read(c.path(constants.SheetNamesFile))
	if err != nil {
		return Summary{}, err
	}
	sheet, err := tabular.ParseSheetNames(sheetTable)
	if err != nil {
		return Summary{}, err
	}

	creatorTable, err := tabular.Read(c.path(constants.CreatorsFile))
	if err != nil {
		return Summary{}, err
	}
	authors, collections, err := tabular.ParseAuthors(creatorTable)
	if err != nil {
		return Summary{}, err
	}

	matcher, err := reconciler.New(reconciler.WithCollections(collections))
	if err != nil {
		return Summary{}, err
	}
	comparisons := matcher.Match(ctx, sheet, authors)

	matched := 0
	for _, cmp := range comparisons {
		if cmp.Appeared {
			matched++
		}
	}

	out := c.path(constants.ComparisonFile)
	if err := tabular.Write(ctx, out, tabular.ComparisonTable(comparisons, collections)); err != nil {
		return Summary{}, err
	}

	return c.finish(ctx, Summary{Stage: StageCompare, File: out, Rows: len(comparisons), Matched: matched}), nil
}

func (c *checker) DOIs(ctx context.Context) (Summary, error) {
	ctx = logging.WithStage(ctx, StageDOIs)

	table, err := tabular.Read(c.path(constants.SheetNamesFile))
	if err != nil {
		return Summary{}, err
	}
	sheet, err := tabular.ParseSheetNames(table)
	if err != nil {
		return Summary{}, err
	}
	titles := make([]string, 0, len(sheet))
	for _, n := range sheet {
		titles = append(titles, n.Title)
	}

	client, err := crossref.NewClient(crossref.Config{
		Mailto:    c.config.crossrefMailto,
		Threshold: c.config.doiThreshold,
		BaseURL:   c.config.crossrefURL,
	}, c.config.transportOptions()...)
	if err != nil {
		return Summary{}, err
	}

	res, err := client.Lookup(ctx, titles)
	if err != nil {
		return Summary{}, err
	}

	out := c.path(constants.DOIFile)
	if err := tabular.Write(ctx, out, tabular.DOITable(res.DOIs)); err != nil {
		return Summary{}, err
	}

	return c.finish(ctx, Summary{
		Stage:  StageDOIs,
		File:   out,
		Rows:   len(res.DOIs),
		Failed: res.Failed,
	}), nil
}

func (c *checker) Run(ctx context.Context) ([]Summary, error) {
	stages := []func(context.Context) (Summary, error){c.Sheet, c.Zotero, c.Compare}
	if c.config.crossrefEnabled {
		stages = append(stages, c.DOIs)
	}

	summaries := make([]Summary, 0, len(stages))
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		s, err := stage(ctx)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
