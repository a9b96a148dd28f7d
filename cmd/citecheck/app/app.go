// Package app provides the application context and dependency management
// for the citecheck CLI: configuration, logging and construction of the
// checker that runs the stages.
package app

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/citecheck"
	"github.com/agentstation/citecheck/internal/appcontext"
	"github.com/agentstation/citecheck/internal/cmd/output"
	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
)

// App represents the citecheck application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Interactive prompt wiring; stdin is only prompted when interactive.
	stdin       io.Reader
	prompt      io.Writer
	interactive bool
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		stdin:       os.Stdin,
		prompt:      os.Stderr,
		interactive: output.IsInteractive(os.Stdin),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Checker builds a checker from the configuration; opts are applied last.
func (a *App) Checker(opts ...citecheck.Option) (citecheck.Checker, error) {
	checker, err := citecheck.New(append(a.checkerOptions(), opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "checker", "", err)
	}
	return checker, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// SheetPath returns the configured workbook path. When none is configured
// and stdin is interactive the user is asked for one.
func (a *App) SheetPath() (string, error) {
	if a.config.SheetPath != "" {
		return a.config.SheetPath, nil
	}
	if !a.interactive {
		return constants.DefaultSheetPath, nil
	}
	path, err := output.Prompt(a.stdin, a.prompt, "Spreadsheet path", constants.DefaultSheetPath)
	if err != nil {
		return "", err
	}
	a.config.SheetPath = path
	return path, nil
}

// checkerOptions constructs checker options from the app configuration.
// An unset sheet path is left to the checker default; commands that read
// the workbook resolve it through SheetPath first.
func (a *App) checkerOptions() []citecheck.Option {
	c := a.config

	opts := []citecheck.Option{
		citecheck.WithOutputDir(c.OutputDir),
		citecheck.WithYears(c.FirstYear, c.LastYear),
		citecheck.WithMisspellingThreshold(c.MisspellingThreshold),
		citecheck.WithDOIThreshold(c.DOIThreshold),
		citecheck.WithZotero(c.ZoteroLibraryID, c.ZoteroLibraryType, c.ZoteroAPIKey, c.ZoteroCollection),
		citecheck.WithCrossrefMailto(c.CrossrefMailto),
		citecheck.WithDOIStage(c.CrossrefEnabled),
	}
	if c.ZoteroURL != "" {
		opts = append(opts, citecheck.WithZoteroURL(c.ZoteroURL))
	}
	if c.CrossrefURL != "" {
		opts = append(opts, citecheck.WithCrossrefURL(c.CrossrefURL))
	}
	if c.RateLimit > 0 {
		opts = append(opts, citecheck.WithRateLimit(c.RateLimit, constants.BurstSize))
	}
	if c.SheetPath != "" {
		opts = append(opts, citecheck.WithSheetPath(c.SheetPath))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPrompt sets where interactive questions are read from and written to.
// A file that is not a terminal is never prompted.
func WithPrompt(in io.Reader, out io.Writer) Option {
	return func(a *App) error {
		a.stdin = in
		a.prompt = out
		a.interactive = in != nil
		if f, ok := in.(*os.File); ok {
			a.interactive = output.IsInteractive(f)
		}
		return nil
	}
}

var _ appcontext.Interface = (*App)(nil)
