// Package appcontext provides the application context interface shared by
// the citecheck commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/citecheck"
)

// Interface defines what commands need from the application. The App in
// cmd/citecheck/app implements it; tests use Mock.
type Interface interface {
	// Checker builds a checker from the loaded configuration. Options are
	// applied after the configured ones, so command flags win.
	Checker(opts ...citecheck.Option) (citecheck.Checker, error)

	// SheetPath returns the workbook path for commands that read the
	// workbook and were not given --sheet. It may ask the user.
	SheetPath() (string, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
