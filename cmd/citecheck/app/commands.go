package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/citecheck/cmd/citecheck/cmd/stage"
	"github.com/agentstation/citecheck/internal/cmd/output"
)

// CreateSheetCommand creates the sheet command with app dependencies.
func (a *App) CreateSheetCommand() *cobra.Command {
	return stage.NewSheetCommand(a)
}

// CreateZoteroCommand creates the zotero command with app dependencies.
func (a *App) CreateZoteroCommand() *cobra.Command {
	return stage.NewZoteroCommand(a)
}

// CreateCompareCommand creates the compare command with app dependencies.
func (a *App) CreateCompareCommand() *cobra.Command {
	return stage.NewCompareCommand(a)
}

// CreateDOIsCommand creates the dois command with app dependencies.
func (a *App) CreateDOIsCommand() *cobra.Command {
	return stage.NewDOIsCommand(a)
}

// CreateRunCommand creates the run command with app dependencies.
func (a *App) CreateRunCommand() *cobra.Command {
	return stage.NewRunCommand(a)
}

// versionInfo is the structured form of the version command output.
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	BuiltBy string `json:"built_by"`
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.Format == "" {
				cmd.Printf("citecheck %s\n", a.version)
				if a.config.Verbose {
					cmd.Printf("  commit:   %s\n", a.commit)
					cmd.Printf("  built:    %s\n", a.date)
					cmd.Printf("  built by: %s\n", a.builtBy)
				}
				return nil
			}

			format, err := a.parseFormat()
			if err != nil {
				return err
			}
			info := versionInfo{Version: a.version, Commit: a.commit, Date: a.date, BuiltBy: a.builtBy}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
		},
	}
}

// CreateManCommand creates the man command.
func (a *App) CreateManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "CITECHECK",
				Section: "1",
				Source:  "citecheck " + a.version,
				Manual:  "citecheck Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}

func (a *App) parseFormat() (output.Format, error) {
	return output.ParseFormat(a.config.Format)
}
