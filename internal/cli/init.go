package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initResult is the --json output of init.
type initResult struct {
	ConfigDir string `json:"config_dir"`
	DataDir   string `json:"data_dir"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize qty configuration and sheet storage",
		Long:  "Create the configuration and data directories, then initialize the sheet storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

// runInit relies on setup having created the config directory and a default
// config.yaml. Attaching the sheet creates the data directory.
func (a *app) runInit(cmd *cobra.Command) error {
	sheet, dataDir, err := a.openSheet()
	if err != nil {
		return err
	}
	if err := sheet.Detach(); err != nil {
		return systemError(fmt.Errorf("finalize storage: %w", err))
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), initResult{ConfigDir: a.configDir, DataDir: dataDir})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "qty initialized successfully")
	fmt.Fprintf(out, "config: %s\ndata:   %s\n", a.configDir, dataDir)
	return nil
}
