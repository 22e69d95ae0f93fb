package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quantities/internal/paths"
	"github.com/mesh-intelligence/quantities/internal/sqlite"
	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/quantity"
	"github.com/mesh-intelligence/quantities/pkg/types"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// openSheet resolves the data directory, creates a SQLite backend and
// attaches it. The caller must Detach the returned backend.
func (a *app) openSheet() (*sqlite.Backend, string, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, "", systemError(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(cfg); err != nil {
		return nil, "", systemError(fmt.Errorf("attach sheet: %w", err))
	}
	return backend, dataDir, nil
}

// withSheet runs fn against an attached sheet and detaches afterwards.
func (a *app) withSheet(fn func(sheet *sqlite.Backend) error) error {
	sheet, _, err := a.openSheet()
	if err != nil {
		return err
	}
	defer sheet.Detach()
	return classify(fn(sheet))
}

func newSheetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Manage the parameter sheet of named quantities",
	}
	cmd.AddCommand(newSheetSetCmd(a))
	cmd.AddCommand(newSheetGetCmd(a))
	cmd.AddCommand(newSheetListCmd(a))
	cmd.AddCommand(newSheetDeleteCmd(a))
	cmd.AddCommand(newSheetExportCmd(a))
	cmd.AddCommand(newSheetImportCmd(a))
	return cmd
}

func newSheetSetCmd(a *app) *cobra.Command {
	var kind, note string
	cmd := &cobra.Command{
		Use:   "set <name> <value> <unit>",
		Short: "Create or update a named quantity",
		Long: `Set stores a value under a name. The unit must measure the kind; when
--kind is omitted it is inferred from the unit if only one kind matches.
Setting an existing name replaces its value and keeps its creation time.

Example:
  qty sheet set mtow 79000 kg --kind mass --note "max takeoff weight"
  qty sheet set wind "[3, 4]" kt --kind velocity`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteSet := cmd.Flags().Changed("note")
			return a.runSheetSet(cmd, args, kind, note, noteSet)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "dimension kind of the quantity (e.g. mass, pressure)")
	cmd.Flags().StringVar(&note, "note", "", "free-form description")
	return cmd
}

func (a *app) runSheetSet(cmd *cobra.Command, args []string, kind, note string, noteSet bool) error {
	name, unitExpr := args[0], strings.TrimSpace(args[2])
	xs, vector, err := parseNumbers(args[1])
	if err != nil {
		return err
	}
	k, err := resolveKind(kind, unitExpr)
	if err != nil {
		return err
	}

	return a.withSheet(func(sheet *sqlite.Backend) error {
		e := &types.Entry{
			Name:   name,
			Kind:   k,
			Values: xs,
			Vector: vector,
			Unit:   unitExpr,
			Note:   note,
		}
		existing, err := sheet.GetByName(name)
		switch {
		case err == nil:
			e.EntryID = existing.EntryID
			if !noteSet {
				e.Note = existing.Note
			}
		case !errors.Is(err, types.ErrNotFound):
			return err
		}

		if _, err := sheet.Set(e); err != nil {
			return err
		}
		return a.printEntry(cmd, e, "")
	})
}

// resolveKind parses kind, or infers it from the unit when kind is empty.
func resolveKind(kind, unitExpr string) (dim.Kind, error) {
	if kind != "" {
		return dim.ParseKind(kind)
	}
	u, err := units.Default().Parse(unitExpr)
	if err != nil {
		return "", err
	}
	kinds := quantity.KindsOf(u)
	switch len(kinds) {
	case 1:
		return kinds[0], nil
	case 0:
		return "", fmt.Errorf("unit %q measures no known kind (%s): %w", unitExpr, u.Dim, dim.ErrUnknownKind)
	default:
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}
		return "", fmt.Errorf("unit %q is ambiguous (%s); pass --kind: %w",
			unitExpr, strings.Join(names, ", "), dim.ErrUnknownKind)
	}
}

func newSheetGetCmd(a *app) *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show a named quantity",
		Long: `Get prints a named quantity, converted to --unit when given, otherwise to
the preferred unit configured for its kind, otherwise in the unit it was
stored in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSheet(func(sheet *sqlite.Backend) error {
				e, err := sheet.GetByName(args[0])
				if err != nil {
					return err
				}
				return a.printEntry(cmd, e, unit)
			})
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "", "unit to display the value in")
	return cmd
}

func newSheetListCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List named quantities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var k dim.Kind
			if kind != "" {
				var err error
				if k, err = dim.ParseKind(kind); err != nil {
					return err
				}
			}
			return a.withSheet(func(sheet *sqlite.Backend) error {
				entries, err := sheet.List(k)
				if err != nil {
					return err
				}
				return a.printEntries(cmd, entries)
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list quantities of this kind")
	return cmd
}

func newSheetDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a named quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSheet(func(sheet *sqlite.Backend) error {
				e, err := sheet.GetByName(args[0])
				if err != nil {
					return err
				}
				if err := sheet.Delete(e.EntryID); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), e)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", e.Name)
				return nil
			})
		},
	}
}

func newSheetExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the sheet as JSON lines",
		Long:  "Export writes every entry as one JSON object per line, to file when given, otherwise to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSheet(func(sheet *sqlite.Backend) error {
				if len(args) == 0 {
					return sheet.Export(cmd.OutOrStdout())
				}
				if err := sheet.ExportFile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", args[0])
				return nil
			})
		},
	}
}

func newSheetImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load entries from a JSON lines file",
		Long: `Import upserts every entry of a file written by export, matching entries
by ID. The import stops at the first invalid entry; entries before it stay
applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSheet(func(sheet *sqlite.Backend) error {
				n, err := sheet.ImportFile(args[0])
				if err != nil {
					return fmt.Errorf("imported %d entries before failing: %w", n, err)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"imported": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", n)
				return nil
			})
		},
	}
}

// displayValue returns the payload of e in unitExpr, or in the preferred
// unit of its kind when unitExpr is empty. An entry with neither is
// returned as stored.
func (a *app) displayValue(e *types.Entry, unitExpr string) (units.Value, error) {
	v, err := e.Tagged()
	if err != nil {
		return units.Value{}, err
	}
	if unitExpr == "" {
		unitExpr = a.preferredUnit(e.Kind)
	}
	if unitExpr == "" {
		return v, nil
	}
	return units.Default().Convert(v, unitExpr)
}

// printEntry writes e, converted for display.
func (a *app) printEntry(cmd *cobra.Command, e *types.Entry, unitExpr string) error {
	v, err := a.displayValue(e, unitExpr)
	if err != nil {
		return err
	}
	if a.flags.jsonMode {
		view := *e
		view.Values = v.Values()
		view.Unit = v.Unit().Symbol
		return writeJSON(cmd.OutOrStdout(), &view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %s %s (%s)\n", e.Name,
		a.formatNumbers(v.Values(), v.IsVector(), a.precision(0)), v.Unit().Symbol, e.Kind)
	if e.Note != "" {
		fmt.Fprintf(out, "  %s\n", e.Note)
	}
	return nil
}

// printEntries writes entries as a table, each in its display unit.
func (a *app) printEntries(cmd *cobra.Command, entries []*types.Entry) error {
	views := make([]*types.Entry, len(entries))
	for i, e := range entries {
		v, err := a.displayValue(e, "")
		if err != nil {
			return err
		}
		view := *e
		view.Values = v.Values()
		view.Unit = v.Unit().Symbol
		views[i] = &view
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), views)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tVALUE\tNOTE")
	for _, e := range views {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n", e.Name, e.Kind,
			a.formatNumbers(e.Values, e.Vector, a.precision(0)), e.Unit, e.Note)
	}
	return w.Flush()
}
