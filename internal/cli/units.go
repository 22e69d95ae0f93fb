package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/quantity"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// unitJSON is the --json form of a unit.
type unitJSON struct {
	Name       string     `json:"name"`
	Aliases    []string   `json:"aliases,omitempty"`
	Prefixable bool       `json:"prefixable,omitempty"`
	Scale      float64    `json:"scale"`
	Offset     float64    `json:"offset,omitempty"`
	Dimension  string     `json:"dimension"`
	Kinds      []dim.Kind `json:"kinds,omitempty"`
}

func toUnitJSON(name string, u units.Unit) unitJSON {
	return unitJSON{
		Name:      name,
		Scale:     u.Scale,
		Offset:    u.Offset,
		Dimension: u.Dim.String(),
		Kinds:     quantity.KindsOf(u),
	}
}

func newUnitsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Inspect the unit registry",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the named units",
		Long:  "List prints every named unit, built-in and custom. SI prefixes apply to units marked prefixable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUnitsList(cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <expr>",
		Short: "Show the scale and dimension of a unit expression",
		Long: `Show parses a unit expression and prints its scale relative to SI base
units, its dimension and the kinds it can measure.

Example:
  qty units show psi
  qty units show "kg/m³"
  qty units show "N m"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUnitsShow(cmd, args[0])
		},
	})
	return cmd
}

func (a *app) runUnitsList(cmd *cobra.Command) error {
	infos := units.Default().List()

	if a.flags.jsonMode {
		out := make([]unitJSON, len(infos))
		for i, info := range infos {
			out[i] = toUnitJSON(info.Name, info.Unit)
			out[i].Aliases = info.Aliases
			out[i].Prefixable = info.Prefixable
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCALE\tDIMENSION\tALIASES")
	for _, info := range infos {
		name := info.Name
		if info.Prefixable {
			name += "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, a.printer.Sprintf("%.*g", a.precision(0), info.Unit.Scale),
			info.Unit.Dim, strings.Join(info.Aliases, ", "))
	}
	return w.Flush()
}

func (a *app) runUnitsShow(cmd *cobra.Command, expr string) error {
	u, err := units.Default().Parse(expr)
	if err != nil {
		return err
	}
	res := toUnitJSON(u.Symbol, u)

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), res)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "unit:\t%s\n", res.Name)
	fmt.Fprintf(w, "scale:\t%s\n", strconv.FormatFloat(res.Scale, 'g', -1, 64))
	if u.HasOffset() {
		fmt.Fprintf(w, "offset:\t%s\n", strconv.FormatFloat(res.Offset, 'g', -1, 64))
	}
	fmt.Fprintf(w, "dimension:\t%s\n", res.Dimension)
	kinds := make([]string, len(res.Kinds))
	for i, k := range res.Kinds {
		kinds[i] = string(k)
	}
	if len(kinds) == 0 {
		kinds = []string{"-"}
	}
	fmt.Fprintf(w, "kinds:\t%s\n", strings.Join(kinds, ", "))
	return w.Flush()
}
