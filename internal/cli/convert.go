package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/quantity"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// convertResult is the --json output of convert.
type convertResult struct {
	Input  []float64  `json:"input"`
	From   string     `json:"from"`
	Values []float64  `json:"values"`
	Vector bool       `json:"vector,omitempty"`
	Unit   string     `json:"unit"`
	Kinds  []dim.Kind `json:"kinds,omitempty"`
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		kind      string
		precision int
	)
	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between units",
		Long: `Convert expresses a value given in one unit in another unit of the same
dimension. The value is a number or a vector such as "[1, 2, 3]".

Example:
  qty convert 1 mi km
  qty convert 14.7 psi kPa --kind pressure
  qty convert -- -40 degC degF
  qty convert "[3, 4]" ft m`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args, kind, precision)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "fail unless both units measure this kind (e.g. pressure)")
	cmd.Flags().IntVar(&precision, "precision", 0, "significant digits in the output (default from config)")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string, kind string, precision int) error {
	xs, vector, err := parseNumbers(args[0])
	if err != nil {
		return err
	}

	reg := units.Default()
	from, err := reg.Parse(args[1])
	if err != nil {
		return err
	}
	to, err := reg.Parse(args[2])
	if err != nil {
		return err
	}

	if kind != "" {
		k, err := dim.ParseKind(kind)
		if err != nil {
			return err
		}
		if err := quantity.Check(k, from); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		if err := quantity.Check(k, to); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	in := units.Scalar(xs[0], from)
	if vector {
		in = units.Vector(xs, from)
	}
	out, err := in.To(to)
	if err != nil {
		return err
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), convertResult{
			Input:  xs,
			From:   from.Symbol,
			Values: out.Values(),
			Vector: vector,
			Unit:   to.Symbol,
			Kinds:  quantity.KindsOf(to),
		})
	}

	prec := a.precision(precision)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n",
		a.formatNumbers(xs, vector, prec), from.Symbol,
		a.formatNumbers(out.Values(), vector, prec), to.Symbol)
	return nil
}
