package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyhookui/skyhook/pkg/scenario"
	"github.com/skyhookui/skyhook/pkg/snapshot"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output string  // result file path, empty for stdout
	svg    string  // optional SVG snapshot path
	labels bool    // annotate snapshot layers with names
	scale  float64 // snapshot scale factor
}

// solveCommand creates the solve command. It reads a scenario file (TOML or
// JSON), runs the positioning engine once, and emits the placement as JSON.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a positioning scenario",
		Long: `Solve reads a scenario file describing a viewport, an anchor, a panel, and
a list of preferred positions, runs the placement engine once, and prints the
resulting placement as JSON.

Scenario files may be TOML or JSON; the extension decides the format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write an SVG snapshot of the solved scenario")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "annotate snapshot layers with names")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "snapshot scale factor")

	return cmd
}

func (c *CLI) runSolve(path string, opts *solveOpts) error {
	sc, err := scenario.ReadFile(path)
	if err != nil {
		return err
	}

	res, err := scenario.Solve(sc, scenario.Options{Logger: c.Logger})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	out = append(out, '\n')

	if opts.output == "" {
		os.Stdout.Write(out)
	} else {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		printSuccess("Result written to %s", StyleHighlight.Render(opts.output))
		p := res.Placement
		printKeyValue("position", fmt.Sprintf("%s/%s %s/%s",
			p.Position.OriginX, p.Position.OriginY, p.Position.OverlayX, p.Position.OverlayY))
		printKeyValue("box", fmt.Sprintf("(%.0f, %.0f) %.0fx%.0f",
			p.OverlayRect.Left, p.OverlayRect.Top, p.OverlayRect.Width, p.OverlayRect.Height))
		if p.Pushed {
			printWarning("panel was pushed on screen")
		}
	}

	if opts.svg != "" {
		svgOpts := []snapshot.Option{snapshot.WithScale(opts.scale)}
		if opts.labels {
			svgOpts = append(svgOpts, snapshot.WithLabels())
		}
		if err := os.WriteFile(opts.svg, snapshot.Render(sc, res, svgOpts...), 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		printSuccess("Snapshot written to %s", StyleHighlight.Render(opts.svg))
	}

	return nil
}
