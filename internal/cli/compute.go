package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/middleware/flip"
	"github.com/matzehuels/floatplace/pkg/middleware/hide"
	"github.com/matzehuels/floatplace/pkg/middleware/offset"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/scenario"
	"github.com/matzehuels/floatplace/pkg/trace"
)

// computeOptions holds the flags of the compute command.
type computeOptions struct {
	placement string
	maxResets int
	jsonOut   bool
	tracePath string
	noCache   bool
}

// computed is one scenario's outcome, as printed with --json.
type computed struct {
	Scenario string           `json:"scenario"`
	Cached   bool             `json:"cached"`
	Result   *pipeline.Result `json:"result"`
}

// computeCommand creates the compute command.
func (c *CLI) computeCommand() *cobra.Command {
	var opts computeOptions

	cmd := &cobra.Command{
		Use:   "compute <scenario>...",
		Short: "Compute the position of the floating element in scenario files",
		Long: `Compute runs the middleware pipeline for each scenario file (.toml, .yaml,
.yml or .json) and prints the final placement, coordinates and flip history.

Results are cached by scenario content under the user cache directory.`,
		Example: `  floatplace compute tooltip.toml
  floatplace compute --placement right-start --json menu.yaml
  floatplace compute --trace trace.svg tooltip.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompute(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.placement, "placement", "p", "", "override the scenario placement")
	cmd.Flags().IntVar(&opts.maxResets, "max-resets", 0, "override the reset limit")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print results as JSON")
	cmd.Flags().StringVar(&opts.tracePath, "trace", "", "write the pipeline trace to a .dot or .svg file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runCompute(ctx context.Context, paths []string, opts computeOptions) error {
	if opts.placement != "" {
		if err := errors.ValidatePlacement(opts.placement); err != nil {
			return err
		}
	}
	if opts.maxResets < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--max-resets must not be negative")
	}
	if opts.tracePath != "" {
		if len(paths) > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--trace needs exactly one scenario")
		}
		if _, err := traceFormat(opts.tracePath); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	out := make([]computed, 0, len(paths))
	for i, path := range paths {
		sc, err := scenario.Load(path)
		if err != nil {
			return err
		}
		if opts.placement != "" {
			sc.Placement = geom.Placement(opts.placement)
		}
		if opts.maxResets > 0 {
			sc.MaxResets = opts.maxResets
		}

		res, cached, err := c.computeScenario(ctx, runner, sc, opts.tracePath != "")
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		out = append(out, computed{Scenario: sc.Title(), Cached: cached, Result: res})

		if !opts.jsonOut {
			if i > 0 {
				fmt.Fprintln(c.Out)
			}
			printResult(c.Out, sc.Title(), res, cached)
		}
		if opts.tracePath != "" {
			if err := c.writeTrace(ctx, res.Trace, opts.tracePath); err != nil {
				return err
			}
		}
	}

	if opts.jsonOut {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	prog.done(fmt.Sprintf("Computed %d scenario(s)", len(out)))
	if len(paths) == 1 && opts.tracePath == "" {
		fmt.Fprintln(c.Out)
		printNextStep(c.Out, "Compare all placements", appName+" explore "+paths[0])
	}
	return nil
}

// computeScenario builds and runs one scenario through the runner.
func (c *CLI) computeScenario(ctx context.Context, runner *pipeline.Runner, sc *scenario.Scenario, withTrace bool) (*pipeline.Result, bool, error) {
	req, err := sc.Build(c.Logger)
	if err != nil {
		return nil, false, err
	}
	req.Options.Trace = withTrace

	hash, err := sc.Hash()
	if err != nil {
		return nil, false, err
	}
	return runner.ComputeWithCacheInfo(ctx, hash, req.Reference, req.Floating, req.Options)
}

// printResult prints one result: position, middleware summaries and the
// flip history table.
func printResult(w io.Writer, title string, res *pipeline.Result, cached bool) {
	printSuccess(w, "%s", StyleTitle.Render(title))
	printKeyValue(w, "placement", string(res.Placement))
	printKeyValue(w, "position", fmt.Sprintf("(%s, %s)", formatNumber(res.X), formatNumber(res.Y)))

	if d, ok := middleware.Decode[offset.Data](res.MiddlewareData, offset.Name); ok {
		printKeyValue(w, "offset", fmt.Sprintf("x=%s y=%s", formatNumber(d.X), formatNumber(d.Y)))
	}
	if d, ok := middleware.Decode[hide.Data](res.MiddlewareData, hide.Name); ok {
		var flags []string
		if d.ReferenceHidden {
			flags = append(flags, "reference hidden")
		}
		if d.Escaped {
			flags = append(flags, "escaped")
		}
		if len(flags) == 0 {
			flags = append(flags, "visible")
		}
		printKeyValue(w, "visibility", strings.Join(flags, ", "))
	}
	printStats(w, res.Resets, res.Duration, cached)

	if d, ok := middleware.Decode[flip.Data](res.MiddlewareData, flip.Name); ok && len(d.Overflows) > 0 {
		fmt.Fprintln(w, historyTable(d))
	}
}

// traceFormat returns the output format implied by the trace file name.
func traceFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".svg":
		return ext[1:], nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "trace file %q must end in .dot or .svg", path)
}

// writeTrace writes t to path as DOT or rendered SVG.
func (c *CLI) writeTrace(ctx context.Context, t *trace.Trace, path string) error {
	if t == nil {
		return errors.New(errors.ErrCodeInternal, "result has no trace")
	}
	format, err := traceFormat(path)
	if err != nil {
		return err
	}

	var data []byte
	if format == "dot" {
		data = []byte(t.ToDOT())
	} else {
		spin := newSpinner(ctx, os.Stderr, "Rendering trace...")
		spin.Start()
		data, err = t.RenderSVG(ctx)
		if err != nil {
			spin.StopWithError("Trace rendering failed")
			return fmt.Errorf("render trace: %w", err)
		}
		spin.Stop()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	printFile(c.Out, path)
	return nil
}
