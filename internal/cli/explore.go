package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/scenario"
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var static bool

	cmd := &cobra.Command{
		Use:   "explore <scenario>",
		Short: "Compare the outcome of every placement for a scenario",
		Long: `Explore runs the scenario once per placement and shows where each request
ends up. Rows whose final placement differs from the requested one were
flipped by the middleware. Select a row to see its flip history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			rows, err := c.explorePlacements(cmd.Context(), sc)
			if err != nil {
				return err
			}

			m := NewExploreModel(sc.Title(), rows)
			if static {
				fmt.Fprint(c.Out, m.View())
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(c.Out)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&static, "static", false, "print the table once instead of starting the interactive view")
	return cmd
}

// explorePlacements computes sc once for every placement. A failing
// placement is reported in its row; only cancellation aborts.
func (c *CLI) explorePlacements(ctx context.Context, sc *scenario.Scenario) ([]ExploreRow, error) {
	runner := pipeline.NewRunner(nil, nil, c.Logger)

	rows := make([]ExploreRow, 0, len(geom.AllPlacements))
	for _, p := range geom.AllPlacements {
		variant := *sc
		variant.Placement = p

		res, _, err := c.computeScenario(ctx, runner, &variant, false)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		rows = append(rows, ExploreRow{Requested: p, Result: res, Err: err})
	}
	return rows, nil
}
