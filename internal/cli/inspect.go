package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resolvis/pkg/trace"
)

// inspectCommand creates the inspect command, which reconstructs a log
// and prints per-run statistics.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		listSteps bool
		stepOrder int
	)

	cmd := &cobra.Command{
		Use:   "inspect <log-file>",
		Short: "Reconstruct a resolver log and print per-run statistics",
		Long: `Reconstruct a resolver log and print per-run statistics.

Each independent search in the log becomes a run; inspect reports the
steps, maximum depth, and promotions of every run. Use --steps to list
every step, or --step N to print one step in full, including its
original log text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], listSteps, stepOrder)
		},
	}

	cmd.Flags().BoolVar(&listSteps, "steps", false, "list every step of every run")
	cmd.Flags().IntVar(&stepOrder, "step", -1, "print one step in full, by discovery order")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path string, listSteps bool, stepOrder int) error {
	logger := loggerFromContext(ctx)
	track := newProgress(logger)

	lf, err := trace.LoadFile(path, loadProgress(ctx, logger, path))
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer lf.Close()

	track.done(fmt.Sprintf("Reconstructed %d steps in %d runs", lf.Steps(), len(lf.Runs())))

	if stepOrder >= 0 {
		return c.printStep(lf, stepOrder)
	}

	fmt.Printf("%s  %s (%s)\n\n",
		StyleTitle.Render("Search log"),
		StyleValue.Render(lf.Name()),
		StyleDim.Render(fmt.Sprintf("%d bytes", lf.Size())))

	for ri, run := range lf.Runs() {
		promotions := 0
		unprocessed := 0
		for _, s := range run {
			promotions += len(s.Promotions)
			for _, succ := range s.Successors {
				if !succ.Processed() {
					unprocessed++
				}
			}
		}
		fmt.Printf("%s %s  steps %s  depth %s  promotions %s  unprocessed %s\n",
			StyleHighlight.Render("run"),
			StyleNumber.Render(fmt.Sprintf("%d", ri)),
			StyleNumber.Render(fmt.Sprintf("%d", len(run))),
			StyleNumber.Render(fmt.Sprintf("%d", run.MaxDepth())),
			StyleNumber.Render(fmt.Sprintf("%d", promotions)),
			StyleNumber.Render(fmt.Sprintf("%d", unprocessed)))

		if listSteps {
			for _, s := range run {
				fmt.Printf("  %s %s depth=%d branch=%d %s\n",
					StyleDim.Render("step"),
					StyleNumber.Render(fmt.Sprintf("%d", s.Order)),
					s.Depth, s.BranchSize,
					StyleDim.Render(truncate(s.Solution.Key(), 60)))
			}
		}
	}

	return nil
}

// printStep prints one step in full, fetching its source text on demand.
func (c *CLI) printStep(lf *trace.LogFile, order int) error {
	step := findStep(lf, order)
	if step == nil {
		return fmt.Errorf("no step with order %d (log has %d steps)", order, lf.Steps())
	}

	fmt.Printf("%s %s\n", StyleTitle.Render("Step"), StyleNumber.Render(fmt.Sprintf("%d", order)))
	fmt.Printf("%s %s\n", StyleDim.Render("solution:"), StyleValue.Render(step.Solution.Key()))
	fmt.Printf("%s depth=%d branch=%d bytes=[%d,%d)\n", StyleDim.Render("metrics: "),
		step.Depth, step.BranchSize, step.TextStart, step.TextStart+step.TextLen)
	if step.Parent != nil {
		fmt.Printf("%s step %d via %s\n", StyleDim.Render("parent:  "),
			step.Parent.Parent.Order, step.Parent.Choice.Key())
	}
	for _, p := range step.Promotions {
		fmt.Printf("%s %s\n", StyleDim.Render("promoted:"), p.Key())
	}
	for _, succ := range step.Successors {
		target := "unprocessed"
		if succ.Processed() {
			target = fmt.Sprintf("step %d", succ.Step.Order)
		}
		forced := ""
		if succ.Forced {
			forced = " (forced)"
		}
		fmt.Printf("%s %s via %s%s\n", StyleDim.Render("successor:"), target, succ.Choice.Key(), forced)
	}

	text, err := lf.StepText(step)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n%s", StyleDim.Render(strings.Repeat("-", 40)), text)
	return nil
}

func findStep(lf *trace.LogFile, order int) *trace.ProcessingStep {
	for _, run := range lf.Runs() {
		for _, s := range run {
			if s.Order == order {
				return s
			}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
