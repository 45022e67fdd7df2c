package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"editon/diagram"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Parse a diagram and print it as rendered from the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagramFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), diagram.Render(d).String())
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a diagram and report what it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			d, err := loadDiagramFile(args[0])
			if err != nil {
				return err
			}
			for h := range d.Items {
				logger.Debug("item", "what", d.Describe(diagram.Handle(h)))
			}
			prog.done("parsed "+args[0],
				"boxes", len(d.Boxes()),
				"lines", len(d.Segments()),
				"points", len(d.Points()),
				"labels", len(d.Labels))
			return nil
		},
	}
}

type moveOptions struct {
	at    string
	dir   string
	steps int
	write bool
}

func newMoveCmd() *cobra.Command {
	opts := moveOptions{steps: 1}
	cmd := &cobra.Command{
		Use:   "move <file>",
		Short: "Move the item at a cell and print the result",
		Long: `Move the item under --at (a point, then a line, then a box border or the
smallest box around the cell) in direction --dir. Attached lines follow. The
result is printed, or written back to the file with --write.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.at, "at", "", "cell holding the item, as X,Y")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "direction: up, right, down or left")
	cmd.Flags().IntVar(&opts.steps, "steps", opts.steps, "number of cells to move")
	cmd.Flags().BoolVar(&opts.write, "write", false, "write the result back to the file")
	cmd.MarkFlagRequired("at")
	cmd.MarkFlagRequired("dir")
	return cmd
}

func runMove(cmd *cobra.Command, filename string, opts moveOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	config := configFromContext(ctx)

	x, y, err := parseCell(opts.at)
	if err != nil {
		return err
	}
	dir, err := diagram.ParseDirection(opts.dir)
	if err != nil {
		return err
	}
	if opts.steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	d, err := loadDiagramFile(filename)
	if err != nil {
		return err
	}
	h := d.ItemAt(x, y)
	if h == diagram.NoHandle {
		return fmt.Errorf("%w at (%d,%d)", diagram.ErrNoItem, x, y)
	}
	logger.Debug("moving", "item", d.Describe(h), "dir", dir, "steps", opts.steps)

	for i := 0; i < opts.steps; i++ {
		edits, err := diagram.TryMove(d, h, dir, config.Options)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		for _, e := range edits {
			logger.Debug("edit", "step", i+1, "edit", e.String())
		}
		if err := d.Apply(edits); err != nil {
			return err
		}
	}

	if opts.write {
		if err := saveDiagramFile(filename, d); err != nil {
			return err
		}
		logger.Info("wrote "+filename, "steps", opts.steps)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), diagram.Render(d).String())
	return nil
}

// parseCell reads "X,Y".
func parseCell(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("cell %q: want X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	if x < 0 || y < 0 {
		return 0, 0, fmt.Errorf("cell %q: coordinates must not be negative", s)
	}
	return x, y, nil
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Rasterise a diagram to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			d, err := loadDiagramFile(args[0])
			if err != nil {
				return err
			}
			if err := exportPNG(output, d, configFromContext(ctx)); err != nil {
				return err
			}
			prog.done("exported " + output)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "png", "", "output PNG file")
	cmd.MarkFlagRequired("png")
	return cmd
}
