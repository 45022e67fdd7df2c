package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"editon/diagram"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "editon [file]",
		Short: "Editon edits box-drawing diagrams in the terminal",
		Long: `Editon opens a text diagram drawn with box-drawing characters and lets you
move boxes, lines and junctions around while everything attached follows.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withConfig(ctx, config))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), args, verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/editon/config.toml)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newMoveCmd())
	root.AddCommand(newExportCmd())
	return root
}

// runEditor starts the interactive editor on the given file, or on an empty
// diagram. A file that does not exist yet becomes the save target.
func runEditor(ctx context.Context, args []string, verbose bool) error {
	config := configFromContext(ctx)
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger, closer, err := newEditorLogger(config.LogFile, level)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer closer.Close()

	buf := Buffer{diagram: &diagram.Diagram{}}
	if len(args) == 1 {
		buf.filename = args[0]
		d, err := loadDiagramFile(args[0])
		switch {
		case err == nil:
			buf.diagram = d
		case !errors.Is(err, os.ErrNotExist):
			return err
		}
	}
	logger.Info("editor started", "file", buf.filename, "items", len(buf.diagram.Items))

	p := tea.NewProgram(newModel(config, logger, buf), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
