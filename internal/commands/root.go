package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand of one invocation.
type cli struct {
	picker  Picker
	verbose bool
	logger  *slog.Logger
}

// Execute runs the CLI application.
func Execute(version string) error {
	root := NewRootCmd(version, SurveyPicker{})

	err := root.Execute()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("command failed", "error", err.Error())
	}
	return err
}

// NewRootCmd builds the command tree. picker answers --interactive prompts.
func NewRootCmd(version string, picker Picker) *cobra.Command {
	c := &cli{
		picker: picker,
		logger: slog.New(slog.DiscardHandler),
	}

	root := &cobra.Command{
		Use:           "formgroup",
		Short:         "Render nested HTML form groups from form definitions and templates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "Log renderer debug events to stderr")

	root.AddCommand(newRenderCmd(c))
	root.AddCommand(newImportCmd(c))
	return root
}
