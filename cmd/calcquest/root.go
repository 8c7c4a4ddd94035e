package main

import (
	"fmt"
	"time"

	"calcquest/internal/app"
	"calcquest/internal/grading"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags. Empty values fall back to CALCQUEST_*
// environment variables and then to defaults.
type RootOptions struct {
	DataDir     string
	Storage     string
	LogPath     string
	LogLevel    string
	CatalogPath string
	Tolerance   float64
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "calcquest",
		Short:         "Calculus Quest - master AP Calculus topics, collect the runes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding progress.db")
	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "", "progress storage (sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.LogPath, "log", "", "write JSON logs to this file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "region catalog YAML override")
	cmd.PersistentFlags().Float64Var(&opts.Tolerance, "tolerance", 0, "absolute answer tolerance")

	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newAnswerCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newNewCommand(opts))
	cmd.AddCommand(newClearCommand(opts))
	cmd.AddCommand(newIntroCommand(opts))
	cmd.AddCommand(newGotoCommand(opts))
	cmd.AddCommand(newPlayTimeCommand(opts))

	return cmd
}

func (o *RootOptions) config() (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, err
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Storage != "" {
		cfg.Storage = o.Storage
	}
	if o.LogPath != "" {
		cfg.LogPath = o.LogPath
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.CatalogPath != "" {
		cfg.CatalogPath = o.CatalogPath
	}
	if o.Tolerance != 0 {
		cfg.AnswerTolerance = o.Tolerance
	}
	if err := cfg.Validate(); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}

// withApp opens the app for the duration of fn.
func (o *RootOptions) withApp(fn func(a *app.App) error) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	runErr := fn(a)
	if err := a.Close(); runErr == nil {
		runErr = err
	}
	return runErr
}

func newCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <answer> <correct>",
		Short: "Check an answer without recording progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			checker := grading.NewChecker(cfg.AnswerTolerance)
			ok := checker.Grade(args[0], grading.TextAnswer(args[1]))
			fmt.Fprintln(cmd.OutOrStdout(), renderVerdict(ok, args[0], args[1]))
			return nil
		},
	}
}

func newAnswerCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "answer <topic> <answer> <correct>",
		Short: "Grade an answer and record it against a topic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				out := a.Session.SubmitAnswer(args[0], args[1], grading.TextAnswer(args[2]))
				fmt.Fprintln(cmd.OutOrStdout(), renderOutcome(out, args[1], args[2]))
				warnUnsaved(cmd, a)
				return nil
			})
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show runes, topic mastery and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				fmt.Fprint(cmd.OutOrStdout(), renderStatus(a, time.Now()))
				return nil
			})
		},
	}
}

func newNewCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new game, replacing saved progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				a.Store.NewGame()
				fmt.Fprintln(cmd.OutOrStdout(), "New game started.")
				warnUnsaved(cmd, a)
				return nil
			})
		},
	}
}

func newClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Erase saved progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if !a.Store.ClearSave() {
					return fmt.Errorf("could not clear saved progress")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Saved progress erased.")
				return nil
			})
		},
	}
}

func newIntroCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "intro",
		Short: "Mark the introduction as seen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				a.Store.MarkIntroSeen()
				warnUnsaved(cmd, a)
				return nil
			})
		},
	}
}

func newGotoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <region> [topic]",
		Short: "Move to a region and optionally one of its topics",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := ""
			if len(args) == 2 {
				topic = args[1]
			}
			return opts.withApp(func(a *app.App) error {
				if err := a.Session.Enter(args[0], topic); err != nil {
					return err
				}
				warnUnsaved(cmd, a)
				return nil
			})
		},
	}
}

func newPlayTimeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play-time <duration>",
		Short: "Add time spent playing (e.g. 25m)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[0], err)
			}
			return opts.withApp(func(a *app.App) error {
				a.Store.AddPlayTime(d)
				warnUnsaved(cmd, a)
				return nil
			})
		},
	}
}

func warnUnsaved(cmd *cobra.Command, a *app.App) {
	if !a.Store.LastSaveOK() {
		fmt.Fprintln(cmd.ErrOrStderr(), styleIncorrect.Render("warning: progress could not be saved"))
	}
}
