package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pablasso/taskdeck/internal/api"
	"github.com/pablasso/taskdeck/internal/config"
	"github.com/pablasso/taskdeck/internal/logging"
	"github.com/pablasso/taskdeck/internal/store"
	"github.com/pablasso/taskdeck/internal/tui"
	"github.com/pablasso/taskdeck/internal/version"
	"github.com/spf13/cobra"
)

// skipSetup marks commands that run without config, client or store.
const skipSetup = "taskdeck/skip-setup"

// app carries what every command needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	client *api.Client
	store  *store.Store
	logs   io.Closer

	apiURL  string
	timeout time.Duration
	filter  string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "Terminal client for a task manager backend",
		Long: `TaskDeck lists, creates, edits, completes and deletes tasks on a task
manager REST backend. Run without a command to open the interactive UI.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), tui.Options{Store: a.store, Filter: a.filter})
		},
	}
	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend base URL (default from "+config.EnvAPIURL+" or "+config.DefaultAPIURL+")")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Per-request timeout (default from "+config.EnvTimeout+")")
	cmd.Flags().StringVar(&a.filter, "filter", "", "Initial filter: All, Active, Completed, High, Medium or Low")

	cmd.AddCommand(
		newListCmd(a),
		newStatsCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newStatusCmd(a, "done", "Mark a task as completed", true),
		newStatusCmd(a, "undo", "Mark a task as not completed", false),
		newDeleteCmd(a),
		newPingCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup loads configuration, applies flag overrides and wires the logger,
// client and store.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = a.apiURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = a.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// The root command runs the TUI, which owns the terminal.
	logs, err := logging.Setup(cfg.Log.File, cfg.Log.Debug, cmd == cmd.Root())
	if err != nil {
		return err
	}
	a.logs = logs

	a.client = api.NewClient(cfg.APIBaseURL(), api.WithTimeout(cfg.API.Timeout))
	a.store = store.New(a.client)
	logging.Debugf("command %q using backend %s", cmd.CommandPath(), a.client.BaseURL())
	return nil
}

func (a *app) close() error {
	if a.logs == nil {
		return nil
	}
	err := a.logs.Close()
	a.logs = nil
	return err
}

// Execute runs the root command with a context cancelled on SIGINT or
// SIGTERM and reports failures on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, newRootCmd(), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
	}
	return err
}

func run(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// errorMessage prefers the store's user-facing text over the wrapped chain.
func errorMessage(err error) string {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return "invalid configuration: " + cfgErr.Error()
	}
	return store.UserMessage(err)
}
