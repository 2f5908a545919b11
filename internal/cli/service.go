package cli

import (
	"fmt"
	"sort"

	"github.com/pablasso/taskdeck/internal/logging"
	"github.com/pablasso/taskdeck/internal/repository/sqlite"
	"github.com/pablasso/taskdeck/internal/server"
	"github.com/pablasso/taskdeck/internal/version"
	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.Info(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend at %s is not reachable: %w", a.client.BaseURL(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, version %s)\n", info.Message, info.Status, info.Version)
			routes := make([]string, 0, len(info.Endpoints))
			for route := range info.Endpoints {
				routes = append(routes, route)
			}
			sort.Strings(routes)
			for _, route := range routes {
				fmt.Fprintf(out, "  %-24s %s\n", route, info.Endpoints[route])
			}
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bundled task backend",
		Long:  "Serves the task REST API from a local SQLite database until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				a.cfg.Server.DBPath = dbPath
			}

			repo, err := sqlite.New(a.cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer repo.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving tasks from %s on %s\n", a.cfg.Server.DBPath, a.cfg.Server.Addr)
			logging.Infof("serving %s on %s", a.cfg.Server.DBPath, a.cfg.Server.Addr)
			return server.Run(cmd.Context(), a.cfg.Server.Addr, server.NewHandler(repo).Routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from TASKDECK_ADDR or :5000)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from TASKDECK_DB or tasks.db)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
}
