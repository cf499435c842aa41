package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"vibe-insights/display"
	"vibe-insights/teams"
)

// cfg and logger are populated by the root command before any subcommand runs.
var (
	cfg    Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "vibe-insights",
	Short:         "Team engagement dashboard: vibe score, KPIs and factor analysis.",
	Long:          `vibe-insights serves the team insights dashboard to browsers and mobile clients, and prints it in the terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		v := viper.GetViper()
		initConfig(v)
		if err := readConfigFile(v); err != nil {
			return err
		}
		loaded, err := loadConfig(v)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := newLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web dashboard and the mobile API.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, closeSource, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeSource() }()

		ln, err := net.Listen("tcp", cfg.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
		}
		srv := &http.Server{
			Handler:           a.routes(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		return serve(ctx, srv, ln, logger)
	},
}

// viewport is the --width flag shared by the terminal commands.
var viewport int

var showCmd = &cobra.Command{
	Use:   "show [team]",
	Short: "Print the dashboard for a team.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closeSource, err := resolveFromArgs(cmd.Context(), args)
		if err != nil {
			return err
		}
		defer func() { _ = closeSource() }()
		return writeDashboard(cmd.OutOrStdout(), display.NewDashboard(m, terminalWidth()), cfg.Color)
	},
}

var factorsCmd = &cobra.Command{
	Use:   "factors [team]",
	Short: "Print the factor analysis for a team.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, closeSource, err := resolveFromArgs(cmd.Context(), args)
		if err != nil {
			return err
		}
		defer func() { _ = closeSource() }()
		return writeFactors(cmd.OutOrStdout(), display.NewFactorGrid(m), cfg.Color)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams in the dataset.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, closeSource, err := newApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeSource() }()
		names, err := a.source.Teams(cmd.Context())
		if err != nil {
			return err
		}
		return writeTeams(cmd.OutOrStdout(), names, teams.DefaultTeam)
	},
}

func terminalWidth() int {
	if viewport > 0 {
		return viewport
	}
	return cfg.DefaultWidth
}

// resolveFromArgs looks up the team named by the first argument, falling
// back to the default team.
func resolveFromArgs(ctx context.Context, args []string) (teams.TeamMetrics, func() error, error) {
	a, closeSource, err := newApp(ctx, cfg, logger)
	if err != nil {
		return teams.TeamMetrics{}, nil, err
	}
	key := string(teams.DefaultTeam)
	if len(args) == 1 {
		key = args[0]
	}
	m, err := teams.Resolve(ctx, a.source, key)
	if err != nil {
		_ = closeSource()
		return teams.TeamMetrics{}, nil, err
	}
	if string(m.Team) != key {
		logger.Warn("unknown team, showing default", zap.String("team", key), zap.String("default", string(m.Team)))
	}
	return m, closeSource, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default is .vibe-insights.yaml in . or $HOME)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("backend", backendStatic, "team metrics source: static or sqlite")
	pf.Duration("cache-ttl", 10*time.Minute, "how long looked-up records are cached (0 disables)")
	pf.Int("default-width", 1024, "viewport width in px used when the client reports none")
	pf.Bool("color", true, "colorize terminal output")
	for _, name := range []string{"config", "log-level", "backend", "cache-ttl", "default-width", "color"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}

	sf := serveCmd.Flags()
	sf.String("addr", ":8080", "listen address")
	sf.Bool("metrics", true, "expose Prometheus metrics on /metrics")
	sf.StringSlice("allowed-origins", []string{"*"}, "CORS origins allowed to call the mobile API")
	for _, name := range []string{"addr", "metrics", "allowed-origins"} {
		_ = viper.BindPFlag(name, sf.Lookup(name))
	}

	for _, c := range []*cobra.Command{showCmd, factorsCmd} {
		c.Flags().IntVar(&viewport, "width", 0, "viewport width in px (default: default-width)")
	}

	rootCmd.AddCommand(serveCmd, showCmd, factorsCmd, teamsCmd)
}
