package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glo0ml34f/talon/internal/config"
	"github.com/glo0ml34f/talon/internal/console"
	"github.com/glo0ml34f/talon/internal/logging"
	"github.com/glo0ml34f/talon/internal/plugin"
	"github.com/glo0ml34f/talon/internal/repl"
	"github.com/glo0ml34f/talon/internal/tui"
)

// version is set at build time using -ldflags. Default is "dev".
var version = "dev"

type options struct {
	configPath  string
	pluginsDir  string
	plain       bool
	verbose     bool
	showVersion bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "talon",
		Short: "Talon Algorithm interactive terminal",
		Long: `talon opens the Talon Algorithm command console.

Type /help at the prompt for the command list. Use the up and down arrow
keys to recall earlier commands. Press Ctrl+C to leave.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "config file")
	f.StringVar(&opts.pluginsDir, "plugins", "", "Lua plugins directory")
	f.BoolVar(&opts.plain, "plain", false, "line-mode console instead of the full-screen UI")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&opts.showVersion, "version", false, "print version")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	plugins := plugin.NewManager(logger.Named("plugin"))
	defer plugins.Shutdown()
	if err := plugins.LoadAll(cfg.PluginsDir); err != nil {
		logger.Warn("plugins unavailable", zap.Error(err))
	}

	reg, err := buildRegistry(plugins)
	if err != nil {
		return err
	}
	session := console.NewSession(reg,
		console.WithTimeLayout(cfg.TimeLayout),
		console.WithLogger(logger.Named("console")),
	)
	logger.Info("session started",
		zap.String("session", session.ID()),
		zap.String("mode", cfg.Mode),
		zap.Int("commands", reg.Len()))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Mode == config.ModePlain {
		r := repl.New(session, repl.Options{
			Prompt: cfg.Prompt,
			Log:    logger.Named("repl"),
			Rewind: readline.IsTerminal(int(os.Stdout.Fd())),
		})
		return r.Run(ctx)
	}

	m := tui.New(session, tui.Options{
		Prompt:     cfg.Prompt,
		TimeLayout: cfg.TimeLayout,
		Log:        logger.Named("tui"),
	})
	if err := tui.Run(ctx, m); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.plain {
		cfg.Mode = config.ModePlain
	}
	if opts.pluginsDir != "" {
		cfg.PluginsDir = opts.pluginsDir
	}
	return cfg, nil
}

// buildRegistry freezes the built-ins plus any plugin commands that do not
// collide with them.
func buildRegistry(plugins *plugin.Manager) (*console.Registry, error) {
	builtins := console.Builtins()
	taken := make([]string, len(builtins))
	for i, b := range builtins {
		taken[i] = b.Token
	}
	reg, err := console.NewRegistry(append(builtins, plugins.Commands(taken...)...)...)
	if err != nil {
		return nil, fmt.Errorf("build command registry: %w", err)
	}
	return reg, nil
}
