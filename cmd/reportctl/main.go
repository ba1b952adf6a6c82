package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"reportctl/config"
	"reportctl/internal/app"
	"reportctl/internal/model"
	"reportctl/pkg/log"
)

type cli struct {
	configFile string
	verbose    bool
	loggingOut bool

	out io.Writer
	cfg *config.Config
	l   log.Logger
	app *app.App
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{out: os.Stdout}
	root := c.rootCmd()

	err := root.ExecuteContext(ctx)
	if c.app != nil {
		_ = c.app.Close()
	}
	if err != nil {
		if msg, show := app.UserMessage(err); show {
			if msg == app.MsgUnexpected {
				// Usage and config errors carry their own text.
				msg = err.Error()
			}
			fmt.Fprintln(os.Stderr, "Error:", msg)
			if c.l != nil {
				c.l.Debugf(ctx, "reportctl: %v", err)
			}
		}
		stop()
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Request and download code-quality reports for GitHub repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (default: reportctl.yaml in ./config, . or the user config dir)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.reportsCmd(),
		c.watchCmd(),
		c.doctorCmd(),
	)
	return root
}

// setup loads config and builds the app. Only watch keeps polling; every
// other command fetches what it needs and exits.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	zapCfg := log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	}
	if c.verbose {
		zapCfg.Level = "debug"
	}
	c.l = log.Init(zapCfg)

	a, err := app.New(ctx, app.Config{
		Logger:  c.l,
		Config:  cfg,
		OneShot: cmd.Name() != "watch",
	})
	if err != nil {
		return err
	}
	c.app = a

	var wasAuthenticated bool
	a.WatchSession(func(s model.Session) {
		if wasAuthenticated && s.Status == model.SessionAnonymous && !c.loggingOut {
			fmt.Fprintln(os.Stderr, "Your session has expired. Please log in again.")
		}
		wasAuthenticated = s.Authenticated()
	})
	return nil
}

// restore loads the persisted session and fails unless it is usable.
func (c *cli) restore(ctx context.Context) error {
	if err := c.app.Initialize(ctx); err != nil {
		return err
	}
	if !c.app.Session().Authenticated() {
		return errNotLoggedIn
	}
	return nil
}
