package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"reportctl/internal/app"
	"reportctl/internal/model"
)

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the report list on screen and refresh it until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.restore(ctx); err != nil {
				return err
			}
			return c.watch(ctx)
		},
	}
}

func (c *cli) watch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lists := make(chan []model.Report, 1)
	ended := make(chan struct{})

	// Every list, the first included, reaches the screen through the
	// subscription, so only the render loop writes to c.out.
	unsubscribe := c.app.WatchReports(func(reports []model.Report) {
		// Keep only the newest list if rendering falls behind.
		select {
		case <-lists:
		default:
		}
		lists <- reports
	})
	defer unsubscribe()

	var once bool
	c.app.WatchSession(func(s model.Session) {
		if s.Status == model.SessionAnonymous && !once {
			once = true
			close(ended)
		}
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ended:
				cancel()
				return nil
			case reports := <-lists:
				c.render(reports)
			}
		}
	})

	g.Go(func() error {
		// The refresh publishes its result to the subscription above.
		if _, err := c.app.ListReports(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	})

	return g.Wait()
}

func (c *cli) render(reports []model.Report) {
	fmt.Fprint(c.out, "\033[H\033[2J")
	fmt.Fprintf(c.out, "Reports (updated %s, every %s; Ctrl-C to quit)\n\n",
		time.Now().Format("15:04:05"), c.cfg.Sync.PollInterval)
	printReports(c.out, reports)
	if err := c.app.LastSyncError(); err != nil {
		if msg, show := app.UserMessage(err); show {
			fmt.Fprintf(c.out, "\nLast refresh failed: %s\n", msg)
		}
	}
}
