package commands

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func dashboardCmd(p *portal) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the greeting, quick stats and recent meetings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := p.requestContext(cmd)
			defer cancel()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				_, err := p.stats.Get(gctx)
				return err
			})
			g.Go(func() error { return p.library.Load(gctx) })
			if err := g.Wait(); err != nil {
				return err
			}
			stats, _ := p.stats.Peek()

			out := cmd.OutOrStdout()
			if err := p.renderer.Greeting(out, name); err != nil {
				return err
			}
			if err := p.renderer.Stats(out, stats); err != nil {
				return err
			}
			return p.renderer.Designs(out, p.library.Designs())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name used in the greeting")
	return cmd
}
