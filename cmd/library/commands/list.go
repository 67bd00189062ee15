package commands

import (
	"github.com/spf13/cobra"
)

func listCmd(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the design library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := p.requestContext(cmd)
			defer cancel()
			out := cmd.OutOrStdout()
			if err := p.renderer.Skeleton(out, 1); err != nil {
				return err
			}
			if err := p.library.Load(ctx); err != nil {
				return err
			}
			return p.renderer.Designs(out, p.library.Designs())
		},
	}
}
