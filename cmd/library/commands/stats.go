package commands

import (
	"github.com/spf13/cobra"
)

func statsCmd(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show meeting and design totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := p.requestContext(cmd)
			defer cancel()
			stats, err := p.stats.Get(ctx)
			if err != nil {
				return err
			}
			return p.renderer.Stats(cmd.OutOrStdout(), stats)
		},
	}
}

func meetingsCmd(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "meetings",
		Short: "Show recent vendor meetings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := p.requestContext(cmd)
			defer cancel()
			meetings, err := p.client.ListMeetings(ctx)
			if err != nil {
				return err
			}
			return p.renderer.Meetings(cmd.OutOrStdout(), meetings)
		},
	}
}
