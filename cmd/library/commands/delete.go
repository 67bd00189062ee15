package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Apurer/go-gin-design-library/internal/portal/designs"
)

var errDeleteFailed = errors.New("design was not deleted")

func deleteCmd(p *portal) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <design-id>",
		Short: "Delete one design after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid design id %q", args[0])
			}
			ctx, cancel := p.requestContext(cmd)
			defer cancel()

			flow := p.library.DeletionFlow(id)
			if err := flow.RequestDelete(); err != nil {
				return err
			}
			if !yes {
				if err := p.renderer.DeletePrompt(cmd.OutOrStdout(), id); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), "Delete? [y/N] ")
				if !confirmed(cmd) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return flow.Cancel()
				}
			}

			outcome, err := flow.Confirm(ctx)
			if err != nil {
				return err
			}
			if outcome.State == designs.StateFailed {
				return errDeleteFailed
			}
			return p.renderer.Designs(cmd.OutOrStdout(), p.library.Designs())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirmed(cmd *cobra.Command) bool {
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
