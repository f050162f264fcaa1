package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turtacn/acadmin/pkg/errors"
)

func newAuditCommand(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Print the latest audit events and check their signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return errors.ErrInvalidRequest("--limit must be positive")
			}
			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)
			if a.Audit == nil {
				return errors.ErrInvalidRequest("auditing is disabled (audit.enabled=false)")
			}

			events, err := a.Audit.List(ctx, limit)
			if err != nil {
				return err
			}
			tampered := 0
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tACTOR\tACTION\tSTATUS\tSIGNATURE")
			for _, e := range events {
				sig := "unsigned"
				switch {
				case e.Signature != "" && a.Audit.Verify(e):
					sig = "valid"
				case e.Signature != "":
					sig = "INVALID"
					tampered++
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%s\n",
					e.ID, e.OccurredAt.Format("2006-01-02T15:04:05Z"), e.ActorID, e.Action, e.Status, sig)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if tampered > 0 {
				return errors.ErrConflict(fmt.Sprintf("%d audit events failed signature verification", tampered))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "number of events to print")
	return cmd
}
