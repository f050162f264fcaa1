package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/pkg/errors"
)

func newAssessCommand(opts *rootOptions) *cobra.Command {
	var (
		groupID  uint
		minLevel string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess every active student of a group and store the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if groupID == 0 {
				return errors.ErrInvalidRequest("--group must be a positive id")
			}
			level, err := models.ParseRiskLevel(minLevel)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			results, err := a.Risk.AssessGroup(ctx, groupID)
			if err != nil {
				return err
			}
			shown := make([]*dto.RiskAssessmentResponse, 0, len(results))
			for _, r := range results {
				if models.RiskLevel(r.RiskLevel).AtLeast(level) {
					shown = append(shown, r)
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(shown)
			}
			return printAssessments(cmd.OutOrStdout(), groupID, len(results), shown)
		},
	}
	cmd.Flags().UintVar(&groupID, "group", 0, "group id")
	cmd.Flags().StringVar(&minLevel, "min-level", string(models.RiskLow), "only print students at or above this level")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func printAssessments(out io.Writer, groupID uint, assessed int, rows []*dto.RiskAssessmentResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STUDENT\tSCORE\tLEVEL\tATTENDANCE\tAVG GRADE\tMISSED")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%d\t%s\t%.1f%%\t%.1f\t%d\n",
			r.StudentID, r.RiskScore, r.RiskLevel,
			r.Metrics.AttendanceRate, r.Metrics.AverageGrade, r.Metrics.MissedAssignments)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "group %d: %d assessed, %d shown\n", groupID, assessed, len(rows))
	return err
}
