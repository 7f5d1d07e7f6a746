package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pursuit/internal/application/projections"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List follow-up actions that are due right now",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := projections.QueryGetDueActions(context.Background(), projections.GetDueActionsDeps{
			ContactStore:   contacts,
			InterviewStore: intervs,
			ReferralStore:  referrals,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if len(result.Candidates) == 0 {
			fmt.Println("Nothing due.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "URGENCY\tACTION\tOVERDUE\tWHY")
		for _, c := range result.Candidates {
			action := c.Action
			if c.Subkind != "" {
				action += " (" + c.Subkind + ")"
			}
			fmt.Fprintf(w, "%s\t%s\t%dh\t%s\n", c.Urgency, action, c.OverdueHours, c.DueReason)
		}
		return w.Flush()
	},
}
