package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pursuit/internal/application/projections"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every contact, interview and referral as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := projections.QueryExport(context.Background(), projections.ExportDeps{
			ContactStore:   contacts,
			InterviewStore: intervs,
			ReferralStore:  referrals,
		})
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportOutput, err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
}
