package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	insightsCmd := &cobra.Command{Use: "insights", Short: "AI insight operations"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current insight snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := httpClient().R().Get("/api/insights")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	insightsCmd.AddCommand(showCmd)

	var force bool
	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Run the daily analysis now",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := httpClient().R()
			if force {
				req.SetQueryParam("force", "true")
			}
			resp, err := req.Post("/api/insights/refresh")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	refreshCmd.Flags().BoolVarP(&force, "force", "f", false, "Bypass the already-ran-today check")
	insightsCmd.AddCommand(refreshCmd)

	messageCmd := &cobra.Command{
		Use:   "message",
		Short: "Fetch today's encouragement line",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := httpClient().R().Get("/api/insights/daily-message")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	insightsCmd.AddCommand(messageCmd)

	rootCmd.AddCommand(insightsCmd)
}
