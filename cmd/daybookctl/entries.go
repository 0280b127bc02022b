package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	entriesCmd := &cobra.Command{Use: "entries", Short: "Diary entry operations"}

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := httpClient().R().Get("/api/entries")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	entriesCmd.AddCommand(listCmd)

	// add
	var date, text string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" || text == "" {
				return fmt.Errorf("--date and --text required")
			}
			resp, err := httpClient().R().
				SetBody(map[string]string{"date": date, "text": text}).
				Post("/api/entries")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	addCmd.Flags().StringVarP(&date, "date", "d", "", "Entry date yyyyMMdd (required)")
	addCmd.Flags().StringVarP(&text, "text", "t", "", "Entry text (required)")
	_ = addCmd.MarkFlagRequired("date")
	_ = addCmd.MarkFlagRequired("text")
	entriesCmd.AddCommand(addCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an entry by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := httpClient().R().Delete("/api/entries/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.Status())
			return nil
		},
	}
	entriesCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(entriesCmd)
}
