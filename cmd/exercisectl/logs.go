package main

import (
	"fmt"

	"golang-exercisetracker/client"

	"github.com/spf13/cobra"
)

func init() {
	var query client.LogQuery

	logsCmd := &cobra.Command{
		Use:   "logs <userId>",
		Short: "Show a user's exercise log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newClient().GetLog(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d exercises)\n", log.Username, log.Count)
			rows := make([][]interface{}, 0, len(log.Log))
			for _, e := range log.Log {
				rows = append(rows, []interface{}{e.Date, e.Description, float64(e.Duration)})
			}
			renderTable(cmd.OutOrStdout(), []string{"Date", "Description", "Duration"}, rows)
			return nil
		},
	}
	logsCmd.Flags().StringVar(&query.From, "from", "", "earliest date to include")
	logsCmd.Flags().StringVar(&query.To, "to", "", "latest date to include")
	logsCmd.Flags().IntVar(&query.Limit, "limit", 0, "maximum number of entries")

	rootCmd.AddCommand(logsCmd)
}
