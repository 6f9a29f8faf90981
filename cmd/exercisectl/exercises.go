package main

import (
	"golang-exercisetracker/client"

	"github.com/spf13/cobra"
)

func init() {
	var input client.ExerciseInput

	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "Log exercises",
	}

	addCmd := &cobra.Command{
		Use:   "add <userId>",
		Short: "Add an exercise to a user's log",
		Long:  "Add an exercise to a user's log. The date defaults to today on the server.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newClient().AddExercise(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}

			renderTable(cmd.OutOrStdout(),
				[]string{"User", "Description", "Duration", "Date"},
				[][]interface{}{{out.Username, out.Description, float64(out.Duration), out.Date}},
			)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&input.Description, "description", "d", "", "what was done")
	addCmd.Flags().StringVarP(&input.Duration, "duration", "m", "", "duration in minutes")
	addCmd.Flags().StringVar(&input.Date, "date", "", "date of the exercise, e.g. 2024-05-01")
	_ = addCmd.MarkFlagRequired("description")
	_ = addCmd.MarkFlagRequired("duration")

	exercisesCmd.AddCommand(addCmd)
	rootCmd.AddCommand(exercisesCmd)
}
