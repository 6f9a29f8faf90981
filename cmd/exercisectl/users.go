package main

import (
	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Create and list users",
	}

	createCmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersCreate,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every user",
		Args:  cobra.NoArgs,
		RunE:  runUsersList,
	}

	usersCmd.AddCommand(createCmd, listCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	user, err := newClient().CreateUser(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderTable(cmd.OutOrStdout(), []string{"ID", "Username"}, [][]interface{}{{user.UserID, user.Username}})
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	users, err := newClient().ListUsers(cmd.Context())
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{u.UserID, u.Username})
	}
	renderTable(cmd.OutOrStdout(), []string{"ID", "Username"}, rows)
	return nil
}
