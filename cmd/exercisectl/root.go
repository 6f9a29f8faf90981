package main

import (
	"net/http"
	"os"
	"time"

	"golang-exercisetracker/client"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

var apiURL string

var rootCmd = &cobra.Command{
	Use:           "exercisectl",
	Short:         "Exercise tracker CLI",
	Long:          "Command line interface for creating users and logging exercises against the exercise tracker API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURLFromEnv(), "base URL of the exercise tracker API")
}

// apiURLFromEnv returns $EXERCISE_API_URL, or the local default.
func apiURLFromEnv() string {
	if v := os.Getenv("EXERCISE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

func newClient() *client.Client {
	return client.New(apiURL, &http.Client{Timeout: 15 * time.Second})
}
