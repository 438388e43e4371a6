package main

import (
	"os"

	"github.com/spf13/cobra"

	"triago/internal/interfaces/cli/migrate"
	"triago/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "triago",
		Short: "Triago - helpdesk ticket triage service",
		Long:  `Triago is a helpdesk service that triages incoming tickets through an AI classifier and routes low-confidence drafts to human agents for review.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
