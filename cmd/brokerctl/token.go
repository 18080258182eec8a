package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atol-data/metadata-broker/pkg/config"
	"github.com/atol-data/metadata-broker/pkg/server/middleware"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage access tokens",
	Long:  `Manage broker access tokens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand (issue)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// tokenIssueCmd represents the token issue command
var tokenIssueCmd = &cobra.Command{
	Use:   "issue <login>",
	Short: "Issue an access token",
	Long: `Issue a signed access token for a login.

Requires the BROKER_TOKEN_KEY environment variable. Token lifetime comes
from the token_ttl configuration attribute.

Example:
  brokerctl token issue curator-1 --role curator
  brokerctl token issue ops --role admin`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key, err := tokenKeyFromEnv()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		roles, _ := cmd.Flags().GetStringSlice("role")

		token, err := middleware.Issue(key, args[0], roles, config.Get().TokenTTLDuration())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)

	tokenIssueCmd.Flags().StringSlice("role", nil, "role to grant (curator, admin); repeatable")
}
