package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbDSN  string
	userID uint64
	seed   int64
)

var rootCmd = &cobra.Command{
	Use:           "studybot",
	Short:         "Talk to the study assistant from a terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "database DSN (defaults to DB_DSN or a local sqlite file)")
	rootCmd.PersistentFlags().Uint64Var(&userID, "user", 1, "user id the conversation is recorded for")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "response picker seed, 0 for random")
	rootCmd.AddCommand(chatCmd, analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
