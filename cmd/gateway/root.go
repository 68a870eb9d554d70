package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Voidxp Gateway - AI provider routing and guest admission",
	Long: `Voidxp Gateway is an HTTP gateway for AI model traffic.

It provides:
  - Declarative provider routing (operation + tier to provider:model)
  - Daily guest quotas with day-boundary reset
  - User registration, login, and anonymous sessions
  - Web-search and file-attachment context enrichment
  - Usage analytics and Prometheus metrics`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
