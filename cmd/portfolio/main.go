package main

import (
	"fmt"
	"os"

	"github.com/kpruthvi/portfolio/internal/logging"
	"github.com/kpruthvi/portfolio/internal/version"

	"github.com/spf13/cobra"
)

// logger writes to stdout until initLogger adds the rotated file on Execute
var logger = logging.GetGlobalLogger()

func initLogger() {
	// Initialize logger configuration
	logConfig := &logging.LogConfig{
		Level:      logging.LevelInfo,
		File:       "~/.portfolio/cli.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}

	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site tools",
	Long: `Tools for the portfolio site: send a message through the contact relay
and manage the saved colour theme.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Portfolio version: %s", version.Info())
	},
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(versionCmd)

	contactCmd.AddCommand(sendCmd)
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeToggleCmd)

	sendCmd.Flags().String("first", "", "First name")
	sendCmd.Flags().String("last", "", "Last name")
	sendCmd.Flags().String("email", "", "Reply-to email address")
	sendCmd.Flags().String("message", "", "Message body")
	sendCmd.Flags().String("token", "", "Verification token issued by the challenge widget")
	sendCmd.Flags().String("endpoint", defaultEndpoint, "Contact relay URL")
	sendCmd.Flags().Duration("timeout", defaultTimeout, "Request timeout")
	sendCmd.MarkFlagRequired("first")
	sendCmd.MarkFlagRequired("email")
	sendCmd.MarkFlagRequired("message")
}

func main() {
	defer func() { logger.Close() }()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}
