package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	flagBackend string
	flagAPIURL  string
	flagDataDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskflow",
		Short:   "TaskFlow - personal task tracking from the terminal",
		Version: Version,
	}

	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", envOr("TASKFLOW_BACKEND", "local"), "storage backend (local, remote)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", envOr("TASKFLOW_API_URL", "http://localhost:5000/api"), "API base URL for the remote backend")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", envOr("TASKFLOW_DATA_DIR", defaultDataDir()), "local data directory")

	// Add subcommands
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(undoneCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(themeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskflow"
	}
	return home + "/.taskflow"
}
