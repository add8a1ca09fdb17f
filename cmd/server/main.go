// Package main is the entry point for the rpg-tables gRPC server
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-tables",
	Short: "RPG tables gRPC server",
	Long:  `rpg-tables rolls dice and resolves rolls against lookup tables for procedural content generation.`,
	PersistentPreRunE: loadDotEnv,
}

// loadDotEnv reads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func loadDotEnv(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(checkTablesCmd)
}
