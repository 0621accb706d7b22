package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [script.bas]",
	Short: "Compile a dialog script and register its resources",
	Long: `Scans a dialog script for resource-declaring keywords (USE WEBSITE,
USE KB) and registers each distinct resource for crawling. Repeated
compiles of the same script are no-ops for already-registered resources.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	if compilerService == nil {
		return errors.New("compiler service not configured")
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	result, err := compilerService.Compile(context.Background(), string(source))
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	cmd.Printf("Found %d resource declaration(s)\n", len(result.Invocations))
	if len(result.Registered) == 0 {
		cmd.Println("No new resources registered.")
		return nil
	}

	cmd.Printf("Registered %d resource(s) for crawling:\n", len(result.Registered))
	for _, identifier := range result.Registered {
		cmd.Printf("  %s\n", identifier)
	}
	return nil
}
