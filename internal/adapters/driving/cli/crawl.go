package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Inspect and transition crawl records",
	Long: `Crawl records track ingestion of registered resources. The external
crawler normally reports completion or failure through these commands;
they are also useful for local testing and recovery.`,
}

var crawlListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered resources and their crawl status",
	Args:  cobra.NoArgs,
	RunE:  runCrawlList,
}

var crawlCompleteCmd = &cobra.Command{
	Use:   "complete [identifier] [collection-id]",
	Short: "Mark a resource as crawled with its collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCrawlComplete,
}

var crawlFailCmd = &cobra.Command{
	Use:   "fail [identifier]",
	Short: "Mark a resource's ingestion as failed",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrawlFail,
}

var crawlResetCmd = &cobra.Command{
	Use:   "reset [identifier]",
	Short: "Return a resource to pending for re-ingestion",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrawlReset,
}

func init() {
	crawlCmd.AddCommand(crawlListCmd)
	crawlCmd.AddCommand(crawlCompleteCmd)
	crawlCmd.AddCommand(crawlFailCmd)
	crawlCmd.AddCommand(crawlResetCmd)
	rootCmd.AddCommand(crawlCmd)
}

func runCrawlList(cmd *cobra.Command, _ []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	records, err := registryService.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing crawl records: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No resources registered.")
		return nil
	}

	for _, record := range records {
		line := fmt.Sprintf("  [%s] %s (%s)", record.Status, record.Identifier, record.Kind)
		if record.CollectionID != "" {
			line += " -> " + record.CollectionID
		}
		cmd.Println(line)
	}
	return nil
}

func runCrawlComplete(cmd *cobra.Command, args []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	if err := registryService.MarkCompleted(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("marking completed: %w", err)
	}
	cmd.Printf("Resource %s marked as crawled (collection %s)\n", args[0], args[1])
	return nil
}

func runCrawlFail(cmd *cobra.Command, args []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	if err := registryService.MarkFailed(context.Background(), args[0]); err != nil {
		return fmt.Errorf("marking failed: %w", err)
	}
	cmd.Printf("Resource %s marked as failed\n", args[0])
	return nil
}

func runCrawlReset(cmd *cobra.Command, args []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	if err := registryService.Reset(context.Background(), args[0]); err != nil {
		return fmt.Errorf("resetting: %w", err)
	}
	cmd.Printf("Resource %s reset to pending\n", args[0])
	return nil
}
