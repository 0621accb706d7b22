// Package cli implements the botscript command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands run against, injected by the composition root.
var (
	compilerService driving.CompilerPass
	registryService driving.CrawlRegistry
	sessionService  driving.SessionService
	dispatchService driving.Dispatcher
	configStore     driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "botscript",
	Short: "Dialog script engine for conversational bots",
	Long: `botscript compiles and executes BASIC-style dialog scripts.

The compile pass registers external resources (websites, knowledge
bases) for asynchronous ingestion; the runtime dispatches keywords
against live conversation sessions once resources are crawled.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Services bundles everything the commands need.
type Services struct {
	Compiler   driving.CompilerPass
	Registry   driving.CrawlRegistry
	Sessions   driving.SessionService
	Dispatcher driving.Dispatcher
	Config     driven.ConfigStore
}

// SetServices injects service implementations into the command tree.
func SetServices(s Services) {
	compilerService = s.Compiler
	registryService = s.Registry
	sessionService = s.Sessions
	dispatchService = s.Dispatcher
	configStore = s.Config
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
