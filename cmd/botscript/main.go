// Command botscript is the dialog script engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dialogue-labs/botscript/internal/adapters/driven/channels"
	"github.com/dialogue-labs/botscript/internal/adapters/driven/config/file"
	gatewaymem "github.com/dialogue-labs/botscript/internal/adapters/driven/gateway/memory"
	"github.com/dialogue-labs/botscript/internal/adapters/driven/gateway/throttle"
	"github.com/dialogue-labs/botscript/internal/adapters/driven/qrcode"
	searchmem "github.com/dialogue-labs/botscript/internal/adapters/driven/search/memory"
	"github.com/dialogue-labs/botscript/internal/adapters/driven/storage/sqlite"
	"github.com/dialogue-labs/botscript/internal/adapters/driving/cli"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	images, err := qrcode.NewGenerator("")
	if err != nil {
		return fmt.Errorf("creating QR generator: %w", err)
	}

	registry := services.NewCrawlRegistryService(store.CrawlRecordStore())
	sessions := services.NewSessionManager(store.SessionStore(), registry)
	compiler := services.NewScriptCompiler(registry)

	// Local gateways; a deployment swaps these for provider-backed ones.
	mail := gatewaymem.NewMailGateway()
	rateLimit := config.MessagingRate()
	messages := throttle.NewMessageGateway(gatewaymem.NewMessageGateway(), float64(rateLimit), rateLimit)

	dispatcher := services.NewKeywordDispatcher(
		services.DispatcherConfig{
			DefaultProvider: config.MessagingProvider(),
			DefaultQRSize:   config.QRSize(),
			CallTimeout:     config.GatewayTimeout(),
		},
		sessions,
		store.SessionStore(),
		mail,
		messages,
		searchmem.NewEngine(),
		images,
		[]driven.ChannelAdapter{
			channels.NewWebChat(nil),
			channels.NewWhatsApp(nil),
			channels.NewTextSMS(nil),
		},
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Compiler:   compiler,
		Registry:   registry,
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Config:     config,
	})

	return cli.Execute()
}
