package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dialogue-labs/botscript/internal/adapters/driven/channels"
	"github.com/dialogue-labs/botscript/internal/adapters/driven/config/file"
	gatewaymem "github.com/dialogue-labs/botscript/internal/adapters/driven/gateway/memory"
	searchmem "github.com/dialogue-labs/botscript/internal/adapters/driven/search/memory"
	storagemem "github.com/dialogue-labs/botscript/internal/adapters/driven/storage/memory"
	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/core/services"
)

// testServices wires the full command tree against in-memory adapters
// and restores the previous wiring on cleanup.
type testServices struct {
	registry *services.CrawlRegistryService
	manager  *services.SessionManager
	mail     *gatewaymem.MailGateway
	messages *gatewaymem.MessageGateway
	search   *searchmem.Engine
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	oldCompiler := compilerService
	oldRegistry := registryService
	oldSessions := sessionService
	oldDispatch := dispatchService
	oldConfig := configStore

	crawlStore := storagemem.NewCrawlRecordStore()
	sessionStore := storagemem.NewSessionStore()
	registry := services.NewCrawlRegistryService(crawlStore)
	manager := services.NewSessionManager(sessionStore, registry)

	ts := &testServices{
		registry: registry,
		manager:  manager,
		mail:     gatewaymem.NewMailGateway(),
		messages: gatewaymem.NewMessageGateway(),
		search:   searchmem.NewEngine(),
	}

	var out bytes.Buffer
	dispatcher := services.NewKeywordDispatcher(
		services.DispatcherConfig{},
		manager,
		sessionStore,
		ts.mail,
		ts.messages,
		ts.search,
		nil,
		[]driven.ChannelAdapter{
			channels.NewWebChat(&out),
			channels.NewWhatsApp(&out),
			channels.NewTextSMS(&out),
		},
	)

	config, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	SetServices(Services{
		Compiler:   services.NewScriptCompiler(registry),
		Registry:   registry,
		Sessions:   manager,
		Dispatcher: dispatcher,
		Config:     config,
	})

	t.Cleanup(func() {
		compilerService = oldCompiler
		registryService = oldRegistry
		sessionService = oldSessions
		dispatchService = oldDispatch
		configStore = oldConfig
	})

	return ts
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		// Flag values persist across executions; reset them.
		execSession = ""
		execChannel = string(domain.ChannelWebChat)
		verboseFlag = false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
