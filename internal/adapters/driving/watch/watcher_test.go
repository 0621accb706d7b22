package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogue-labs/botscript/internal/adapters/driven/storage/memory"
	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/core/services"
)

type compileLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *compileLog) record(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path)
}

func (l *compileLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.paths)
}

func TestWatcher_CompilesExistingScripts(t *testing.T) {
	dir := t.TempDir()
	script := `USE WEBSITE "https://docs.example.com"`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bot.bas"), []byte(script), 0600))

	registry := services.NewCrawlRegistryService(memory.NewCrawlRecordStore())
	watcher := NewWatcher(services.NewScriptCompiler(registry))

	done := make(chan struct{}, 1)
	watcher.OnCompile = func(_ string, _ *driving.CompileResult, _ error) {
		select {
		case done <- struct{}{}:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- watcher.Run(ctx, dir) }()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("startup compile did not happen")
	}

	record, err := registry.Lookup(ctx, "https://docs.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CrawlPending, record.Status)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestWatcher_RecompilesOnWrite(t *testing.T) {
	dir := t.TempDir()

	registry := services.NewCrawlRegistryService(memory.NewCrawlRecordStore())
	watcher := NewWatcher(services.NewScriptCompiler(registry))

	log := &compileLog{}
	watcher.OnCompile = func(path string, _ *driving.CompileResult, _ error) {
		log.record(path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- watcher.Run(ctx, dir) }()

	// Give the watcher a moment to install before writing.
	time.Sleep(200 * time.Millisecond)

	script := `USE KB "product-faq"`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bot.bas"), []byte(script), 0600))

	require.Eventually(t, func() bool {
		_, err := registry.Lookup(ctx, "product-faq")
		return err == nil
	}, 3*time.Second, 50*time.Millisecond)

	assert.GreaterOrEqual(t, log.count(), 1)
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte(`USE WEBSITE "https://docs.example.com"`), 0600))

	registry := services.NewCrawlRegistryService(memory.NewCrawlRecordStore())
	watcher := NewWatcher(services.NewScriptCompiler(registry))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	err := watcher.Run(ctx, dir)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, lookupErr := registry.Lookup(context.Background(), "https://docs.example.com")
	assert.ErrorIs(t, lookupErr, domain.ErrNotFound)
}
