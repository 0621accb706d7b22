// Package watch recompiles dialog scripts when they change on disk, so
// resource declarations added to a script register without an explicit
// compile run.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// scriptExt is the dialog script file extension.
const scriptExt = ".bas"

// Watcher recompiles scripts in a directory as they are created or
// modified.
type Watcher struct {
	compiler driving.CompilerPass

	// OnCompile, if set, receives the outcome of every compile triggered
	// by a file event.
	OnCompile func(path string, result *driving.CompileResult, err error)
}

// NewWatcher creates a watcher driving the given compile pass.
func NewWatcher(compiler driving.CompilerPass) *Watcher {
	return &Watcher{compiler: compiler}
}

// Run watches dir until the context is cancelled. Existing scripts are
// compiled once at startup; afterwards each create or write event
// triggers a recompile of the touched script.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	if err := w.compileExisting(ctx, dir); err != nil {
		return err
	}

	logger.Info("Watching %s for script changes", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), scriptExt) {
				continue
			}
			w.compileFile(ctx, event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watch error: %v", err)
		}
	}
}

// compileExisting compiles every script already present in dir.
func (w *Watcher) compileExisting(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading script directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), scriptExt) {
			continue
		}
		w.compileFile(ctx, filepath.Join(dir, entry.Name()))
	}
	return nil
}

// compileFile reads and compiles one script, reporting the outcome.
func (w *Watcher) compileFile(ctx context.Context, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Reading %s: %v", path, err)
		w.notify(path, nil, err)
		return
	}

	result, err := w.compiler.Compile(ctx, string(source))
	if err != nil {
		logger.Error("Compiling %s: %v", path, err)
	} else {
		logger.Info("Compiled %s: %d resource(s) registered", path, len(result.Registered))
	}
	w.notify(path, result, err)
}

func (w *Watcher) notify(path string, result *driving.CompileResult, err error) {
	if w.OnCompile != nil {
		w.OnCompile(path, result, err)
	}
}
