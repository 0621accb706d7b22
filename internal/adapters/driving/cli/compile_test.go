package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

func TestCompileCmd_Use(t *testing.T) {
	assert.Equal(t, "compile [script.bas]", compileCmd.Use)
}

func TestCompileCmd_RequiresScriptArg(t *testing.T) {
	_, err := execute(t, "compile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestCompileCmd_RegistersResources(t *testing.T) {
	ts := setupTestServices(t)

	script := `REM support bot
USE WEBSITE "https://docs.example.com"
USE KB "product-faq"
`
	path := filepath.Join(t.TempDir(), "bot.bas")
	require.NoError(t, os.WriteFile(path, []byte(script), 0600))

	out, err := execute(t, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Registered 2 resource(s)")
	assert.Contains(t, out, "https://docs.example.com")
	assert.Contains(t, out, "product-faq")

	record, err := ts.registry.Lookup(context.Background(), "https://docs.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CrawlPending, record.Status)
}

func TestCompileCmd_NoResources(t *testing.T) {
	setupTestServices(t)

	path := filepath.Join(t.TempDir(), "bot.bas")
	require.NoError(t, os.WriteFile(path, []byte(`TALK "Hello"`), 0600))

	out, err := execute(t, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No new resources registered.")
}

func TestCompileCmd_MalformedScript(t *testing.T) {
	setupTestServices(t)

	path := filepath.Join(t.TempDir(), "bot.bas")
	require.NoError(t, os.WriteFile(path, []byte(`USE WEBSITE`), 0600))

	_, err := execute(t, "compile", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestCompileCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "compile", filepath.Join(t.TempDir(), "missing.bas"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading script")
}
