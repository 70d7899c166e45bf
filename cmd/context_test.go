package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karolswdev/jiramcp/internal/config"
)

func TestContextShowRunE(t *testing.T) {
	cp := new(MockConfigProvider)
	cp.On("LoadContext").Return("Team uses Scrum.", nil).Once()
	cp.On("LoadContext").Return("  \n", nil).Once()
	cp.On("LoadContext").Return("", config.ErrContextRead).Once()

	var out bytes.Buffer
	require.NoError(t, contextShowRunE(cp, &out))
	assert.Equal(t, "Team uses Scrum.\n", out.String())

	out.Reset()
	require.NoError(t, contextShowRunE(cp, &out))
	assert.Equal(t, "Context file is empty or does not exist yet.\n", out.String())

	assert.ErrorIs(t, contextShowRunE(cp, &out), config.ErrContextRead)
}

func TestContextAddRunE(t *testing.T) {
	dir := t.TempDir()
	cp := new(MockConfigProvider)
	cp.On("EnsureConfigDir").Return(dir, nil)
	var out bytes.Buffer

	require.NoError(t, contextAddRunE(cp, "Backend owns WEB.", &out))
	require.NoError(t, contextAddRunE(cp, "Ops owns OPS.", &out))

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultContextFileName))
	require.NoError(t, err)
	assert.Equal(t, "Backend owns WEB.\nOps owns OPS.\n", string(data))
	assert.Contains(t, out.String(), "Entry added to context file.")

	assert.Error(t, contextAddRunE(cp, "   ", &out))
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", editorCommand())
}
