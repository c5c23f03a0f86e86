package cmd

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	if strings.Contains(output, "version: unknown") {
		return
	}

	assert.Contains(t, output, "ngshift version")
	assert.Contains(t, output, "go version")
	assert.Contains(t, output, "java grammar")
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	cmd := newVersionCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	require.Error(t, cmd.Execute())
}

func TestBuildVersions(t *testing.T) {
	tests := []struct {
		name        string
		info        *debug.BuildInfo
		wantTool    string
		wantGrammar string
	}{
		{
			name:        "empty",
			info:        &debug.BuildInfo{},
			wantTool:    "unknown",
			wantGrammar: "unknown",
		},
		{
			name: "versions recorded",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.0"},
				Deps: []*debug.Module{
					{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
					{Path: grammarModule, Version: "v0.0.0-20240827094217-dd81d9e9be82"},
				},
			},
			wantTool:    "v1.2.0",
			wantGrammar: "v0.0.0-20240827094217-dd81d9e9be82",
		},
		{
			name: "replaced grammar",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Deps: []*debug.Module{
					{Path: grammarModule, Version: "v0.1.0", Replace: &debug.Module{Path: "../go-tree-sitter"}},
				},
			},
			wantTool:    "(devel)",
			wantGrammar: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, grammar := buildVersions(tt.info)
			assert.Equal(t, tt.wantTool, tool)
			assert.Equal(t, tt.wantGrammar, grammar)
		})
	}
}
