package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate", "reconcile"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestMigrateCommand_RejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", []string{"migrate"}},
		{"unknown command", []string{"migrate", "sideways"}},
		{"too many", []string{"migrate", "up", "down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetArgs(tt.args)
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)

			assert.Error(t, root.Execute())
		})
	}
}
