// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/cmd/yamdbctl/commands"
	"github.com/taibuivan/yamdb/internal/platform/config"
)

/*
TestRootCmd_Validation covers argument checks that run before any connection is made.
*/
func TestRootCmd_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"migrate_without_database", []string{"migrate", "up"}, "database URL missing"},
		{"status_without_database", []string{"migrate", "status"}, "database URL missing"},
		{"down_bad_steps", []string{"migrate", "down", "zero"}, "not a valid number"},
		{"force_needs_version", []string{"migrate", "force"}, "accepts 1 arg(s)"},
		{"superuser_missing_flags", []string{"user", "create-superuser"}, "required flag"},
		{"set_role_arity", []string{"user", "set-role", "critic"}, "accepts 2 arg(s)"},
		{"set_role_unknown", []string{"user", "set-role", "critic", "owner"}, "set role"},
		{"superuser_without_database", []string{"user", "create-superuser", "--username", "root", "--email", "root@yamdb.local"}, "database URL missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := commands.NewRootCmd(&config.CLIConfig{MigrationPath: "./data/migrations"})
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(tt.args)

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

/*
TestRootCmd_Version verifies the version flag needs no database.
*/
func TestRootCmd_Version(t *testing.T) {
	root := commands.NewRootCmd(&config.CLIConfig{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "yamdbctl")
}
