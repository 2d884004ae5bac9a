package main

import (
	"context"
	"testing"

	"github.com/reconquest/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"github.com/vaneui/md/util"
)

// runCommand runs the md command with its action replaced by action.
func runCommand(t *testing.T, action cli.ActionFunc, args ...string) error {
	t.Helper()

	cmd := newCommand()
	cmd.Action = action

	return cmd.Run(context.Background(), append([]string{"md"}, args...))
}

func TestLogLevelFlag(t *testing.T) {
	tests := map[string]struct {
		level       string
		want        log.Level
		expectedErr string
	}{
		"invalid": {level: "INVALID", expectedErr: "unknown log level: INVALID"},
		"empty":   {level: "", expectedErr: "unknown log level: "},
		"lower":   {level: "debug", want: log.LevelDebug},
		"info":    {level: log.LevelInfo.String(), want: log.LevelInfo},
		"trace":   {level: log.LevelTrace.String(), want: log.LevelTrace},
		"warning": {level: log.LevelWarning.String(), want: log.LevelWarning},
		"error":   {level: log.LevelError.String(), want: log.LevelError},
		"fatal":   {level: log.LevelFatal.String(), want: log.LevelFatal},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var err error

			require.NoError(t, runCommand(t, func(ctx context.Context, cmd *cli.Command) error {
				err = util.SetLogLevel(cmd)
				return nil
			}, "--log-level", tt.level))

			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}

	log.SetLevel(log.LevelInfo)
}

func TestCommandDefaults(t *testing.T) {
	var seen *cli.Command

	require.NoError(t, runCommand(t, func(ctx context.Context, cmd *cli.Command) error {
		seen = cmd
		return nil
	}, "--log-level", "info"))

	require.NotNil(t, seen)
	assert.Equal(t, "md", seen.Name)
	assert.Equal(t, version, seen.Version)
	assert.Equal(t, util.ConfigFilePath(), seen.String("config"))
	assert.Equal(t, "browser", seen.String("mermaid-provider"))
	assert.Equal(t, []string{"mermaid", "highlight"}, seen.StringSlice("features"))
}

func TestCommandRejectsBothTitleFlags(t *testing.T) {
	called := false

	err := runCommand(t, func(ctx context.Context, cmd *cli.Command) error {
		called = true
		return nil
	}, "--title-from-h1", "--title-from-filename")

	assert.EqualError(t, err, "--title-from-h1 and --title-from-filename are mutually exclusive")
	assert.False(t, called)
}
