package cli

import (
	"bytes"
	"testing"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/pkg/listkeeper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LISTKEEPER_CONFIG", "")

	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand()
		require.NotNil(t, cmd)
		assert.Equal(t, "listkeeper", cmd.Use)
		assert.Equal(t, listkeeper.Version, cmd.Version)
	})

	t.Run("has expected subcommands", func(t *testing.T) {
		cmd := NewRootCommand()

		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		assert.Subset(t, names, []string{"seed", "version"})
	})

	t.Run("has expected flags", func(t *testing.T) {
		cmd := NewRootCommand()

		for _, name := range []string{"config", "url", "debug", "verbose"} {
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
		}
	})

	t.Run("version output", func(t *testing.T) {
		cmd := NewRootCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"version"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "listkeeper "+listkeeper.BuildInfo.Version)
	})
}

func TestSeedCommand(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LISTKEEPER_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	run := func(args ...string) (string, error) {
		cmd := NewRootCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	t.Run("refused in production", func(t *testing.T) {
		t.Setenv("STATE", "prod")

		_, err := run("seed", "--url", "postgres://localhost:1/none")
		require.Error(t, err)
		assert.True(t, domain.IsDenied(err))
	})

	t.Run("requires a database url", func(t *testing.T) {
		t.Setenv("STATE", "dev")

		_, err := run("seed")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database URL is required")
	})

	t.Run("bad fixture file", func(t *testing.T) {
		t.Setenv("STATE", "dev")
		path := writeFile(t, t.TempDir(), "listkeeper.yaml", "seed:\n  fixtures: /does/not/exist.yaml\n")

		_, err := run("seed", "--config", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read fixtures")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		t.Setenv("STATE", "dev")

		_, err := run("seed", "extra")
		assert.Error(t, err)
	})
}
