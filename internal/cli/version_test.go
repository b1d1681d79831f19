package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommand(t *testing.T) {
	t.Run("command structure", func(t *testing.T) {
		assert.Equal(t, "version", versionCmd.Use)
		assert.Equal(t, "Show version information", versionCmd.Short)
		assert.NotNil(t, versionCmd.Run)
	})

	t.Run("writes to the command output", func(t *testing.T) {
		var out bytes.Buffer
		versionCmd.SetOut(&out)
		t.Cleanup(func() { versionCmd.SetOut(nil) })

		versionCmd.Run(versionCmd, []string{})
		assert.Contains(t, out.String(), "Go Version:")
	})
}
