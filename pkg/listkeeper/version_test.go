package listkeeper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullVersionInfo(t *testing.T) {
	saved := BuildInfo
	t.Cleanup(func() { BuildInfo = saved })

	info := FullVersionInfo()
	assert.Contains(t, info, "listkeeper "+Version)
	assert.NotContains(t, info, "Git Commit")

	SetBuildInfo("abc123", "2026-10-01", "")
	info = FullVersionInfo()
	assert.Contains(t, info, "Git Commit: abc123")
	assert.Contains(t, info, "Build Date: 2026-10-01")
	assert.Contains(t, info, "Go Version: "+saved.GoVersion)
	assert.Equal(t, "listkeeper "+Version, VersionInfo())
}
