package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBuildInfo swaps the stamped build vars and returns a restore func.
func setBuildInfo(sha, date string) func() {
	oldSHA, oldDate := buildSHA, buildDate
	buildSHA, buildDate = sha, date
	return func() {
		buildSHA, buildDate = oldSHA, oldDate
	}
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_DefaultsToDev(t *testing.T) {
	defer setBuildInfo("", "")()

	out, err := executeCLI("version")

	require.NoError(t, err)
	assert.Contains(t, out, "grans version dev")
}

func TestVersionCmd_UsesStampedBuildInfo(t *testing.T) {
	defer setBuildInfo("abc1234", "2026-09-01")()

	out, err := executeCLI("version")

	require.NoError(t, err)
	assert.Contains(t, out, "grans version abc1234 (built 2026-09-01)")
}

func TestVersionString_SHAOnly(t *testing.T) {
	defer setBuildInfo("abc1234", "")()

	assert.Equal(t, "abc1234", versionString())
}

func TestVersionString_DateOnly(t *testing.T) {
	defer setBuildInfo("", "2026-09-01")()

	assert.Equal(t, "dev (built 2026-09-01)", versionString())
}
