package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute_Version(t *testing.T) {
	var out bytes.Buffer
	code := Execute(RolePlayers, []string{"--version"}, &out)
	assert.Equal(t, 0, code)
	assert.Equal(t, "players "+Version+"\n", out.String())
}

func TestExecute_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	code := Execute(RoleSports, []string{"--nope"}, &out)
	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "unknown flag")
}

func TestExecute_MissingConfigFile(t *testing.T) {
	var out bytes.Buffer
	code := Execute(RoleSports, []string{"-c", "/does/not/exist.yaml"}, &out)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(out.String(), "failed to load config:"), out.String())
}
