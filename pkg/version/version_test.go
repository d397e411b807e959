package version_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/locmeta/pkg/version"
)

func TestString(t *testing.T) {
	version.InitBinaryVersion()

	got := version.String()

	assert.True(t, strings.HasPrefix(got, "locmeta "))
	assert.Contains(t, got, "commit: "+version.Commit)
	assert.Contains(t, got, "built: "+version.Date)
	assert.NotEmpty(t, version.Version)
}
