package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/mod/semver"
)

func TestVersionIsSemantic(t *testing.T) {
	assert.Truef(t, semver.IsValid(Version), "Version %s is not a valid semantic version", Version)
}

func TestBuildInfoIsSet(t *testing.T) {
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, BuildTime)
	assert.False(t, StartTime.IsZero())
}
