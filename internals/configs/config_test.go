package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("AKADEMIKU_TEST_VAR", "nilai")
	assert.Equal(t, "nilai", GetEnv("AKADEMIKU_TEST_VAR"))

	// empty is returned as-is, the warning is log-only
	assert.Equal(t, "", GetEnv("AKADEMIKU_TEST_MISSING"))
}

func TestGetEnvOr(t *testing.T) {
	t.Setenv("AKADEMIKU_TEST_VAR", "nilai")
	assert.Equal(t, "nilai", GetEnvOr("AKADEMIKU_TEST_VAR", "fallback"))
	assert.Equal(t, "fallback", GetEnvOr("AKADEMIKU_TEST_MISSING", "fallback"))
}
