package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDocumentedDefaults(t *testing.T) {
	server, run, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, server.Port)
	assert.Equal(t, "info", server.LogLevel)
	assert.Equal(t, "json", server.LogFormat)

	assert.Equal(t, "SmartRandom", run.Strategy)
	assert.Equal(t, "SimulatedAnnealing", run.Optimizer)
	assert.Equal(t, 10, run.NumPreferences)
	assert.True(t, run.CompletePreferences)
	assert.Equal(t, 100, run.NumCourses)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCHEDULE_NUM_COURSES", "42")

	server, run, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, server.Port)
	assert.Equal(t, 42, run.NumCourses)
}
