package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 30*time.Minute, cfg.Planner.ProposalTTL)
	assert.Equal(t, 64, cfg.Planner.MaxSubjects)
	assert.Empty(t, cfg.Planner.Rooms)
	assert.Equal(t, "./exports", cfg.Exports.StorageDir)
	assert.False(t, cfg.JWT.RequireAuth)
}

func TestLoadReadsPlannerOverrides(t *testing.T) {
	t.Setenv("PLANNER_ROOMS", "A1, A2 ,")
	t.Setenv("PLANNER_HEAVY_KEYWORDS", "physics,chemistry")
	t.Setenv("PLANNER_PROPOSAL_TTL", "bogus")
	t.Setenv("PLANNER_CACHE_TTL", "90s")
	t.Setenv("PLANNER_REQUIRE_AUTH", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2"}, cfg.Planner.Rooms)
	assert.Equal(t, []string{"physics", "chemistry"}, cfg.Planner.HeavyKeywords)
	assert.Equal(t, 30*time.Minute, cfg.Planner.ProposalTTL)
	assert.Equal(t, 90*time.Second, cfg.Planner.CacheTTL)
	assert.True(t, cfg.JWT.RequireAuth)
}
