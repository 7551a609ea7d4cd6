package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalmiddleware "github.com/noah-isme/sma-timetable-dss/internal/middleware"
	"github.com/noah-isme/sma-timetable-dss/internal/models"
	"github.com/noah-isme/sma-timetable-dss/internal/service"
	"github.com/noah-isme/sma-timetable-dss/pkg/config"
	"github.com/noah-isme/sma-timetable-dss/pkg/jobs"
)

type patternRepo struct {
	patterns []string
}

func (r *patternRepo) Get(context.Context, string, interface{}) error { return nil }

func (r *patternRepo) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (r *patternRepo) DeleteByPattern(_ context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return nil
}

func guardedRouter(cfg config.JWTConfig, caller *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/planner", plannerGuards(cfg)...)
	g.POST("/options", func(c *gin.Context) {
		*caller = ""
		if v, ok := c.Get(internalmiddleware.ContextUserKey); ok {
			*caller = v.(*models.JWTClaims).UserID
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func post(r http.Handler, token string) int {
	req := httptest.NewRequest(http.MethodPost, "/planner/options", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestPlannerGuardsAttributeCallersWhenAuthOptional(t *testing.T) {
	cfg := config.JWTConfig{Secret: "dev_secret"}
	token, err := service.NewTokenService(cfg.Secret, "").IssueToken("planner-7", models.RoleTeacher, time.Hour)
	require.NoError(t, err)

	var caller string
	r := guardedRouter(cfg, &caller)

	assert.Equal(t, http.StatusNoContent, post(r, token))
	assert.Equal(t, "planner-7", caller)

	assert.Equal(t, http.StatusNoContent, post(r, ""))
	assert.Empty(t, caller)

	assert.Equal(t, http.StatusNoContent, post(r, "garbage"))
	assert.Empty(t, caller)
}

func TestPlannerGuardsEnforceRolesWhenAuthRequired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "dev_secret", RequireAuth: true}
	tokens := service.NewTokenService(cfg.Secret, "")
	teacher, err := tokens.IssueToken("t-1", models.RoleTeacher, time.Hour)
	require.NoError(t, err)
	planner, err := tokens.IssueToken("p-1", models.RolePlanner, time.Hour)
	require.NoError(t, err)

	var caller string
	r := guardedRouter(cfg, &caller)

	assert.Equal(t, http.StatusUnauthorized, post(r, ""))
	assert.Equal(t, http.StatusForbidden, post(r, teacher))
	assert.Equal(t, http.StatusNoContent, post(r, planner))
	assert.Equal(t, "p-1", caller)
}

func TestMaintenanceHandlerFlushesOptionCache(t *testing.T) {
	repo := &patternRepo{}
	cache := service.NewCacheService(repo, nil, "planner", time.Minute, nil, true)
	handle := maintenanceHandler(nil, nil, cache)

	require.NoError(t, handle(context.Background(), jobs.Job{Type: jobCacheFlush}))
	assert.Equal(t, []string{"planner:*"}, repo.patterns)

	assert.Error(t, handle(context.Background(), jobs.Job{Type: "reindex"}))
}

func TestMaintenanceHandlerSkipsFlushWhenCacheDisabled(t *testing.T) {
	repo := &patternRepo{}
	handle := maintenanceHandler(nil, nil, service.NewCacheService(repo, nil, "planner", time.Minute, nil, false))

	require.NoError(t, handle(context.Background(), jobs.Job{Type: jobCacheFlush}))
	assert.Empty(t, repo.patterns)
}
