package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-dss/internal/dto"
	"github.com/noah-isme/sma-timetable-dss/internal/planner"
	appErrors "github.com/noah-isme/sma-timetable-dss/pkg/errors"
	"github.com/noah-isme/sma-timetable-dss/pkg/storage"
)

type exportFixture struct {
	planner  *PlannerService
	exports  *ExportService
	metrics  *MetricsService
	proposal string
}

func newExportFixture(t *testing.T) exportFixture {
	t.Helper()
	metrics := NewMetricsService()
	plannerSvc := NewPlannerService(planner.NewEngine(), nil, metrics, nil, zap.NewNop(), PlannerConfig{ProposalTTL: time.Hour})
	resp, err := plannerSvc.Generate(context.Background(), dto.FromConstraints(planner.DefaultConstraints()))
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	exports := NewExportService(plannerSvc, store, signer, metrics, ExportConfig{APIPrefix: "/api/v1/"}, zap.NewNop(), nil, nil)

	return exportFixture{planner: plannerSvc, exports: exports, metrics: metrics, proposal: resp.ProposalID}
}

func TestExportServiceExportCSV(t *testing.T) {
	fx := newExportFixture(t)

	res, err := fx.exports.Export(context.Background(), dto.ExportOptionRequest{ProposalID: fx.proposal, OptionID: "a", Format: "CSV"})
	require.NoError(t, err)
	assert.Equal(t, "csv", res.Format)
	assert.Equal(t, fx.proposal+"/option-a.csv", res.Filename)
	assert.True(t, strings.HasPrefix(res.URL, "/api/v1/planner/exports/"))

	token := strings.TrimPrefix(res.URL, "/api/v1/planner/exports/")
	file, name, err := fx.exports.Open(context.Background(), token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, res.Filename, name)

	body, err := io.ReadAll(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Period,Monday,Tuesday,Wednesday,Thursday,Friday", strings.TrimSpace(lines[0]))
	assert.Equal(t, uint64(1), fx.metrics.Snapshot().ExportsTotal)
}

func TestExportServiceExportPDF(t *testing.T) {
	fx := newExportFixture(t)

	res, err := fx.exports.Export(context.Background(), dto.ExportOptionRequest{ProposalID: fx.proposal, OptionID: "C", Format: "pdf"})
	require.NoError(t, err)

	token := strings.TrimPrefix(res.URL, "/api/v1/planner/exports/")
	file, _, err := fx.exports.Open(context.Background(), token)
	require.NoError(t, err)
	defer file.Close()
	head := make([]byte, 5)
	_, err = io.ReadFull(file, head)
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("%PDF-"), head))
}

func TestExportServiceRejectsBadRequests(t *testing.T) {
	fx := newExportFixture(t)

	_, err := fx.exports.Export(context.Background(), dto.ExportOptionRequest{ProposalID: fx.proposal, OptionID: "A", Format: "xlsx"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = fx.exports.Export(context.Background(), dto.ExportOptionRequest{ProposalID: "unknown", OptionID: "A", Format: "csv"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestExportServiceOpenRejectsForgedToken(t *testing.T) {
	fx := newExportFixture(t)

	_, _, err := fx.exports.Open(context.Background(), "not-a-token")
	assert.True(t, errors.Is(err, appErrors.ErrExpired))
}

func TestExportServiceCleanupKeepsFreshFiles(t *testing.T) {
	fx := newExportFixture(t)
	_, err := fx.exports.Export(context.Background(), dto.ExportOptionRequest{ProposalID: fx.proposal, OptionID: "B", Format: "csv"})
	require.NoError(t, err)

	removed, err := fx.exports.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestOptionGridPlacesCellsByPeriodAndDay(t *testing.T) {
	opt := planner.Option{
		ID:    "A",
		Name:  "Balanced",
		Score: 90,
		Level: planner.LevelExcellent,
		Schedule: planner.Schedule{
			{Day: "Monday", Slots: []planner.Slot{
				planner.Filled(planner.Cell{Subject: "Mathematics", Code: "MA101", Room: "101", Color: "#3b82f6"}),
				planner.Absent(),
			}},
		},
		Unplaced: []planner.Token{{Subject: "Art", Code: "AR101", Teacher: "T. Mana"}},
	}

	grid := OptionGrid(opt, []string{"Monday", "Tuesday"}, []string{"P1", "P2"})
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "MA101 Mathematics (101)", grid.Rows[0].Cells[0].Text)
	assert.Equal(t, "#3b82f6", grid.Rows[0].Cells[0].Fill)
	assert.Empty(t, grid.Rows[0].Cells[1].Text)
	assert.Empty(t, grid.Rows[1].Cells[0].Text)
	assert.Contains(t, grid.Notes, "1 period(s) unplaced")
	assert.Contains(t, grid.Title, "Option A")
}
