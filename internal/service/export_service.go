package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-dss/internal/dto"
	"github.com/noah-isme/sma-timetable-dss/internal/planner"
	appErrors "github.com/noah-isme/sma-timetable-dss/pkg/errors"
	"github.com/noah-isme/sma-timetable-dss/pkg/export"
	"github.com/noah-isme/sma-timetable-dss/pkg/storage"
)

type optionReader interface {
	GetOption(ctx context.Context, proposalID, optionID string) (*dto.OptionDetailResponse, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type gridRenderer interface {
	Render(grid export.Grid) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportService renders stored options to CSV or PDF and hands out signed download links.
type ExportService struct {
	options   optionReader
	storage   fileStorage
	renderers map[string]gridRenderer
	signer    *storage.SignedURLSigner
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService. csv and pdf fall back to the pkg/export renderers.
func NewExportService(options optionReader, store fileStorage, signer *storage.SignedURLSigner, metrics *MetricsService, cfg ExportConfig, logger *zap.Logger, csv, pdf gridRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		options:   options,
		storage:   store,
		renderers: map[string]gridRenderer{"csv": csv, "pdf": pdf},
		signer:    signer,
		metrics:   metrics,
		validator: validator.New(),
		logger:    logger,
		cfg:       cfg,
	}
}

// Export renders one option of a proposal and stores the file.
func (s *ExportService) Export(ctx context.Context, req dto.ExportOptionRequest) (*dto.ExportResponse, error) {
	req.OptionID = strings.ToUpper(strings.TrimSpace(req.OptionID))
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}

	detail, err := s.options.GetOption(ctx, req.ProposalID, req.OptionID)
	if err != nil {
		return nil, err
	}

	grid := OptionGrid(detail.Option, detail.Days, detail.PeriodLabels)
	payload, err := s.renderers[req.Format].Render(grid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("%s/option-%s.%s", sanitizeFilename(detail.ProposalID), strings.ToLower(detail.Option.ID), req.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(detail.ProposalID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}
	s.metrics.RecordExport(req.Format)
	s.logger.Info("timetable exported",
		zap.String("proposal_id", detail.ProposalID),
		zap.String("option_id", detail.Option.ID),
		zap.String("format", req.Format),
		zap.Int("bytes", len(payload)),
	)

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &dto.ExportResponse{
		Filename:  relPath,
		Format:    req.Format,
		URL:       fmt.Sprintf("%s/planner/exports/%s", prefix, token),
		ExpiresAt: expiresAt,
	}, nil
}

// Open resolves a download token to the stored file.
func (s *ExportService) Open(_ context.Context, token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrExpired.Code, appErrors.ErrExpired.Status, "download link is invalid or expired")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	return file, relPath, nil
}

// Cleanup removes files older than the configured result TTL.
func (s *ExportService) Cleanup(_ context.Context) ([]string, error) {
	removed, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

// OptionGrid lays an option out with periods as rows and days as columns.
func OptionGrid(opt planner.Option, days, periodLabels []string) export.Grid {
	grid := export.Grid{
		Title:   fmt.Sprintf("Option %s: %s (%d/100, %s)", opt.ID, opt.Name, opt.Score, opt.Level),
		Corner:  "Period",
		Columns: days,
		Rows:    make([]export.GridRow, 0, len(periodLabels)),
	}
	for _, f := range opt.Breakdown.Factors() {
		grid.Notes = append(grid.Notes, fmt.Sprintf("%s %d/%d", f.Label, f.Score, f.Max))
	}
	if len(opt.Unplaced) > 0 {
		grid.Notes = append(grid.Notes, fmt.Sprintf("%d period(s) unplaced", len(opt.Unplaced)))
	}

	for period, label := range periodLabels {
		row := export.GridRow{Label: label, Cells: make([]export.GridCell, len(days))}
		for col, day := range days {
			ds, ok := opt.Schedule.Day(day)
			if !ok || period >= len(ds.Slots) {
				continue
			}
			cell, filled := ds.Slots[period].Cell()
			if !filled {
				continue
			}
			row.Cells[col] = export.GridCell{
				Text: fmt.Sprintf("%s %s (%s)", cell.Code, cell.Subject, cell.Room),
				Fill: cell.Color,
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
