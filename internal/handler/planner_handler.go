package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-dss/internal/dto"
	"github.com/noah-isme/sma-timetable-dss/internal/middleware"
	appErrors "github.com/noah-isme/sma-timetable-dss/pkg/errors"
	"github.com/noah-isme/sma-timetable-dss/pkg/response"
)

type plannerService interface {
	Generate(ctx context.Context, req dto.GenerateOptionsRequest) (*dto.GenerateOptionsResponse, error)
	GetProposal(ctx context.Context, proposalID string) (*dto.ProposalResponse, error)
	GetOption(ctx context.Context, proposalID, optionID string) (*dto.OptionDetailResponse, error)
	Defaults() dto.DefaultsResponse
}

type optionExporter interface {
	Export(ctx context.Context, req dto.ExportOptionRequest) (*dto.ExportResponse, error)
	Open(ctx context.Context, token string) (*os.File, string, error)
}

// PlannerHandler exposes timetable option generation, evaluation and export.
type PlannerHandler struct {
	planner plannerService
	exports optionExporter
	logger  *zap.Logger
}

// NewPlannerHandler constructs the handler. exports may be nil when file exports are disabled.
func NewPlannerHandler(planner plannerService, exports optionExporter, logger *zap.Logger) *PlannerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerHandler{planner: planner, exports: exports, logger: logger}
}

// Generate godoc
// @Summary Generate three ranked timetable options
// @Description Builds the balanced, teacher-friendly and student-friendly options for the submitted constraints and returns them best first.
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.GenerateOptionsRequest true "Timetable constraints"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planner/options [post]
func (h *PlannerHandler) Generate(c *gin.Context) {
	var req dto.GenerateOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid constraints payload"))
		return
	}
	result, err := h.planner.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, result.Cached)
	h.logger.Info("planner proposal created",
		zap.String("proposal_id", result.ProposalID),
		zap.String("actor", actorID(c)),
		zap.Bool("cached", result.Cached),
	)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// GetProposal godoc
// @Summary Fetch a generated proposal
// @Tags Planner
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/proposals/{id} [get]
func (h *PlannerHandler) GetProposal(c *gin.Context) {
	result, err := h.planner.GetProposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// GetOption godoc
// @Summary Evaluate one option of a proposal
// @Description Returns the option with its score factors, period labels and audit findings.
// @Tags Planner
// @Produce json
// @Param id path string true "Proposal ID"
// @Param optionId path string true "Option ID (A, B or C)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/proposals/{id}/options/{optionId} [get]
func (h *PlannerHandler) GetOption(c *gin.Context) {
	result, err := h.planner.GetOption(c.Request.Context(), c.Param("id"), c.Param("optionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export an option as CSV or PDF
// @Tags Planner
// @Produce json
// @Param id path string true "Proposal ID"
// @Param optionId path string true "Option ID (A, B or C)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planner/proposals/{id}/options/{optionId}/export [post]
func (h *PlannerHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "exports are not configured"))
		return
	}
	format := c.DefaultQuery("format", "csv")
	result, err := h.exports.Export(c.Request.Context(), dto.ExportOptionRequest{
		ProposalID: c.Param("id"),
		OptionID:   c.Param("optionId"),
		Format:     format,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.logger.Info("planner option exported",
		zap.String("file", result.Filename),
		zap.String("actor", actorID(c)),
	)
	response.Created(c, result, middleware.ExtractMeta(c))
}

// Download godoc
// @Summary Download an exported timetable
// @Description The token is the signed segment of the URL returned by the export endpoint.
// @Tags Planner
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 410 {object} response.Envelope
// @Router /planner/exports/{token} [get]
func (h *PlannerHandler) Download(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "exports are not configured"))
		return
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, name, err := h.exports.Open(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", path.Base(name)))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType(name), file, nil)
}

// Defaults godoc
// @Summary Sample constraints and reference catalog
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/defaults [get]
func (h *PlannerHandler) Defaults(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.Defaults())
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
