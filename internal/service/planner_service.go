package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-dss/internal/dto"
	"github.com/noah-isme/sma-timetable-dss/internal/planner"
	appErrors "github.com/noah-isme/sma-timetable-dss/pkg/errors"
)

type optionGenerator interface {
	Generate(ctx context.Context, c planner.Constraints) ([]planner.Option, error)
	Catalog() planner.Catalog
}

// PlannerConfig governs proposal retention and input limits.
type PlannerConfig struct {
	ProposalTTL time.Duration
	CacheTTL    time.Duration
	MaxSubjects int
}

// PlannerService validates constraint forms, runs the engine and keeps the
// resulting proposals for the detail and export views.
type PlannerService struct {
	engine    optionGenerator
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	store     *proposalStore
	cfg       PlannerConfig
	now       func() time.Time
}

// NewPlannerService wires planner dependencies. cache and metrics may be nil.
func NewPlannerService(engine optionGenerator, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg PlannerConfig) *PlannerService {
	if engine == nil {
		engine = planner.NewEngine()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.MaxSubjects <= 0 {
		cfg.MaxSubjects = 64
	}
	s := &PlannerService{
		engine:    engine,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
	s.store = newProposalStore(func() time.Time { return s.now() })
	return s
}

// Generate produces three ranked options for the submitted constraints.
func (s *PlannerService) Generate(ctx context.Context, req dto.GenerateOptionsRequest) (*dto.GenerateOptionsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid planner constraints")
	}
	if len(req.Subjects) > s.cfg.MaxSubjects {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d subjects are supported", s.cfg.MaxSubjects))
	}

	constraints := req.ToConstraints()
	key, err := s.cacheKey(constraints)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fingerprint constraints")
	}

	var options []planner.Option
	cached, cacheErr := s.cache.Get(ctx, key, &options)
	if cacheErr != nil || len(options) != 3 {
		cached = false
	}

	if !cached {
		start := time.Now()
		options, err = s.engine.Generate(ctx, constraints)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "schedule generation interrupted")
		}
		elapsed := time.Since(start)
		s.metrics.ObserveGeneration(options, elapsed)
		_ = s.cache.Set(ctx, key, options, s.cfg.CacheTTL)
		s.logger.Info("planner options generated",
			zap.Int("subjects", len(constraints.Subjects)),
			zap.Int("credits", constraints.TotalCredits()),
			zap.Int("top_score", options[0].Score),
			zap.String("top_option", options[0].ID),
			zap.Duration("elapsed", elapsed),
		)
	}

	generatedAt := s.now().UTC()
	p := proposal{
		ID:          uuid.NewString(),
		Constraints: constraints,
		Options:     options,
		GeneratedAt: generatedAt,
		ExpiresAt:   generatedAt.Add(s.cfg.ProposalTTL),
	}
	s.store.Save(p)

	return &dto.GenerateOptionsResponse{
		ProposalID:  p.ID,
		Options:     p.Options,
		GeneratedAt: p.GeneratedAt,
		ExpiresAt:   p.ExpiresAt,
		Cached:      cached,
	}, nil
}

// GetProposal returns a stored run.
func (s *PlannerService) GetProposal(_ context.Context, proposalID string) (*dto.ProposalResponse, error) {
	p, err := s.lookup(proposalID)
	if err != nil {
		return nil, err
	}
	return &dto.ProposalResponse{
		ProposalID:  p.ID,
		Constraints: p.Constraints,
		Options:     p.Options,
		GeneratedAt: p.GeneratedAt,
		ExpiresAt:   p.ExpiresAt,
	}, nil
}

// GetOption returns the evaluation view for one option of a stored run.
func (s *PlannerService) GetOption(_ context.Context, proposalID, optionID string) (*dto.OptionDetailResponse, error) {
	p, err := s.lookup(proposalID)
	if err != nil {
		return nil, err
	}
	opt, ok := p.option(strings.ToUpper(strings.TrimSpace(optionID)))
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "option not found")
	}

	cat := s.engine.Catalog()
	labels := make([]string, 0, max(p.Constraints.PeriodsPerDay, 0))
	for i := 0; i < p.Constraints.PeriodsPerDay; i++ {
		labels = append(labels, cat.PeriodLabel(i))
	}
	findings := planner.Audit(opt.Schedule, p.Constraints)
	if findings == nil {
		findings = []planner.Violation{}
	}

	return &dto.OptionDetailResponse{
		ProposalID:   p.ID,
		Option:       opt,
		Factors:      opt.Breakdown.Factors(),
		Days:         cat.ActiveDays(p.Constraints.DaysPerWeek),
		PeriodLabels: labels,
		Findings:     findings,
		Constraints:  p.Constraints,
	}, nil
}

// Defaults returns the sample constraints and the catalog in use.
func (s *PlannerService) Defaults() dto.DefaultsResponse {
	return dto.DefaultsResponse{
		Constraints: dto.FromConstraints(planner.DefaultConstraints()),
		Catalog:     s.engine.Catalog(),
	}
}

// SweepExpired drops proposals past their TTL.
func (s *PlannerService) SweepExpired(_ context.Context) int {
	removed := s.store.Sweep()
	if removed > 0 {
		s.logger.Debug("expired proposals removed", zap.Int("count", removed))
	}
	return removed
}

func (s *PlannerService) lookup(proposalID string) (proposal, error) {
	if strings.TrimSpace(proposalID) == "" {
		return proposal{}, appErrors.Clone(appErrors.ErrValidation, "proposal id is required")
	}
	p, ok := s.store.Get(proposalID)
	if !ok {
		return proposal{}, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	return p, nil
}

// cacheKey fingerprints the constraints together with the catalog, since
// rooms and palette change the generated cells.
func (s *PlannerService) cacheKey(c planner.Constraints) (string, error) {
	payload, err := json.Marshal(struct {
		Constraints planner.Constraints `json:"c"`
		Catalog     planner.Catalog     `json:"k"`
	}{c, s.engine.Catalog()})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return s.cache.Key("options", hex.EncodeToString(sum[:])), nil
}
