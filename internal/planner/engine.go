package planner

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Variant is one fixed pass of the generator.
type Variant struct {
	ID        string
	Name      string
	Seed      int64
	Type      OptionType
	Highlight string
}

// Variants returns the three passes in generation order.
func Variants() []Variant {
	return []Variant{
		{ID: "A", Name: "Option A (most balanced)", Seed: 10, Type: OptionBalanced, Highlight: "Spreads subjects most evenly across the week"},
		{ID: "B", Name: "Option B (teacher-focused)", Seed: 42, Type: OptionTeacher, Highlight: "Gives teachers more preparation time"},
		{ID: "C", Name: "Option C (student-focused)", Seed: 99, Type: OptionStudent, Highlight: "Students avoid back-to-back heavy subjects"},
	}
}

// Engine builds and ranks candidate timetables.
type Engine struct {
	catalog   Catalog
	sequencer Sequencer
	logger    *zap.Logger
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithCatalog replaces the reference data.
func WithCatalog(cat Catalog) EngineOption {
	return func(e *Engine) { e.catalog = cat }
}

// WithSequencer replaces the pool shuffler.
func WithSequencer(seq Sequencer) EngineOption {
	return func(e *Engine) {
		if seq != nil {
			e.sequencer = seq
		}
	}
}

// WithLogger attaches a logger for per-variant debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an engine using DefaultCatalog and RandSequencer unless overridden.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:   DefaultCatalog(),
		sequencer: RandSequencer{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog exposes the reference data in use.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// Generate runs the three variants and returns them ranked by descending score.
// Equal scores keep generation order. The only error is context cancellation.
func (e *Engine) Generate(ctx context.Context, c Constraints) ([]Option, error) {
	variants := Variants()
	options := make([]Option, len(variants))
	base := BuildPool(c.Subjects)

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			options[i] = e.build(v, base, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})
	return options, nil
}

// Run executes a single variant.
func (e *Engine) Run(v Variant, c Constraints) Option {
	return e.build(v, BuildPool(c.Subjects), c)
}

func (e *Engine) build(v Variant, base []Token, c Constraints) Option {
	pool := PreparePool(e.sequencer, base, v.Seed)
	placed := Place(pool, c, v.Seed, e.catalog)
	result := Score(placed.Schedule, c, v.Seed, v.Type, e.catalog.HeavyKeywords)
	why := explain(v, result, len(placed.Unplaced))

	e.logger.Debug("planner variant generated",
		zap.String("option", v.ID),
		zap.Int64("seed", v.Seed),
		zap.String("type", string(v.Type)),
		zap.Int("score", result.Total),
		zap.Int("pool", len(pool)),
		zap.Int("unplaced", len(placed.Unplaced)),
	)

	return Option{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type,
		Seed:        v.Seed,
		Score:       result.Total,
		Level:       ClassifyLevel(result.Total),
		Schedule:    placed.Schedule,
		Pros:        why.Pros,
		Cons:        why.Cons,
		Suggestions: why.Suggestions,
		Breakdown:   result.Breakdown,
		Diagnostics: result.Diagnostics,
		Unplaced:    placed.Unplaced,
	}
}
