// Package enrich runs the staged research sequence for a single contact.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/research"
	"github.com/sells-group/lead-enricher/internal/store"
)

const defaultStageTimeout = 120 * time.Second

// Orchestrator runs the fixed stage sequence Discovery → Profile → Funding →
// TechStack → Metrics → General, threading accumulated context into each
// stage. Stages are strictly sequential: each one consumes the context of all
// prior stages. Failures are isolated per stage; the run always produces a
// result with whatever stages completed.
type Orchestrator struct {
	researcher   research.Researcher
	store        store.Store
	stageTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore enables run persistence. Persistence failures are logged, never
// fatal to an enrichment.
func WithStore(st store.Store) Option {
	return func(o *Orchestrator) { o.store = st }
}

// WithStageTimeout overrides the per-stage timeout. A stage that exceeds it
// counts as failed; the run continues.
func WithStageTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.stageTimeout = d
		}
	}
}

// New creates an Orchestrator around the given researcher.
func New(r research.Researcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		researcher:   r,
		stageTimeout: defaultStageTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Enrich runs all applicable stages for the email and requested fields.
// It returns an error only for malformed input; stage failures are recorded
// in the result's Errors list.
func (o *Orchestrator) Enrich(ctx context.Context, email string, fields []model.EnrichmentField) (*model.EnrichmentResult, error) {
	start := time.Now()

	emailCtx, err := model.NewEmailContext(email, fields)
	if err != nil {
		return nil, err
	}
	log := zap.L().With(zap.String("email", emailCtx.Email), zap.String("domain", emailCtx.Domain))
	log.Info("orchestrator: starting enrichment", zap.Int("fields", len(fields)))

	groups := model.Categorize(fields)
	result := &model.EnrichmentResult{
		Email:  emailCtx.Email,
		Domain: emailCtx.Domain,
	}

	var run *model.Run
	if o.store != nil {
		if run, err = o.store.CreateRun(ctx, emailCtx.Email, emailCtx.Domain); err != nil {
			log.Warn("orchestrator: failed to create run record", zap.Error(err))
			run = nil
		} else if err = o.store.UpdateRunStatus(ctx, run.ID, model.RunStatusResearching); err != nil {
			log.Warn("orchestrator: failed to update run status", zap.Error(err))
		}
	}

	acc := NewContextAccumulator()
	var confidences []float64

	for _, cat := range model.StageOrder {
		stageFields := groups.Get(cat)
		if !stageRunnable(cat, stageFields, groups) {
			continue
		}

		sr, stageErr := o.runStage(ctx, research.StageQuery{
			Category: cat,
			Fields:   stageFields,
			Domain:   emailCtx.Domain,
			Email:    emailCtx.Email,
			Context:  acc.Render(),
		})
		if stageErr != nil {
			// Stage failures are isolated: record and move on so later
			// stages still get a chance with the context gathered so far.
			log.Warn("orchestrator: stage failed",
				zap.String("stage", string(cat)),
				zap.Error(stageErr),
			)
			result.Errors = append(result.Errors, "stage "+string(cat)+": "+stageErr.Error())
			continue
		}

		acc.Add(sr)
		result.SetStage(sr)
		confidences = append(confidences, sr.Confidence())
		log.Info("orchestrator: stage complete",
			zap.String("stage", string(cat)),
			zap.Float64("confidence", sr.Confidence()),
		)
	}

	result.OverallConfidence = meanConfidence(confidences)
	result.ProcessingTime = time.Since(start)

	if o.store != nil && run != nil {
		if err := o.store.UpdateRunResult(ctx, run.ID, result); err != nil {
			log.Warn("orchestrator: failed to save run result", zap.Error(err))
		}
	}

	log.Info("orchestrator: enrichment complete",
		zap.Float64("overall_confidence", result.OverallConfidence),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("processing_time", result.ProcessingTime),
	)
	return result, nil
}

// runStage invokes the researcher under the per-stage timeout.
func (o *Orchestrator) runStage(ctx context.Context, q research.StageQuery) (*model.StageResult, error) {
	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()
	return o.researcher.ResearchStage(stageCtx, q)
}

// stageRunnable reports whether a stage should run. Discovery is the
// foundation for every other stage, so it runs whenever anything at all was
// requested; every other stage runs only when its own group is non-empty.
func stageRunnable(cat model.FieldCategory, stageFields []model.EnrichmentField, groups model.FieldGroups) bool {
	if cat == model.CategoryDiscovery {
		return groups.AnyRequested()
	}
	return len(stageFields) > 0
}

// meanConfidence averages the obtained stage confidences, clamped to [0,1].
// No stages means 0.0.
func meanConfidence(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	if mean < 0 {
		return 0
	}
	if mean > 1 {
		return 1
	}
	return mean
}
