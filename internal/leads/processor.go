package leads

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/pkg/sunbiz"
)

// Processor runs the batch lead pipeline: classify, describe, infer emails,
// look up the registry. Rows are independent; failures never cross rows.
type Processor struct {
	registry    sunbiz.Client
	rules       *Rules
	concurrency int
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithRegistry enables external registry lookups for triggered organizations.
func WithRegistry(c sunbiz.Client) ProcessorOption {
	return func(p *Processor) { p.registry = c }
}

// WithRules overrides the default rule set.
func WithRules(r *Rules) ProcessorOption {
	return func(p *Processor) {
		if r != nil {
			p.rules = r
		}
	}
}

// WithConcurrency bounds parallel row processing. Values below 2 keep the
// default sequential behavior.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 1 {
			p.concurrency = n
		}
	}
}

// NewProcessor creates a Processor with the default rules.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		rules:       DefaultRules(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// rowOutcome is the per-row output slot. Outcomes are collected by original
// row index so concurrent runs preserve input order.
type rowOutcome struct {
	skipped            bool
	errMsg             string
	record             model.LeadRecord
	validation         model.DecisionMakerValidation
	emailInferred      bool
	descriptionCreated bool
	registryLookup     bool
}

// Process runs the pipeline over all records and returns the batch summary.
// Row-level failures are recorded in Errors; Process itself never fails.
func (p *Processor) Process(ctx context.Context, records []model.LeadRecord) *model.LeadProcessingResult {
	zap.L().Info("leads: starting batch",
		zap.Int("rows", len(records)),
		zap.Int("concurrency", p.concurrency),
	)

	outcomes := make([]rowOutcome, len(records))
	if p.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.concurrency)
		for i, rec := range records {
			g.Go(func() error {
				outcomes[i] = p.processRow(gctx, i+1, rec)
				return nil
			})
		}
		_ = g.Wait() // workers never return errors
	} else {
		for i, rec := range records {
			outcomes[i] = p.processRow(ctx, i+1, rec)
		}
	}

	result := &model.LeadProcessingResult{TotalRows: len(records)}
	for _, out := range outcomes {
		if out.skipped {
			result.Errors = append(result.Errors, out.errMsg)
			continue
		}
		result.ProcessedRows++
		result.Results = append(result.Results, out.record)
		result.ValidationResults = append(result.ValidationResults, out.validation)
		if out.record.IsDecisionMaker {
			result.DecisionMakersFound++
		}
		if out.emailInferred {
			result.EmailsResearched++
		}
		if out.descriptionCreated {
			result.CompanyDescriptionsCreated++
		}
		if out.registryLookup {
			result.RegistryLookups++
		}
	}

	zap.L().Info("leads: batch complete",
		zap.Int("processed", result.ProcessedRows),
		zap.Int("decision_makers", result.DecisionMakersFound),
		zap.Int("errors", len(result.Errors)),
	)
	return result
}

// processRow handles one record. A panic counts as that row's failure only.
func (p *Processor) processRow(ctx context.Context, rowNum int, rec model.LeadRecord) (out rowOutcome) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("leads: row panicked", zap.Int("row", rowNum), zap.Any("panic", r))
			out = rowOutcome{skipped: true, errMsg: fmt.Sprintf("Row %d: %v", rowNum, r)}
		}
	}()

	if strings.TrimSpace(rec.OrganizationName) == "" {
		return rowOutcome{skipped: true, errMsg: fmt.Sprintf("Row %d: missing organization name", rowNum)}
	}

	validation := ClassifyDecisionMaker(rec, p.rules.Classifier)
	rec.IsDecisionMaker = validation.IsDecisionMaker
	rec.SeniorityTitle = seniorityTitle(rec)

	out = rowOutcome{record: rec, validation: validation}
	if !validation.IsDecisionMaker {
		return out
	}

	rec.CompanyDescription = ConsolidateDescription(
		rec.OrganizationName, rec.OrganizationKeywords1, rec.OrganizationKeywords2, p.rules.Description,
	)
	out.descriptionCreated = true

	if rec.Email == "" || rec.PersonalEmail == "" {
		if inferred := InferEmails(rec, p.rules.Email); inferred != nil {
			if rec.Email == "" && inferred.EmailFound != "" {
				rec.Email = inferred.EmailFound
			}
			if rec.PersonalEmail == "" && inferred.PersonalEmailFound != "" {
				rec.PersonalEmail = inferred.PersonalEmailFound
			}
			out.emailInferred = true
		}
	}

	if p.registry != nil && matchesTrigger(rec.OrganizationName, p.rules.Registry.TriggerTokens) {
		out.registryLookup = true
		data, err := p.registry.SearchCompany(ctx, rec.OrganizationName)
		if err != nil {
			// Lookup failures stay on the record, they never fail the row.
			rec.RegistryData = "lookup failed: " + err.Error()
		} else {
			rec.RegistryData = data
		}
	}

	out.record = rec
	return out
}

// seniorityTitle combines the seniority label with the LinkedIn headline.
func seniorityTitle(rec model.LeadRecord) string {
	headline := rec.LinkedInHeadline
	if headline == "" {
		headline = "N/A"
	}
	return rec.Seniority + " - " + headline
}

// matchesTrigger reports whether the organization name carries one of the
// regional trigger tokens. All-uppercase tokens match case-sensitively so
// short abbreviations do not hit inside unrelated words.
func matchesTrigger(orgName string, tokens []string) bool {
	lower := strings.ToLower(orgName)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if token == strings.ToUpper(token) {
			if strings.Contains(orgName, token) {
				return true
			}
			continue
		}
		if strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
