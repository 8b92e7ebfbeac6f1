package model

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// DiscoveryResult holds foundational company facts for a domain.
type DiscoveryResult struct {
	CompanyName     string   `json:"company_name,omitempty"`
	Website         string   `json:"website,omitempty"`
	Description     string   `json:"description,omitempty"`
	Domain          string   `json:"domain"`
	ConfidenceScore float64  `json:"confidence_score"`
	SourceURLs      []string `json:"source_urls,omitempty"`
	ExtractionNotes string   `json:"extraction_notes,omitempty"`
}

// ProfileResult holds detailed company profile facts.
type ProfileResult struct {
	CompanyName     string   `json:"company_name,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	CompanySize     string   `json:"company_size,omitempty"`
	Headquarters    string   `json:"headquarters,omitempty"`
	FoundedYear     int      `json:"founded_year,omitempty"`
	Description     string   `json:"description,omitempty"`
	KeyPeople       []string `json:"key_people,omitempty"`
	ConfidenceScore float64  `json:"confidence_score"`
	SourceURLs      []string `json:"source_urls,omitempty"`
	ExtractionNotes string   `json:"extraction_notes,omitempty"`
}

// FundingResult holds funding and investment facts.
type FundingResult struct {
	TotalFunding      string   `json:"total_funding,omitempty"`
	LastFundingRound  string   `json:"last_funding_round,omitempty"`
	LastFundingAmount string   `json:"last_funding_amount,omitempty"`
	LastFundingDate   string   `json:"last_funding_date,omitempty"`
	Investors         []string `json:"investors,omitempty"`
	FundingStages     []string `json:"funding_stages,omitempty"`
	ConfidenceScore   float64  `json:"confidence_score"`
	SourceURLs        []string `json:"source_urls,omitempty"`
	ExtractionNotes   string   `json:"extraction_notes,omitempty"`
}

// TechStackResult holds technology stack facts.
type TechStackResult struct {
	Technologies         []string `json:"technologies,omitempty"`
	ProgrammingLanguages []string `json:"programming_languages,omitempty"`
	Frameworks           []string `json:"frameworks,omitempty"`
	Databases            []string `json:"databases,omitempty"`
	CloudServices        []string `json:"cloud_services,omitempty"`
	ConfidenceScore      float64  `json:"confidence_score"`
	SourceURLs           []string `json:"source_urls,omitempty"`
	ExtractionNotes      string   `json:"extraction_notes,omitempty"`
}

// MetricsResult holds quantitative business metrics.
type MetricsResult struct {
	Revenue         string   `json:"revenue,omitempty"`
	EmployeeCount   string   `json:"employee_count,omitempty"`
	GrowthRate      string   `json:"growth_rate,omitempty"`
	MarketShare     string   `json:"market_share,omitempty"`
	Valuation       string   `json:"valuation,omitempty"`
	ConfidenceScore float64  `json:"confidence_score"`
	SourceURLs      []string `json:"source_urls,omitempty"`
	ExtractionNotes string   `json:"extraction_notes,omitempty"`
}

// GeneralResult holds answers for caller-defined custom fields.
type GeneralResult struct {
	Extracted       map[string]TaggedValue `json:"extracted_data,omitempty"`
	ConfidenceScore float64                `json:"confidence_score"`
	SourceURLs      []string               `json:"source_urls,omitempty"`
	ExtractionNotes string                 `json:"extraction_notes,omitempty"`
}

// StageResult is the tagged output of one research stage. Exactly one of the
// per-category pointers is set, matching Category.
type StageResult struct {
	Category  FieldCategory    `json:"category"`
	Discovery *DiscoveryResult `json:"discovery,omitempty"`
	Profile   *ProfileResult   `json:"profile,omitempty"`
	Funding   *FundingResult   `json:"funding,omitempty"`
	TechStack *TechStackResult `json:"tech_stack,omitempty"`
	Metrics   *MetricsResult   `json:"metrics,omitempty"`
	General   *GeneralResult   `json:"general,omitempty"`
}

// Confidence returns the confidence score of the populated variant.
func (r *StageResult) Confidence() float64 {
	switch {
	case r.Discovery != nil:
		return r.Discovery.ConfidenceScore
	case r.Profile != nil:
		return r.Profile.ConfidenceScore
	case r.Funding != nil:
		return r.Funding.ConfidenceScore
	case r.TechStack != nil:
		return r.TechStack.ConfidenceScore
	case r.Metrics != nil:
		return r.Metrics.ConfidenceScore
	case r.General != nil:
		return r.General.ConfidenceScore
	}
	return 0
}

// ValueKind discriminates TaggedValue variants.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueNumber ValueKind = "number"
	ValueBool   ValueKind = "bool"
	ValueNull   ValueKind = "null"
)

// TaggedValue is an explicitly typed value for custom extracted fields.
type TaggedValue struct {
	Kind   ValueKind
	String string
	Number float64
	Bool   bool
}

// StringValue builds a string TaggedValue.
func StringValue(s string) TaggedValue { return TaggedValue{Kind: ValueString, String: s} }

// NumberValue builds a numeric TaggedValue.
func NumberValue(n float64) TaggedValue { return TaggedValue{Kind: ValueNumber, Number: n} }

// BoolValue builds a boolean TaggedValue.
func BoolValue(b bool) TaggedValue { return TaggedValue{Kind: ValueBool, Bool: b} }

// NullValue builds a null TaggedValue.
func NullValue() TaggedValue { return TaggedValue{Kind: ValueNull} }

// MarshalJSON encodes the value as its underlying JSON type.
func (v TaggedValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueString:
		return json.Marshal(v.String)
	case ValueNumber:
		return json.Marshal(v.Number)
	case ValueBool:
		return json.Marshal(v.Bool)
	case ValueNull, "":
		return []byte("null"), nil
	}
	return nil, eris.Errorf("model: unknown value kind %q", v.Kind)
}

// UnmarshalJSON decodes a JSON scalar into a TaggedValue. Arrays and objects
// are rejected; custom fields carry scalar answers only.
func (v *TaggedValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "model: decode tagged value")
	}
	switch t := raw.(type) {
	case nil:
		*v = NullValue()
	case string:
		*v = StringValue(t)
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	default:
		return eris.Errorf("model: tagged value must be a scalar, got %T", raw)
	}
	return nil
}

// EnrichmentResult aggregates the outcome of a single-record enrichment run.
// Stage pointers are nil for stages that were not requested or failed.
type EnrichmentResult struct {
	Email             string           `json:"email"`
	Domain            string           `json:"domain"`
	Discovery         *DiscoveryResult `json:"discovery,omitempty"`
	Profile           *ProfileResult   `json:"profile,omitempty"`
	Funding           *FundingResult   `json:"funding,omitempty"`
	TechStack         *TechStackResult `json:"tech_stack,omitempty"`
	Metrics           *MetricsResult   `json:"metrics,omitempty"`
	General           *GeneralResult   `json:"general,omitempty"`
	OverallConfidence float64          `json:"overall_confidence"`
	ProcessingTime    time.Duration    `json:"processing_time"`
	Errors            []string         `json:"errors,omitempty"`
}

// SetStage stores a stage result under its category slot.
func (r *EnrichmentResult) SetStage(sr *StageResult) {
	if sr == nil {
		return
	}
	switch sr.Category {
	case CategoryDiscovery:
		r.Discovery = sr.Discovery
	case CategoryProfile:
		r.Profile = sr.Profile
	case CategoryFunding:
		r.Funding = sr.Funding
	case CategoryTechStack:
		r.TechStack = sr.TechStack
	case CategoryMetrics:
		r.Metrics = sr.Metrics
	case CategoryGeneral:
		r.General = sr.General
	}
}
