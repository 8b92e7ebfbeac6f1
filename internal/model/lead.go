package model

// LeadRecord is one row of a lead list. Identity fields come straight from
// the input file; the derived fields at the bottom are populated during batch
// processing. A record is never shared across rows.
type LeadRecord struct {
	OrganizationName      string `json:"organization_name"`
	FirstName             string `json:"first_name,omitempty"`
	LastName              string `json:"last_name,omitempty"`
	Seniority             string `json:"seniority,omitempty"`
	Email                 string `json:"email,omitempty"`
	PersonalEmail         string `json:"personal_email,omitempty"`
	LinkedInURL           string `json:"linkedin_url,omitempty"`
	LinkedInHeadline      string `json:"linkedin_headline,omitempty"`
	OrganizationLinkedIn  string `json:"organization_linkedin_url,omitempty"`
	OrganizationWebsite   string `json:"org_website_url,omitempty"`
	OrganizationPhone     string `json:"org_phone,omitempty"`
	OrganizationKeywords1 string `json:"org_keywords_1,omitempty"`
	OrganizationKeywords2 string `json:"org_keywords_2,omitempty"`
	IceBreaker            string `json:"ice_breaker,omitempty"`

	// Derived during batch processing.
	CompanyDescription string `json:"company_description,omitempty"`
	SeniorityTitle     string `json:"seniority_title,omitempty"`
	IsDecisionMaker    bool   `json:"is_decision_maker"`
	RegistryData       string `json:"registry_data,omitempty"`
}

// DecisionMakerValidation is the classifier's verdict for one lead record.
type DecisionMakerValidation struct {
	IsDecisionMaker bool    `json:"is_decision_maker"`
	ConfidenceScore float64 `json:"confidence_score"`
	Reasoning       string  `json:"reasoning"`
	SeniorityLevel  string  `json:"seniority_level"`
	JobTitle        string  `json:"job_title,omitempty"`
}

// EmailResearchResult carries pattern-inferred email candidates. These are
// unverified guesses; ConfidenceScore reflects that.
type EmailResearchResult struct {
	EmailFound         string   `json:"email_found,omitempty"`
	PersonalEmailFound string   `json:"personal_email_found,omitempty"`
	ConfidenceScore    float64  `json:"confidence_score"`
	SourceURLs         []string `json:"source_urls,omitempty"`
	ResearchNotes      string   `json:"research_notes,omitempty"`
}

// LeadProcessingResult summarizes one batch run. ValidationResults is
// index-aligned with Results: one validation per retained, processed row.
type LeadProcessingResult struct {
	TotalRows                  int                       `json:"total_rows"`
	ProcessedRows              int                       `json:"processed_rows"`
	DecisionMakersFound        int                       `json:"decision_makers_found"`
	EmailsResearched           int                       `json:"emails_researched"`
	CompanyDescriptionsCreated int                       `json:"company_descriptions_created"`
	RegistryLookups            int                       `json:"registry_lookups"`
	Results                    []LeadRecord              `json:"results"`
	ValidationResults          []DecisionMakerValidation `json:"validation_results"`
	Errors                     []string                  `json:"errors,omitempty"`
}
