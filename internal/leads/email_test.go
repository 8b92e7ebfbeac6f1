package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-enricher/internal/model"
)

func TestInferEmails_BusinessAndPersonal(t *testing.T) {
	got := InferEmails(model.LeadRecord{
		FirstName:           "Dale",
		LastName:            "Smith",
		OrganizationWebsite: "https://www.absolutealuminum.com/contact",
	}, DefaultRules().Email)

	require.NotNil(t, got)
	assert.Equal(t, "dale.smith@absolutealuminum.com", got.EmailFound)
	assert.Equal(t, "dale.smith@gmail.com", got.PersonalEmailFound)
	// Business pattern confidence dominates.
	assert.InDelta(t, 0.3, got.ConfidenceScore, 0.001)
	assert.Contains(t, got.ResearchNotes, "unverified")
}

func TestInferEmails_PersonalOnly(t *testing.T) {
	got := InferEmails(model.LeadRecord{
		FirstName: "Jane",
		LastName:  "Doe",
	}, DefaultRules().Email)

	require.NotNil(t, got)
	assert.Empty(t, got.EmailFound)
	assert.Equal(t, "jane.doe@gmail.com", got.PersonalEmailFound)
	assert.InDelta(t, 0.2, got.ConfidenceScore, 0.001)
}

func TestInferEmails_NeverOverwrites(t *testing.T) {
	got := InferEmails(model.LeadRecord{
		FirstName:           "Jane",
		LastName:            "Doe",
		Email:               "jane@existing.com",
		PersonalEmail:       "jd@fastmail.com",
		OrganizationWebsite: "https://acme.com",
	}, DefaultRules().Email)

	assert.Nil(t, got)
}

func TestInferEmails_MissingNamesFallBackToGeneric(t *testing.T) {
	got := InferEmails(model.LeadRecord{
		OrganizationWebsite: "http://acme.com",
	}, DefaultRules().Email)

	require.NotNil(t, got)
	assert.Equal(t, "info@acme.com", got.EmailFound)
	assert.Empty(t, got.PersonalEmailFound)
}

func TestInferEmails_NothingToAttempt(t *testing.T) {
	// No website and no names: neither channel can run.
	got := InferEmails(model.LeadRecord{PersonalEmail: "x@y.com"}, DefaultRules().Email)
	assert.Nil(t, got)
}

func TestEmailCandidates_PriorityOrder(t *testing.T) {
	got := emailCandidates("dale", "smith", "acme.com")
	assert.Equal(t, []string{
		"dale.smith@acme.com",
		"dale@acme.com",
		"d.smith@acme.com",
		"info@acme.com",
		"contact@acme.com",
	}, got)
}

func TestBareDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.Acme.com/about?x=1", "acme.com"},
		{"http://acme.com", "acme.com"},
		{"acme.com/path", "acme.com"},
		{"www.acme.com:8080", "acme.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bareDomain(tt.in), tt.in)
	}
}
