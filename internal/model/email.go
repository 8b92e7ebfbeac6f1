package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// EmailContext carries the parsed input of a single-record enrichment request.
type EmailContext struct {
	Email  string            `json:"email"`
	Domain string            `json:"domain"`
	Fields []EnrichmentField `json:"fields"`
}

// NewEmailContext builds an EmailContext from a raw address and the requested
// fields. The domain is derived from the address host part.
func NewEmailContext(email string, fields []EnrichmentField) (*EmailContext, error) {
	domain, err := ExtractDomain(email)
	if err != nil {
		return nil, err
	}
	return &EmailContext{
		Email:  email,
		Domain: domain,
		Fields: fields,
	}, nil
}

// ExtractDomain returns the lowercased host part of an email address.
// The address must contain exactly one @ with non-empty local and host parts.
func ExtractDomain(email string) (string, error) {
	local, host, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" || host == "" || strings.Contains(host, "@") {
		return "", eris.Errorf("model: malformed email address %q", email)
	}
	return strings.ToLower(host), nil
}
