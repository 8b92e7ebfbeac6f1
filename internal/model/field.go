package model

// FieldCategory identifies which research stage is responsible for a
// requested enrichment field.
type FieldCategory string

const (
	CategoryDiscovery FieldCategory = "discovery"
	CategoryProfile   FieldCategory = "profile"
	CategoryFunding   FieldCategory = "funding"
	CategoryTechStack FieldCategory = "tech_stack"
	CategoryMetrics   FieldCategory = "metrics"
	CategoryGeneral   FieldCategory = "general"
)

// StageOrder is the fixed execution order of research stages. Discovery is
// the foundation stage and always runs first; General always runs last.
var StageOrder = []FieldCategory{
	CategoryDiscovery,
	CategoryProfile,
	CategoryFunding,
	CategoryTechStack,
	CategoryMetrics,
	CategoryGeneral,
}

// ValidCategory reports whether c is one of the recognized field categories.
func ValidCategory(c FieldCategory) bool {
	switch c {
	case CategoryDiscovery, CategoryProfile, CategoryFunding,
		CategoryTechStack, CategoryMetrics, CategoryGeneral:
		return true
	}
	return false
}

// EnrichmentField is a single requested field in an enrichment request.
type EnrichmentField struct {
	Name        string        `json:"name"`
	Category    FieldCategory `json:"category"`
	Description string        `json:"description,omitempty"`
	Required    bool          `json:"required,omitempty"`
}

// FieldGroups is the result of partitioning requested fields by category.
// Relative order of fields within each group matches the input order.
type FieldGroups struct {
	groups map[FieldCategory][]EnrichmentField
	total  int
}

// Categorize partitions fields into per-category groups. Every field lands in
// exactly one group; input order is preserved within each group.
func Categorize(fields []EnrichmentField) FieldGroups {
	groups := make(map[FieldCategory][]EnrichmentField, len(StageOrder))
	for _, f := range fields {
		groups[f.Category] = append(groups[f.Category], f)
	}
	return FieldGroups{groups: groups, total: len(fields)}
}

// Get returns the fields requested for the given category.
func (g FieldGroups) Get(cat FieldCategory) []EnrichmentField {
	return g.groups[cat]
}

// Total returns the number of fields across all groups.
func (g FieldGroups) Total() int {
	return g.total
}

// AnyRequested reports whether any field was requested in any category.
func (g FieldGroups) AnyRequested() bool {
	return g.total > 0
}
