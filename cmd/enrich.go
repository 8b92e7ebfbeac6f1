package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/store"
)

var (
	enrichEmail      string
	enrichFieldsPath string
	enrichOffline    bool
	enrichNoStore    bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run staged company research for a single contact email",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fields := defaultFields()
		if enrichFieldsPath != "" {
			loaded, err := loadFields(enrichFieldsPath)
			if err != nil {
				return err
			}
			fields = loaded
		}

		var st store.Store
		if !enrichNoStore {
			s, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			st = s
		}

		orch, err := newOrchestrator(st, enrichOffline)
		if err != nil {
			return err
		}

		result, err := orch.Enrich(ctx, enrichEmail, fields)
		if err != nil {
			return eris.Wrap(err, "enrich")
		}

		zap.L().Info("enrichment finished",
			zap.String("email", result.Email),
			zap.Float64("overall_confidence", result.OverallConfidence),
			zap.Int("stage_errors", len(result.Errors)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichEmail, "email", "", "contact email to research (required)")
	enrichCmd.Flags().StringVar(&enrichFieldsPath, "fields", "", "YAML file listing enrichment fields (default: built-in set)")
	enrichCmd.Flags().BoolVar(&enrichOffline, "offline", false, "use the stub researcher, no network calls")
	enrichCmd.Flags().BoolVar(&enrichNoStore, "no-store", false, "skip run persistence")
	_ = enrichCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(enrichCmd)
}

// defaultFields is the standard research request when no field file is given.
func defaultFields() []model.EnrichmentField {
	return []model.EnrichmentField{
		{Name: "company_name", Category: model.CategoryDiscovery, Required: true},
		{Name: "website", Category: model.CategoryDiscovery},
		{Name: "description", Category: model.CategoryDiscovery},
		{Name: "industry", Category: model.CategoryProfile},
		{Name: "company_size", Category: model.CategoryProfile},
		{Name: "headquarters", Category: model.CategoryProfile},
		{Name: "employee_count", Category: model.CategoryMetrics},
		{Name: "revenue", Category: model.CategoryMetrics},
	}
}

// fieldFile is the YAML layout for --fields.
type fieldFile struct {
	Fields []struct {
		Name        string `yaml:"name"`
		Category    string `yaml:"category"`
		Description string `yaml:"description"`
		Required    bool   `yaml:"required"`
	} `yaml:"fields"`
}

// loadFields reads an enrichment field list from a YAML file.
func loadFields(path string) ([]model.EnrichmentField, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read fields file %s", path)
	}

	var ff fieldFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, eris.Wrap(err, "parse fields file")
	}
	if len(ff.Fields) == 0 {
		return nil, eris.New("fields file lists no fields")
	}

	out := make([]model.EnrichmentField, 0, len(ff.Fields))
	for _, f := range ff.Fields {
		cat := model.FieldCategory(f.Category)
		if !model.ValidCategory(cat) {
			return nil, eris.Errorf("unknown field category %q for field %q", f.Category, f.Name)
		}
		out = append(out, model.EnrichmentField{
			Name:        f.Name,
			Category:    cat,
			Description: f.Description,
			Required:    f.Required,
		})
	}
	return out, nil
}
