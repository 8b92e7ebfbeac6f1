package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/leads"
	"github.com/sells-group/lead-enricher/internal/model"
)

var (
	leadsInput       string
	leadsOutput      string
	leadsConcurrency int
	leadsRegistry    bool
	leadsNoStore     bool
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Batch lead-list processing",
}

var leadsProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Classify and enrich a lead list (CSV or XLSX)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		records, err := readLeadFile(leadsInput)
		if err != nil {
			return err
		}

		concurrency := leadsConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		processor, err := newProcessor(leadsRegistry, concurrency)
		if err != nil {
			return err
		}

		result := processor.Process(ctx, records)

		if !leadsNoStore {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			if _, err := st.SaveBatchRun(ctx, filepath.Base(leadsInput), result); err != nil {
				zap.L().Warn("failed to save batch run", zap.Error(err))
			}
		}

		if leadsOutput != "" {
			if err := leads.WriteLeadCSV(leadsOutput, result); err != nil {
				return err
			}
			zap.L().Info("wrote processed leads", zap.String("path", leadsOutput))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	leadsProcessCmd.Flags().StringVar(&leadsInput, "input", "", "lead list file, .csv or .xlsx (required)")
	leadsProcessCmd.Flags().StringVar(&leadsOutput, "output", "", "write processed rows to this CSV file")
	leadsProcessCmd.Flags().IntVar(&leadsConcurrency, "concurrency", 0, "parallel rows (default from config)")
	leadsProcessCmd.Flags().BoolVar(&leadsRegistry, "registry", true, "enable business registry lookups")
	leadsProcessCmd.Flags().BoolVar(&leadsNoStore, "no-store", false, "skip batch run persistence")
	_ = leadsProcessCmd.MarkFlagRequired("input")

	leadsCmd.AddCommand(leadsProcessCmd)
	rootCmd.AddCommand(leadsCmd)
}

// readLeadFile dispatches on file extension.
func readLeadFile(path string) ([]model.LeadRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return leads.ReadLeadCSV(path)
	case ".xlsx":
		return leads.ReadLeadXLSX(path)
	default:
		return nil, eris.Errorf("unsupported lead list format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
