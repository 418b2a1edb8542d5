package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scop-vc/enrich-cli/internal/model"
)

var (
	batchCSV         string
	batchSource      string
	batchLimit       int
	batchConcurrency int
	batchOutput      string
)

// batchLead is one row of the input CSV: a domain plus an optional
// per-row list source.
type batchLead struct {
	Domain     string
	ListSource string
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Enrich a CSV of company domains",
	Long: `Reads a CSV with a domain column and an optional list_source column
and runs the enrichment pipeline over every row. Rows without a
list_source use the --source flag value.

Examples:
  # Whole file, default source
  enrich-cli batch --csv leads.csv --source james

  # First 10 rows, results to file
  enrich-cli batch --csv leads.csv --source zi --limit 10 --output results.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		leads, err := parseLeadsCSV(batchCSV, batchSource)
		if err != nil {
			return err
		}
		zap.L().Info("parsed csv", zap.Int("leads", len(leads)))

		if batchLimit > 0 && batchLimit < len(leads) {
			leads = leads[:batchLimit]
		}

		orch, err := initOrchestrator(ctx)
		if err != nil {
			return err
		}

		// Results stay in input order regardless of completion order.
		results := make([]*model.EnrichmentResult, len(leads))
		var enriched, other atomic.Int64

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchConcurrency)
		for i, lead := range leads {
			g.Go(func() error {
				result, runErr := orch.Enrich(gctx, lead.Domain, lead.ListSource)
				if runErr != nil {
					return runErr // context cancellation aborts the batch
				}
				if result.Status == model.StatusEnriched {
					enriched.Add(1)
				} else {
					other.Add(1)
				}
				zap.L().Info("batch: lead done",
					zap.String("domain", lead.Domain),
					zap.String("status", string(result.Status)),
				)
				results[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch")
		}

		zap.L().Info("batch: complete",
			zap.Int("total", len(leads)),
			zap.Int64("enriched", enriched.Load()),
			zap.Int64("other", other.Load()),
		)

		return writeResults(results)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchCSV, "csv", "", "path to leads CSV file (required)")
	batchCmd.Flags().StringVarP(&batchSource, "source", "s", "", "default list source for rows without one")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max leads to process (0 = all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "max leads to process concurrently")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write results JSON to file (default: stdout)")
	_ = batchCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(batchCmd)
}

// parseLeadsCSV reads domain[,list_source] rows. A header row is
// detected by a "domain" first cell and skipped.
func parseLeadsCSV(path, defaultSource string) ([]batchLead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "batch: read csv")
	}

	leads := make([]batchLead, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		domain := strings.TrimSpace(row[0])
		if domain == "" {
			continue
		}
		if i == 0 && strings.EqualFold(domain, "domain") {
			continue
		}

		lead := batchLead{Domain: domain, ListSource: defaultSource}
		if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
			lead.ListSource = strings.TrimSpace(row[1])
		}
		leads = append(leads, lead)
	}

	if len(leads) == 0 {
		return nil, eris.Errorf("batch: no leads in %s", path)
	}
	return leads, nil
}

// writeResults writes results to the output file or stdout.
func writeResults(results []*model.EnrichmentResult) error {
	var w *os.File
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return eris.Wrap(err, "batch: create output file")
		}
		defer f.Close() //nolint:errcheck
		w = f
	} else {
		w = os.Stdout
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
