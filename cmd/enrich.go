package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scop-vc/enrich-cli/internal/model"
)

var enrichSource string

var enrichCmd = &cobra.Command{
	Use:   "enrich <domain>",
	Short: "Enrich a single company domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		orch, err := initOrchestrator(ctx)
		if err != nil {
			return err
		}

		result, err := orch.Enrich(ctx, args[0], enrichSource)
		if err != nil {
			return eris.Wrap(err, "enrich")
		}

		return printResult(result)
	},
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichSource, "source", "s", "", "list source tag (required)")
	_ = enrichCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(enrichCmd)
}

func printResult(result *model.EnrichmentResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
