package main

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scop-vc/enrich-cli/internal/directory"
	"github.com/scop-vc/enrich-cli/internal/enrich"
	"github.com/scop-vc/enrich-cli/internal/investor"
	"github.com/scop-vc/enrich-cli/internal/listsource"
	"github.com/scop-vc/enrich-cli/internal/reason"
	"github.com/scop-vc/enrich-cli/pkg/anthropic"
	"github.com/scop-vc/enrich-cli/pkg/apollo"
	"github.com/scop-vc/enrich-cli/pkg/specter"
)

// initOrchestrator wires the full enrichment pipeline from config.
func initOrchestrator(ctx context.Context) (*enrich.Orchestrator, error) {
	if err := validateAPIKeys(); err != nil {
		return nil, err
	}

	specterClient := specter.NewClient(cfg.Specter.Key,
		specter.WithBaseURL(cfg.Specter.BaseURL),
		specter.WithTimeout(time.Duration(cfg.Specter.TimeoutSecs)*time.Second),
	)
	apolloClient := apollo.NewClient(cfg.Apollo.Key,
		apollo.WithBaseURL(cfg.Apollo.BaseURL),
		apollo.WithTimeout(time.Duration(cfg.Apollo.TimeoutSecs)*time.Second),
	)

	primary := directory.NewSpecter(specterClient)
	secondary := directory.NewApollo(apolloClient, cfg.Enrich.FounderTitles)

	playbook, err := loadPlaybook()
	if err != nil {
		return nil, err
	}
	reasoner := reason.NewReasoner(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.HaikuModel, playbook)

	geminiAdapter, err := investor.NewGemini(ctx, investor.GeminiConfig{
		APIKey:  cfg.Gemini.Key,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	investors := investor.NewPipeline(
		geminiAdapter,
		cfg.Enrich.InvestorDenylist,
		cfg.Enrich.TopInvestors,
		cfg.Enrich.InvestorConcurrency,
	)

	founders := enrich.NewFounderResolver(primary, secondary, reasoner, cfg.Enrich.FounderConcurrency)
	sources := listsource.NewResolver(cfg.Owners)

	return enrich.NewOrchestrator(sources, primary, secondary, reasoner, investors, founders), nil
}

func loadPlaybook() (*reason.Playbook, error) {
	if cfg.Enrich.PlaybookPath == "" {
		return reason.DefaultPlaybook(), nil
	}
	playbook, err := reason.LoadPlaybook(cfg.Enrich.PlaybookPath)
	if err != nil {
		return nil, err
	}
	zap.L().Info("loaded playbook", zap.String("path", cfg.Enrich.PlaybookPath))
	return playbook, nil
}

// validateAPIKeys checks that every provider key is configured.
func validateAPIKeys() error {
	var missing []string

	if cfg.Specter.Key == "" {
		missing = append(missing, "ENRICH_SPECTER_KEY (primary directory)")
	}
	if cfg.Apollo.Key == "" {
		missing = append(missing, "ENRICH_APOLLO_KEY (secondary directory)")
	}
	if cfg.Anthropic.Key == "" {
		missing = append(missing, "ENRICH_ANTHROPIC_KEY (vertical classification)")
	}
	if cfg.Gemini.Key == "" {
		missing = append(missing, "ENRICH_GEMINI_KEY (investor lookup)")
	}

	if len(missing) > 0 {
		return eris.Errorf("missing required API keys:\n  %s", strings.Join(missing, "\n  "))
	}
	return nil
}
