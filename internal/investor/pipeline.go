package investor

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scop-vc/enrich-cli/internal/model"
)

// Pipeline runs filter, rank, and resolve over a raw investor-name
// list. Run always returns exactly topN slots so flat-field consumers
// never branch on length.
type Pipeline struct {
	adapter     Adapter
	denylist    []string
	topN        int
	concurrency int
}

// NewPipeline creates a Pipeline. denylist entries of one or two
// characters match whole names only; longer entries match by substring.
func NewPipeline(adapter Adapter, denylist []string, topN, concurrency int) *Pipeline {
	if topN <= 0 {
		topN = model.InvestorSlots
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Pipeline{
		adapter:     adapter,
		denylist:    denylist,
		topN:        topN,
		concurrency: concurrency,
	}
}

// Run executes the three stages. Any stage failure empties the result
// instead of propagating an error.
func (p *Pipeline) Run(ctx context.Context, names []string, companyName, companyContext string) []model.Investor {
	empty := make([]model.Investor, p.topN)
	if len(names) == 0 {
		return empty
	}

	classification, err := p.adapter.ClassifyInvestors(ctx, names)
	if err != nil {
		zap.L().Warn("investor: classification failed", zap.Error(err))
		return empty
	}
	for _, ex := range classification.Excluded {
		zap.L().Debug("investor: excluded",
			zap.String("name", ex.Name),
			zap.String("type", ex.Type),
		)
	}

	candidates := foldBrands(p.applyDenylist(classification.Included))
	if len(candidates) == 0 {
		return empty
	}

	top := candidates
	if len(candidates) > p.topN {
		ranked, err := p.adapter.RankInvestors(ctx, candidates, companyName, companyContext, p.topN)
		if err != nil {
			zap.L().Warn("investor: ranking failed", zap.Error(err))
			return empty
		}
		top = ranked
		if len(top) > p.topN {
			top = top[:p.topN]
		}
	}

	resolved := make([]model.Investor, len(top))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, name := range top {
		g.Go(func() error {
			resolved[i] = p.resolveOne(gctx, name)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	out := make([]model.Investor, p.topN)
	copy(out, resolved)
	return out
}

// resolveOne resolves a single name, keeping the name but dropping the
// domain on failure or low confidence.
func (p *Pipeline) resolveOne(ctx context.Context, name string) model.Investor {
	inv := model.Investor{Name: name}

	res, err := p.adapter.ResolveDomain(ctx, name)
	if err != nil {
		zap.L().Warn("investor: domain resolution failed", zap.String("name", name), zap.Error(err))
		return inv
	}
	zap.L().Debug("investor: resolved",
		zap.String("name", res.Name),
		zap.String("domain", res.Domain),
		zap.String("confidence", res.Confidence),
		zap.Strings("sources", res.Sources),
	)
	if res.Name != "" {
		inv.Name = res.Name
	}
	if res.Domain != "" && res.Confidence != "low" {
		inv.Domain = res.Domain
	}
	return inv
}

func (p *Pipeline) applyDenylist(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if p.denied(name) {
			zap.L().Debug("investor: denylisted", zap.String("name", name))
			continue
		}
		out = append(out, name)
	}
	return out
}

func (p *Pipeline) denied(name string) bool {
	folded := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range p.denylist {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		// Short entries like "yc" match whole names only, to avoid
		// catching firms that merely contain the letters.
		if len(entry) <= 2 {
			if folded == entry {
				return true
			}
		} else if strings.Contains(folded, entry) {
			return true
		}
	}
	return false
}

// foldBrands drops later names whose token sequence extends or repeats
// an earlier one, so "Sequoia" and "Sequoia Capital" collapse to the
// first seen. Sibling sub-brands with distinct suffixes are left for
// the ranking stage to merge.
func foldBrands(names []string) []string {
	kept := make([]string, 0, len(names))
	keptTokens := make([][]string, 0, len(names))

outer:
	for _, name := range names {
		tokens := strings.Fields(strings.ToLower(name))
		if len(tokens) == 0 {
			continue
		}
		for _, prev := range keptTokens {
			if isTokenPrefix(prev, tokens) || isTokenPrefix(tokens, prev) {
				continue outer
			}
		}
		kept = append(kept, name)
		keptTokens = append(keptTokens, tokens)
	}
	return kept
}

func isTokenPrefix(short, long []string) bool {
	if len(short) > len(long) {
		return false
	}
	for i, tok := range short {
		if long[i] != tok {
			return false
		}
	}
	return true
}
