// Package investor turns the raw investor-name list attached to a
// company into up to N ranked (name, domain) pairs. Every stage is
// allowed to fail soft: a bad classification, ranking, or resolution
// empties its result without aborting the enrichment.
package investor

import "context"

// Classification splits raw investor names into fund/accelerator names
// worth contacting and everything else.
type Classification struct {
	Included []string
	Excluded []ExcludedInvestor
}

// ExcludedInvestor records why a name was filtered out.
type ExcludedInvestor struct {
	Name   string
	Type   string // government, angel, institutional, unknown
	Reason string
}

// DomainResolution is the outcome of resolving one investor name to its
// canonical website domain.
type DomainResolution struct {
	Name       string
	Domain     string
	Confidence string // high, medium, low
	Sources    []string
}

// Adapter is the web-grounded lookup surface behind the pipeline.
type Adapter interface {
	// ClassifyInvestors filters names to VC funds and accelerators.
	ClassifyInvestors(ctx context.Context, names []string) (*Classification, error)

	// RankInvestors orders names by institutional weight and returns at
	// most topN of them, best first.
	RankInvestors(ctx context.Context, names []string, companyName, companyContext string, topN int) ([]string, error)

	// ResolveDomain finds the official website domain for one firm.
	ResolveDomain(ctx context.Context, name string) (*DomainResolution, error)
}
