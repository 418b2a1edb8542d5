package enrich

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scop-vc/enrich-cli/internal/directory"
	"github.com/scop-vc/enrich-cli/internal/investor"
	"github.com/scop-vc/enrich-cli/internal/listsource"
	"github.com/scop-vc/enrich-cli/internal/model"
	"github.com/scop-vc/enrich-cli/internal/reason"
)

// Orchestrator runs the full enrichment transaction for one domain:
// list source check, company resolution, vertical classification,
// founder resolution, investor resolution, status classification.
type Orchestrator struct {
	sources   *listsource.Resolver
	primary   directory.Directory
	secondary directory.Directory
	reason    reason.Adapter
	investors *investor.Pipeline
	founders  *FounderResolver
}

// NewOrchestrator wires the orchestrator from already-constructed
// collaborators.
func NewOrchestrator(
	sources *listsource.Resolver,
	primary, secondary directory.Directory,
	r reason.Adapter,
	investors *investor.Pipeline,
	founders *FounderResolver,
) *Orchestrator {
	return &Orchestrator{
		sources:   sources,
		primary:   primary,
		secondary: secondary,
		reason:    r,
		investors: investors,
		founders:  founders,
	}
}

// Enrich processes one domain. A rejected or failed enrichment is a
// normal result, not an error; the error return fires only on context
// cancellation, in which case no partial result is produced.
func (o *Orchestrator) Enrich(ctx context.Context, domain, listSource string) (*model.EnrichmentResult, error) {
	domain = normalizeDomain(domain)
	requestID := uuid.NewString()
	log := zap.L().With(zap.String("domain", domain), zap.String("request_id", requestID))

	result := &model.EnrichmentResult{
		Founders:  []model.Founder{},
		RequestID: requestID,
	}

	// The source check runs before any external call.
	auth := o.sources.Resolve(listSource)
	if !auth.Authorized {
		log.Info("enrich: rejected", zap.String("list_source", listSource))
		result.Status = model.StatusRejected
		result.Message = "Invalid list source"
		return result, nil
	}
	result.Owner = &auth.Owner

	company, synthesized := o.resolveCompany(ctx, domain)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vertical := reason.VerticalOther
	if !synthesized {
		vertical = o.reason.ClassifyIndustry(ctx, company)
	}
	company.Industry = string(vertical)

	founders := o.founders.Resolve(ctx, company, vertical, auth.Owner)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.SetInvestors(o.investors.Run(ctx, company.InvestorNames, company.Name, investorContext(company)))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if founders != nil {
		result.Founders = founders
	}
	result.Company = company
	o.classify(result, synthesized)

	log.Info("enrich: done",
		zap.String("status", string(result.Status)),
		zap.Int("founders", len(result.Founders)),
	)
	return result, nil
}

// resolveCompany tries the primary provider, then the secondary, then
// synthesizes a minimal record from the domain string so the founder
// fallback can still run.
func (o *Orchestrator) resolveCompany(ctx context.Context, domain string) (*model.Company, bool) {
	if c := o.primary.CompanyByDomain(ctx, domain); c != nil {
		return c, false
	}
	if c := o.secondary.CompanyByDomain(ctx, domain); c != nil {
		return c, false
	}
	zap.L().Info("enrich: company not found, synthesizing minimal record", zap.String("domain", domain))
	return &model.Company{Name: nameFromDomain(domain), Domain: domain}, true
}

// classify computes the final status purely from the founder list. A
// synthesized company that also produced no founders reports as a
// company miss.
func (o *Orchestrator) classify(result *model.EnrichmentResult, synthesized bool) {
	withEmail := 0
	for _, f := range result.Founders {
		if f.Email != "" {
			withEmail++
		}
	}

	switch {
	case withEmail > 0:
		result.Status = model.StatusEnriched
		result.Message = "Company enriched successfully"
	case len(result.Founders) > 0:
		result.Status = model.StatusPartial
		result.Message = "Founders found without contact emails"
	case synthesized:
		result.Status = model.StatusFailed
		result.Message = "Company not found"
		result.Company = nil
	default:
		result.Status = model.StatusFailed
		result.Message = "No founders found"
	}
}

func normalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	if idx := strings.IndexByte(domain, '/'); idx >= 0 {
		domain = domain[:idx]
	}
	return domain
}

// nameFromDomain derives a display name from the first domain label,
// e.g. "acme.com" becomes "Acme".
func nameFromDomain(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return domain
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// investorContext summarizes the company for the ranking prompt.
func investorContext(company *model.Company) string {
	parts := make([]string, 0, 2)
	if company.Industry != "" {
		parts = append(parts, company.Industry)
	}
	if company.Location != "" {
		parts = append(parts, company.Location)
	}
	return strings.Join(parts, ", ")
}
