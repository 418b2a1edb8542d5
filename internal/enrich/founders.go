// Package enrich contains the founder resolution chain and the
// top-level orchestrator that assembles one enrichment result per
// domain.
package enrich

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scop-vc/enrich-cli/internal/directory"
	"github.com/scop-vc/enrich-cli/internal/model"
	"github.com/scop-vc/enrich-cli/internal/reason"
)

// FounderResolver builds the deduplicated, email-augmented founder list
// for a company, walking the primary provider first and falling back to
// a domain-wide secondary search when the primary yields nothing.
type FounderResolver struct {
	primary     directory.Directory
	secondary   directory.Directory
	reason      reason.Adapter
	concurrency int
}

// NewFounderResolver creates a FounderResolver. concurrency bounds the
// per-founder fan-out.
func NewFounderResolver(primary, secondary directory.Directory, r reason.Adapter, concurrency int) *FounderResolver {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &FounderResolver{
		primary:     primary,
		secondary:   secondary,
		reason:      r,
		concurrency: concurrency,
	}
}

// Resolve returns the founder list for a resolved company. Founders
// without an email stay in the list, just without a generated body.
func (r *FounderResolver) Resolve(ctx context.Context, company *model.Company, vertical reason.Vertical, owner model.Owner) []model.Founder {
	founders := r.fromFounderRefs(ctx, company)
	if len(founders) == 0 {
		founders = r.fromDomainSearch(ctx, company.Domain)
	}
	founders = dedupFounders(founders)

	for i := range founders {
		if founders[i].Email != "" {
			founders[i].GeneratedEmailBody = r.reason.ComposeEmail(company, &founders[i], vertical, owner)
		}
	}
	return founders
}

// fromFounderRefs walks the founder references embedded in the primary
// company record. A pending or failed person fetch still yields a
// founder, with empty contact fields.
func (r *FounderResolver) fromFounderRefs(ctx context.Context, company *model.Company) []model.Founder {
	refs := company.FounderRefs
	if len(refs) == 0 {
		return nil
	}

	results := make([]*model.Founder, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, ref := range refs {
		if ref.PersonID == "" {
			zap.L().Warn("enrich: founder ref without person id", zap.String("name", ref.FullName))
			continue
		}
		g.Go(func() error {
			results[i] = r.resolveRef(gctx, ref, company.Domain)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	out := make([]model.Founder, 0, len(refs))
	for _, f := range results {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func (r *FounderResolver) resolveRef(ctx context.Context, ref model.FounderRef, domain string) *model.Founder {
	person := r.primary.EnrichPerson(ctx, ref.PersonID)
	if person == nil {
		person = &directory.Person{ID: ref.PersonID, FullName: ref.FullName, Title: ref.Title}
	}
	if person.FullName == "" {
		person.FullName = ref.FullName
	}
	if person.Title == "" {
		person.Title = ref.Title
	}
	if person.FirstName == "" && person.FullName != "" {
		person.FirstName, person.LastName = model.SplitFullName(person.FullName)
	}

	founder := founderFromPerson(person)
	if founder.Email == "" {
		founder.Email = r.resolveEmail(ctx, person, domain)
	}
	return &founder
}

// emailStrategy is one step of the email fallback chain. It returns ""
// when it cannot produce an email, letting the next strategy run.
type emailStrategy func(ctx context.Context, p *directory.Person) string

// emailStrategies is the fixed-order fallback chain: primary per-person
// email endpoint, then secondary lookup by profile URL, then secondary
// lookup by name within the domain.
func (r *FounderResolver) emailStrategies(domain string) []emailStrategy {
	return []emailStrategy{
		func(ctx context.Context, p *directory.Person) string {
			if p.ID == "" {
				return ""
			}
			return r.primary.PersonEmail(ctx, p.ID, "professional")
		},
		func(ctx context.Context, p *directory.Person) string {
			if p.LinkedInURL == "" {
				return ""
			}
			if match := r.secondary.PersonByProfileURL(ctx, p.LinkedInURL); match != nil {
				return match.Email
			}
			return ""
		},
		func(ctx context.Context, p *directory.Person) string {
			if p.FirstName == "" || p.LastName == "" {
				return ""
			}
			if match := r.secondary.PersonByName(ctx, p.FirstName, p.LastName, domain); match != nil {
				return match.Email
			}
			return ""
		},
	}
}

func (r *FounderResolver) resolveEmail(ctx context.Context, person *directory.Person, domain string) string {
	for _, strategy := range r.emailStrategies(domain) {
		if email := strategy(ctx, person); email != "" {
			return email
		}
	}
	return ""
}

// fromDomainSearch is the company-independent fallback: a secondary
// title-filtered people search, each candidate enriched by id, plus one
// reverse primary lookup for candidates still missing an email.
func (r *FounderResolver) fromDomainSearch(ctx context.Context, domain string) []model.Founder {
	candidates := r.secondary.SearchFounders(ctx, domain)
	if len(candidates) == 0 {
		return nil
	}

	results := make([]*model.Founder, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range candidates {
		g.Go(func() error {
			results[i] = r.resolveCandidate(gctx, &candidates[i])
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	out := make([]model.Founder, 0, len(candidates))
	for _, f := range results {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func (r *FounderResolver) resolveCandidate(ctx context.Context, candidate *directory.Person) *model.Founder {
	person := candidate
	if candidate.ID != "" {
		if full := r.secondary.EnrichPerson(ctx, candidate.ID); full != nil {
			person = full
		}
	}

	founder := founderFromPerson(person)
	if founder.Email == "" && person.LinkedInURL != "" {
		founder.Email = r.reverseEmailLookup(ctx, person.LinkedInURL)
	}
	return &founder
}

// reverseEmailLookup crosses back to the primary provider: profile URL
// to primary id, then the primary per-person email endpoint.
func (r *FounderResolver) reverseEmailLookup(ctx context.Context, profileURL string) string {
	match := r.primary.PersonByProfileURL(ctx, profileURL)
	if match == nil || match.ID == "" {
		return ""
	}
	return r.primary.PersonEmail(ctx, match.ID, "professional")
}

func founderFromPerson(p *directory.Person) model.Founder {
	f := model.Founder{
		FullName:    p.FullName,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Title:       p.Title,
		Email:       p.Email,
		LinkedInURL: p.LinkedInURL,
	}
	if f.FirstName == "" && f.FullName != "" {
		f.FirstName, f.LastName = model.SplitFullName(f.FullName)
	}
	return f
}

// dedupFounders collapses founders surfaced by more than one path,
// matching on folded full name or shared profile URL and keeping the
// more complete record. An email always wins over no email.
func dedupFounders(founders []model.Founder) []model.Founder {
	out := make([]model.Founder, 0, len(founders))

	for _, f := range founders {
		matched := false
		for i := range out {
			if !sameFounder(&out[i], &f) {
				continue
			}
			matched = true
			if moreComplete(&f, &out[i]) {
				out[i] = f
			}
			break
		}
		if !matched {
			out = append(out, f)
		}
	}
	return out
}

func sameFounder(a, b *model.Founder) bool {
	if a.LinkedInURL != "" && a.LinkedInURL == b.LinkedInURL {
		return true
	}
	an := strings.ToLower(strings.TrimSpace(a.FullName))
	bn := strings.ToLower(strings.TrimSpace(b.FullName))
	return an != "" && an == bn
}

func moreComplete(candidate, incumbent *model.Founder) bool {
	if (candidate.Email != "") != (incumbent.Email != "") {
		return candidate.Email != ""
	}
	return fieldCount(candidate) > fieldCount(incumbent)
}

func fieldCount(f *model.Founder) int {
	n := 0
	for _, v := range []string{f.FullName, f.Title, f.Email, f.LinkedInURL} {
		if v != "" {
			n++
		}
	}
	return n
}
