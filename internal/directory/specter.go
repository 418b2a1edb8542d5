package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/scop-vc/enrich-cli/internal/model"
	"github.com/scop-vc/enrich-cli/pkg/specter"
)

// specterDirectory adapts the Specter API to the Directory surface.
// Specter is the primary provider: its company records embed founder
// references and investor names.
type specterDirectory struct {
	client specter.Client
}

// NewSpecter wraps a Specter client as a Directory.
func NewSpecter(client specter.Client) Directory {
	return &specterDirectory{client: client}
}

func (d *specterDirectory) Name() string { return "specter" }

func (d *specterDirectory) CompanyByDomain(ctx context.Context, domain string) *model.Company {
	raw, err := d.client.CompanyByDomain(ctx, domain)
	if err != nil {
		zap.L().Warn("specter: company lookup failed", zap.String("domain", domain), zap.Error(err))
		return nil
	}
	if raw == nil {
		return nil
	}

	company := &model.Company{
		ID:               raw.ID,
		Name:             raw.OrganizationName,
		Domain:           domain, // requested domain wins over provider echo
		Description:      raw.Description,
		ShortDescription: raw.Tagline,
		Keywords:         raw.Tags,
		Location:         joinLocation(raw.HQ.City, raw.HQ.Region),
		EmployeeCount:    raw.EmployeeCount,
		LinkedInURL:      normalizeURL(raw.Socials.LinkedIn.URL),
		WebsiteURL:       raw.Website,
		FoundedYear:      raw.FoundedYear,
		InvestorNames:    raw.Investors,
	}
	if len(raw.Industries) > 0 {
		company.Industry = raw.Industries[0]
	}
	for _, ref := range raw.FounderInfo {
		company.FounderRefs = append(company.FounderRefs, model.FounderRef{
			PersonID: ref.SpecterPersonID,
			FullName: ref.FullName,
			Title:    ref.Title,
		})
	}
	return company
}

func (d *specterDirectory) SearchFounders(ctx context.Context, domain string) []Person {
	// Specter has no standalone people search; founder candidates come
	// embedded in the company record.
	company := d.CompanyByDomain(ctx, domain)
	if company == nil {
		return nil
	}
	people := make([]Person, 0, len(company.FounderRefs))
	for _, ref := range company.FounderRefs {
		first, last := model.SplitFullName(ref.FullName)
		people = append(people, Person{
			ID:        ref.PersonID,
			FullName:  ref.FullName,
			FirstName: first,
			LastName:  last,
			Title:     ref.Title,
		})
	}
	return people
}

func (d *specterDirectory) EnrichPerson(ctx context.Context, personID string) *Person {
	raw, err := d.client.Person(ctx, personID)
	if err != nil {
		zap.L().Warn("specter: person lookup failed", zap.String("person_id", personID), zap.Error(err))
		return nil
	}
	return fromSpecterPerson(raw)
}

func (d *specterDirectory) PersonByProfileURL(ctx context.Context, url string) *Person {
	raw, err := d.client.PersonByLinkedIn(ctx, url)
	if err != nil {
		zap.L().Warn("specter: linkedin lookup failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	return fromSpecterPerson(raw)
}

func (d *specterDirectory) PersonByName(ctx context.Context, firstName, lastName, domain string) *Person {
	// Specter cannot search by name; the secondary provider covers this leg.
	return nil
}

func (d *specterDirectory) PersonEmail(ctx context.Context, personID, kind string) string {
	email, err := d.client.PersonEmail(ctx, personID, kind)
	if err != nil {
		zap.L().Warn("specter: email lookup failed", zap.String("person_id", personID), zap.Error(err))
		return ""
	}
	return email
}

func fromSpecterPerson(raw *specter.Person) *Person {
	if raw == nil {
		return nil
	}
	p := &Person{
		ID:          raw.PersonID,
		FullName:    raw.FullName,
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Title:       raw.CurrentPositionTitle,
		LinkedInURL: raw.LinkedInURL,
		Pending:     raw.Pending,
	}
	if p.FullName == "" && (p.FirstName != "" || p.LastName != "") {
		p.FullName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	if p.FirstName == "" && p.FullName != "" {
		p.FirstName, p.LastName = model.SplitFullName(p.FullName)
	}
	return p
}

// joinLocation assembles "City, Region" dropping empty parts, so a
// missing region never produces "City, ".
func joinLocation(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// normalizeURL prefixes scheme-less provider links with https://.
func normalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}
