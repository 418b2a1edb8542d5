package enrich

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/scop-vc/enrich-cli/internal/directory"
	"github.com/scop-vc/enrich-cli/internal/investor"
	"github.com/scop-vc/enrich-cli/internal/model"
	"github.com/scop-vc/enrich-cli/internal/reason"
)

// --- Directory mock ---

type mockDirectory struct {
	mock.Mock
	name string
}

func (m *mockDirectory) Name() string { return m.name }

func (m *mockDirectory) CompanyByDomain(ctx context.Context, domain string) *model.Company {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Company)
}

func (m *mockDirectory) SearchFounders(ctx context.Context, domain string) []directory.Person {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]directory.Person)
}

func (m *mockDirectory) EnrichPerson(ctx context.Context, personID string) *directory.Person {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*directory.Person)
}

func (m *mockDirectory) PersonByProfileURL(ctx context.Context, url string) *directory.Person {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*directory.Person)
}

func (m *mockDirectory) PersonByName(ctx context.Context, firstName, lastName, domain string) *directory.Person {
	args := m.Called(ctx, firstName, lastName, domain)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*directory.Person)
}

func (m *mockDirectory) PersonEmail(ctx context.Context, personID, kind string) string {
	args := m.Called(ctx, personID, kind)
	return args.String(0)
}

// --- Reasoning mock ---

type mockReason struct {
	mock.Mock
}

func (m *mockReason) ClassifyIndustry(ctx context.Context, company *model.Company) reason.Vertical {
	args := m.Called(ctx, company)
	return args.Get(0).(reason.Vertical)
}

func (m *mockReason) ComposeEmail(company *model.Company, founder *model.Founder, vertical reason.Vertical, owner model.Owner) string {
	args := m.Called(company, founder, vertical, owner)
	return args.String(0)
}

// --- Investor adapter mock ---

type mockInvestorAdapter struct {
	mock.Mock
}

func (m *mockInvestorAdapter) ClassifyInvestors(ctx context.Context, names []string) (*investor.Classification, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*investor.Classification), args.Error(1)
}

func (m *mockInvestorAdapter) RankInvestors(ctx context.Context, names []string, companyName, companyContext string, topN int) ([]string, error) {
	args := m.Called(ctx, names, companyName, companyContext, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockInvestorAdapter) ResolveDomain(ctx context.Context, name string) (*investor.DomainResolution, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*investor.DomainResolution), args.Error(1)
}
