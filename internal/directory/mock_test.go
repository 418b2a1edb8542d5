package directory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/scop-vc/enrich-cli/pkg/apollo"
	"github.com/scop-vc/enrich-cli/pkg/specter"
)

// --- Specter client mock ---

type mockSpecterClient struct {
	mock.Mock
}

func (m *mockSpecterClient) CompanyByDomain(ctx context.Context, domain string) (*specter.Company, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*specter.Company), args.Error(1)
}

func (m *mockSpecterClient) Person(ctx context.Context, personID string) (*specter.Person, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*specter.Person), args.Error(1)
}

func (m *mockSpecterClient) PersonByLinkedIn(ctx context.Context, linkedinURL string) (*specter.Person, error) {
	args := m.Called(ctx, linkedinURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*specter.Person), args.Error(1)
}

func (m *mockSpecterClient) PersonEmail(ctx context.Context, personID, emailType string) (string, error) {
	args := m.Called(ctx, personID, emailType)
	return args.String(0), args.Error(1)
}

// --- Apollo client mock ---

type mockApolloClient struct {
	mock.Mock
}

func (m *mockApolloClient) OrganizationByDomain(ctx context.Context, domain string) (*apollo.Organization, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apollo.Organization), args.Error(1)
}

func (m *mockApolloClient) SearchPeople(ctx context.Context, req apollo.SearchPeopleRequest) ([]apollo.Person, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apollo.Person), args.Error(1)
}

func (m *mockApolloClient) MatchPerson(ctx context.Context, req apollo.MatchRequest) (*apollo.Person, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apollo.Person), args.Error(1)
}
