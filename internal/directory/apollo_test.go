package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scop-vc/enrich-cli/pkg/apollo"
)

func TestApolloSearchFounders_AppliesTitleAllowlist(t *testing.T) {
	titles := []string{"CEO", "Founder"}
	client := &mockApolloClient{}
	client.On("SearchPeople", mock.Anything, apollo.SearchPeopleRequest{
		Domain: "acme.com",
		Titles: titles,
	}).Return([]apollo.Person{
		{ID: "a1", Name: "Jane Doe", Title: "CEO", Email: "jane@acme.com"},
	}, nil)

	founders := NewApollo(client, titles).SearchFounders(context.Background(), "acme.com")

	require.Len(t, founders, 1)
	assert.Equal(t, "jane@acme.com", founders[0].Email)
	client.AssertExpectations(t)
}

func TestApolloSentinelEmailSuppressed(t *testing.T) {
	client := &mockApolloClient{}
	client.On("MatchPerson", mock.Anything, apollo.MatchRequest{ID: "a1"}).Return(&apollo.Person{
		ID:    "a1",
		Name:  "Jane Doe",
		Email: apollo.SentinelEmail,
	}, nil)

	adapter := NewApollo(client, nil)

	person := adapter.EnrichPerson(context.Background(), "a1")
	require.NotNil(t, person)
	assert.Empty(t, person.Email, "locked sentinel must read as no email")

	assert.Empty(t, adapter.PersonEmail(context.Background(), "a1", "professional"))
}

func TestApolloPersonByName_RequiresBothNames(t *testing.T) {
	client := &mockApolloClient{}
	adapter := NewApollo(client, nil)

	assert.Nil(t, adapter.PersonByName(context.Background(), "Jane", "", "acme.com"))
	assert.Nil(t, adapter.PersonByName(context.Background(), "", "Doe", "acme.com"))
	client.AssertNotCalled(t, "MatchPerson")
}

func TestApolloCompanyByDomain_DomainOverrideAndLocation(t *testing.T) {
	client := &mockApolloClient{}
	client.On("OrganizationByDomain", mock.Anything, "acme.com").Return(&apollo.Organization{
		ID:            "o1",
		Name:          "Acme",
		PrimaryDomain: "acme.io",
		City:          "New York",
		State:         "",
		LinkedInURL:   "linkedin.com/company/acme",
	}, nil)

	company := NewApollo(client, nil).CompanyByDomain(context.Background(), "acme.com")

	require.NotNil(t, company)
	assert.Equal(t, "acme.com", company.Domain)
	assert.Equal(t, "New York", company.Location)
	assert.Equal(t, "https://linkedin.com/company/acme", company.LinkedInURL)
}

func TestApolloTransportErrorsAreEmptyResults(t *testing.T) {
	client := &mockApolloClient{}
	client.On("OrganizationByDomain", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	client.On("SearchPeople", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	client.On("MatchPerson", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	adapter := NewApollo(client, nil)
	ctx := context.Background()

	assert.Nil(t, adapter.CompanyByDomain(ctx, "acme.com"))
	assert.Empty(t, adapter.SearchFounders(ctx, "acme.com"))
	assert.Nil(t, adapter.EnrichPerson(ctx, "a1"))
	assert.Nil(t, adapter.PersonByProfileURL(ctx, "https://linkedin.com/in/x"))
	assert.Empty(t, adapter.PersonEmail(ctx, "a1", "professional"))
}
