package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scop-vc/enrich-cli/internal/directory"
	"github.com/scop-vc/enrich-cli/internal/model"
	"github.com/scop-vc/enrich-cli/internal/reason"
)

var resolverOwner = model.Owner{Key: "james", DisplayName: "James", SignatureName: "James"}

func newResolver(primary, secondary directory.Directory, r reason.Adapter) *FounderResolver {
	return NewFounderResolver(primary, secondary, r, 1)
}

func composeAlways(r *mockReason, body string) {
	r.On("ComposeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(body)
}

func TestResolveEmailStopsAtFirstSuccess(t *testing.T) {
	primary := &mockDirectory{name: "primary"}
	secondary := &mockDirectory{name: "secondary"}
	rsn := &mockReason{}
	composeAlways(rsn, "BODY")

	company := &model.Company{
		Name:   "Acme",
		Domain: "acme.com",
		FounderRefs: []model.FounderRef{
			{PersonID: "p1", FullName: "Jane Doe", Title: "CEO"},
		},
	}

	primary.On("EnrichPerson", mock.Anything, "p1").Return(&directory.Person{
		ID:          "p1",
		FullName:    "Jane Doe",
		FirstName:   "Jane",
		LastName:    "Doe",
		LinkedInURL: "https://linkedin.com/in/janedoe",
	})
	primary.On("PersonEmail", mock.Anything, "p1", "professional").Return("")
	secondary.On("PersonByProfileURL", mock.Anything, "https://linkedin.com/in/janedoe").
		Return(&directory.Person{Email: "jane@acme.com"})

	founders := newResolver(primary, secondary, rsn).Resolve(context.Background(), company, reason.VerticalOther, resolverOwner)

	require.Len(t, founders, 1)
	assert.Equal(t, "jane@acme.com", founders[0].Email)
	assert.Equal(t, "BODY", founders[0].GeneratedEmailBody)
	secondary.AssertNotCalled(t, "PersonByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveNameLookupIsLastResort(t *testing.T) {
	primary := &mockDirectory{name: "primary"}
	secondary := &mockDirectory{name: "secondary"}
	rsn := &mockReason{}
	composeAlways(rsn, "BODY")

	company := &model.Company{
		Name:        "Acme",
		Domain:      "acme.com",
		FounderRefs: []model.FounderRef{{PersonID: "p1", FullName: "Jane Doe"}},
	}

	primary.On("EnrichPerson", mock.Anything, "p1").Return(&directory.Person{
		ID: "p1", FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe",
		LinkedInURL: "https://linkedin.com/in/janedoe",
	})
	primary.On("PersonEmail", mock.Anything, "p1", "professional").Return("")
	secondary.On("PersonByProfileURL", mock.Anything, mock.Anything).Return(nil)
	secondary.On("PersonByName", mock.Anything, "Jane", "Doe", "acme.com").
		Return(&directory.Person{Email: "jane@acme.com"})

	founders := newResolver(primary, secondary, rsn).Resolve(context.Background(), company, reason.VerticalOther, resolverOwner)

	require.Len(t, founders, 1)
	assert.Equal(t, "jane@acme.com", founders[0].Email)
}

func TestResolvePendingPersonStillListed(t *testing.T) {
	primary := &mockDirectory{name: "primary"}
	secondary := &mockDirectory{name: "secondary"}
	rsn := &mockReason{}

	company := &model.Company{
		Name:        "Acme",
		Domain:      "acme.com",
		FounderRefs: []model.FounderRef{{PersonID: "p1", FullName: "Jane Doe", Title: "CEO"}},
	}

	primary.On("EnrichPerson", mock.Anything, "p1").
		Return(&directory.Person{ID: "p1", Pending: true})
	primary.On("PersonEmail", mock.Anything, "p1", "professional").Return("")
	secondary.On("PersonByName", mock.Anything, "Jane", "Doe", "acme.com").Return(nil)

	founders := newResolver(primary, secondary, rsn).Resolve(context.Background(), company, reason.VerticalOther, resolverOwner)

	require.Len(t, founders, 1)
	assert.Equal(t, "Jane Doe", founders[0].FullName)
	assert.Equal(t, "CEO", founders[0].Title)
	assert.Empty(t, founders[0].Email)
	assert.Empty(t, founders[0].LinkedInURL)
	assert.Empty(t, founders[0].GeneratedEmailBody, "no body without an email")
	rsn.AssertNotCalled(t, "ComposeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFallbackSearchWithReverseLookup(t *testing.T) {
	primary := &mockDirectory{name: "primary"}
	secondary := &mockDirectory{name: "secondary"}
	rsn := &mockReason{}
	composeAlways(rsn, "BODY")

	company := &model.Company{Name: "Acme", Domain: "acme.com"} // no founder refs

	secondary.On("SearchFounders", mock.Anything, "acme.com").Return([]directory.Person{
		{ID: "a1", FullName: "Jane Doe", Title: "CEO"},
	})
	secondary.On("EnrichPerson", mock.Anything, "a1").Return(&directory.Person{
		ID: "a1", FullName: "Jane Doe", Title: "CEO",
		LinkedInURL: "https://linkedin.com/in/janedoe",
	})
	primary.On("PersonByProfileURL", mock.Anything, "https://linkedin.com/in/janedoe").
		Return(&directory.Person{ID: "p9"})
	primary.On("PersonEmail", mock.Anything, "p9", "professional").Return("jane@acme.com")

	founders := newResolver(primary, secondary, rsn).Resolve(context.Background(), company, reason.VerticalOther, resolverOwner)

	require.Len(t, founders, 1)
	assert.Equal(t, "jane@acme.com", founders[0].Email)
	assert.Equal(t, "BODY", founders[0].GeneratedEmailBody)
}

func TestResolveSkipsRefsWithoutPersonID(t *testing.T) {
	primary := &mockDirectory{name: "primary"}
	secondary := &mockDirectory{name: "secondary"}
	rsn := &mockReason{}
	composeAlways(rsn, "BODY")

	company := &model.Company{
		Name:   "Acme",
		Domain: "acme.com",
		FounderRefs: []model.FounderRef{
			{PersonID: "", FullName: "Ghost Ref"},
			{PersonID: "p1", FullName: "Jane Doe"},
		},
	}

	primary.On("EnrichPerson", mock.Anything, "p1").
		Return(&directory.Person{ID: "p1", FullName: "Jane Doe", Email: "jane@acme.com"})

	founders := newResolver(primary, secondary, rsn).Resolve(context.Background(), company, reason.VerticalOther, resolverOwner)

	require.Len(t, founders, 1)
	assert.Equal(t, "Jane Doe", founders[0].FullName)
}

func TestDedupFounders(t *testing.T) {
	tests := []struct {
		name string
		in   []model.Founder
		want int
	}{
		{
			"same_name_different_case",
			[]model.Founder{{FullName: "Jane Doe"}, {FullName: "jane doe"}},
			1,
		},
		{
			"same_profile_url",
			[]model.Founder{
				{FullName: "Jane Doe", LinkedInURL: "https://linkedin.com/in/jd"},
				{FullName: "J. Doe", LinkedInURL: "https://linkedin.com/in/jd"},
			},
			1,
		},
		{
			"distinct",
			[]model.Founder{{FullName: "Jane Doe"}, {FullName: "John Roe"}},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, dedupFounders(tt.in), tt.want)
		})
	}
}

func TestDedupFoundersPrefersEmail(t *testing.T) {
	in := []model.Founder{
		{FullName: "Jane Doe", Title: "CEO", LinkedInURL: "https://linkedin.com/in/jd"},
		{FullName: "Jane Doe", Email: "jane@acme.com"},
	}
	out := dedupFounders(in)
	require.Len(t, out, 1)
	assert.Equal(t, "jane@acme.com", out[0].Email)

	// Idempotent: running again changes nothing.
	assert.Equal(t, out, dedupFounders(out))
}
