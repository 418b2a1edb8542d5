package listsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scop-vc/enrich-cli/internal/model"
)

func testOwners() []model.Owner {
	return []model.Owner{
		{Key: "james", Email: "james@scopvc.com", DisplayName: "James"},
		{Key: "zi", Email: "zi@scopvc.com", DisplayName: "Zi"},
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testOwners())

	tests := []struct {
		name       string
		tag        string
		authorized bool
		owner      string
	}{
		{"exact_key", "james", true, "james@scopvc.com"},
		{"containment", "james-sales-2024", true, "james@scopvc.com"},
		{"case_insensitive", "JAMES_Q3_List", true, "james@scopvc.com"},
		{"second_owner", "outbound-zi-march", true, "zi@scopvc.com"},
		{"first_match_wins", "zi-and-james", true, "james@scopvc.com"},
		{"no_match", "unknown-list", false, ""},
		{"empty", "", false, ""},
		{"whitespace_only", "   ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := r.Resolve(tt.tag)
			assert.Equal(t, tt.authorized, auth.Authorized)
			assert.Equal(t, tt.owner, auth.Owner.Email)
		})
	}
}

func TestResolveIsPure(t *testing.T) {
	r := NewResolver(testOwners())
	first := r.Resolve("james-sales")
	second := r.Resolve("james-sales")
	require.Equal(t, first, second)
}

func TestResolveEmptyOwnerKeyNeverMatches(t *testing.T) {
	r := NewResolver([]model.Owner{{Key: "", Email: "nobody@scopvc.com"}})
	assert.False(t, r.Resolve("anything").Authorized)
}
