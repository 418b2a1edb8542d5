// Package listsource maps caller-supplied list source tags to owning
// team members. The check runs before any external call so unknown tags
// are shed without spending provider quota.
package listsource

import (
	"strings"

	"github.com/scop-vc/enrich-cli/internal/model"
)

// Authorization is the outcome of resolving a list source tag.
type Authorization struct {
	Authorized bool
	Owner      model.Owner
}

// Resolver matches tags against a configured, ordered owner table.
type Resolver struct {
	owners []model.Owner
}

// NewResolver creates a resolver over the given owner table. Table
// order is the tie-break when a tag matches more than one key.
func NewResolver(owners []model.Owner) *Resolver {
	return &Resolver{owners: owners}
}

// Resolve checks the tag for containment of any configured owner key,
// case-insensitively. "james-sales-2024" matches key "james". The first
// configured key that matches wins.
func (r *Resolver) Resolve(tag string) Authorization {
	folded := strings.ToLower(strings.TrimSpace(tag))
	if folded == "" {
		return Authorization{}
	}
	for _, owner := range r.owners {
		if key := strings.ToLower(owner.Key); key != "" && strings.Contains(folded, key) {
			return Authorization{Authorized: true, Owner: owner}
		}
	}
	return Authorization{}
}
