// Package filter selects the external team members of one award type.
package filter

import (
	"strings"

	"github.com/okian/cohortviz/internal/domain/model"
)

// Defaults for the external team member predicate.
const (
	DefaultAwardType         = "it"
	DefaultExcludedSubstring = "internal"
)

// DefaultExcludedRoles are the principal-investigator-like roles.
func DefaultExcludedRoles() []string {
	return []string{"pi", "co-pi", "former pi", "former co-pi"}
}

// Predicate decides whether a participation row is an external team member.
type Predicate struct {
	awardType         string
	excludedRoles     map[string]struct{}
	excludedSubstring string
}

// New creates a Predicate with the default award type and exclusions.
func New(opts ...Option) *Predicate {
	p := &Predicate{
		awardType:         DefaultAwardType,
		excludedSubstring: DefaultExcludedSubstring,
	}
	WithExcludedRoles(DefaultExcludedRoles())(p)

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Match reports whether row has the award type, a role outside the excluded set
// and a role without the excluded substring. All comparisons are case-sensitive.
func (p *Predicate) Match(row model.Participation) bool {
	if row.AwardType != p.awardType {
		return false
	}
	if _, excluded := p.excludedRoles[row.AwardRole]; excluded {
		return false
	}
	if p.excludedSubstring != "" && strings.Contains(row.AwardRole, p.excludedSubstring) {
		return false
	}
	return true
}

// Apply returns the matching rows in input order.
func (p *Predicate) Apply(rows []model.Participation) []model.Participation {
	out := make([]model.Participation, 0, len(rows))
	for _, r := range rows {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
