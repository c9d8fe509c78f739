package filter

// Option applies a configuration option to the Predicate.
type Option func(*Predicate)

// WithAwardType sets the award type rows must carry.
func WithAwardType(awardType string) Option {
	return func(p *Predicate) {
		if awardType != "" {
			p.awardType = awardType
		}
	}
}

// WithExcludedRoles replaces the set of roles matched exactly for exclusion.
func WithExcludedRoles(roles []string) Option {
	return func(p *Predicate) {
		if roles == nil {
			return
		}
		p.excludedRoles = make(map[string]struct{}, len(roles))
		for _, r := range roles {
			p.excludedRoles[r] = struct{}{}
		}
	}
}

// WithExcludedSubstring sets the case-sensitive substring that excludes a role.
// An empty substring disables the check.
func WithExcludedSubstring(sub string) Option {
	return func(p *Predicate) {
		p.excludedSubstring = sub
	}
}
