package repository

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithAwardsFile overrides the awards file name.
func WithAwardsFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.awardsFile = name
		}
	}
}

// WithParticipationsFile overrides the participation file name.
func WithParticipationsFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.participationsFile = name
		}
	}
}

// WithDemographicsFile overrides the demographics file name.
func WithDemographicsFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.demographicsFile = name
		}
	}
}
