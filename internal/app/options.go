package service

import (
	"github.com/okian/cohortviz/internal/adapters/repository"
	"github.com/okian/cohortviz/internal/config"
	"github.com/okian/cohortviz/internal/domain/filter"
	"github.com/okian/cohortviz/pkg/logger"
	"github.com/okian/cohortviz/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig sets the run configuration. Components not given explicitly are built from it.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithStore replaces the CSV store built from the input directory.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFilter replaces the participation filter built from the config.
func WithFilter(p *filter.Predicate) Option {
	return func(s *Service) {
		if p != nil {
			s.filter = p
		}
	}
}

// WithRenderer replaces the chart renderer built from the config.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithMetrics sets the metrics manager; the process-wide manager is used otherwise.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}
