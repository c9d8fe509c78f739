// Package service runs the cohort gender pipeline: load, filter, dedupe,
// aggregate and render.
package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/cohortviz/internal/adapters/render"
	"github.com/okian/cohortviz/internal/adapters/repository"
	"github.com/okian/cohortviz/internal/config"
	"github.com/okian/cohortviz/internal/domain/aggregate"
	"github.com/okian/cohortviz/internal/domain/dedupe"
	"github.com/okian/cohortviz/internal/domain/filter"
	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/okian/cohortviz/internal/domain/types"
	"github.com/okian/cohortviz/pkg/logger"
	"github.com/okian/cohortviz/pkg/metrics"
)

// Renderer writes a summary chart into a directory and returns the path and size written.
type Renderer interface {
	Write(ctx context.Context, s model.Summary, dir string) (string, int, error)
}

// Result describes a finished run.
type Result struct {
	RunID    string
	Summary  model.Summary
	Path     string // empty when nothing was rendered
	Bytes    int
	Duration time.Duration
}

// Service runs the pipeline once per call.
type Service struct {
	mu sync.Mutex

	cfg      *config.Config
	store    repository.Store
	filter   *filter.Predicate
	renderer Renderer
	metrics  *metrics.Manager
	logger   logger.Logger

	level types.Level
	ready bool
}

// New constructs a new Service. Missing components are built from the config on first use.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// init fills in every component not supplied through options.
func (s *Service) init() error {
	if s.ready {
		return nil
	}
	if s.cfg == nil {
		s.cfg = config.New(context.Background())
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	level, err := types.ParseLevel(s.cfg.Level)
	if err != nil {
		return err
	}
	s.level = level

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}
	if s.store == nil {
		s.store = repository.NewCSVStore(s.cfg.InputDir)
	}
	if s.filter == nil {
		s.filter = filter.New(
			filter.WithAwardType(s.cfg.AwardType),
			filter.WithExcludedRoles(s.cfg.ExcludedRoles),
			filter.WithExcludedSubstring(s.cfg.ExcludedRoleSubstring),
		)
	}
	if s.renderer == nil {
		r, err := render.New(
			render.WithPalette(s.cfg.Palette[0], s.cfg.Palette[1]),
			render.WithGridColor(s.cfg.GridColor),
			render.WithTextColor(s.cfg.TextColor),
			render.WithFormat(render.Format(s.cfg.Format)),
		)
		if err != nil {
			return err
		}
		s.renderer = r
	}
	s.ready = true
	return nil
}

// Run executes the whole pipeline and writes the chart into the output directory.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	return s.execute(ctx, true)
}

// Summarize executes the pipeline without rendering.
func (s *Service) Summarize(ctx context.Context) (*Result, error) {
	return s.execute(ctx, false)
}

func (s *Service) execute(ctx context.Context, draw bool) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.init(); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := s.logger.Named("pipeline").With(logger.String("run_id", res.RunID))
	log.Info(ctx, "run started",
		logger.String("input_dir", s.cfg.InputDir),
		logger.String("level", s.level.String()),
		logger.Int("cohort_min", s.cfg.CohortMin),
		logger.Int("cohort_max", s.cfg.CohortMax),
		logger.Bool("render", draw),
	)

	err := s.pipeline(ctx, log, res, draw)
	res.Duration = time.Since(start)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.RecordRun(outcome, res.Duration.Seconds())
	if s.cfg.MetricsFile != "" {
		if werr := s.metrics.WriteTextfile(s.cfg.MetricsFile); werr != nil {
			log.Error(ctx, "failed to write metrics", logger.String("path", s.cfg.MetricsFile), logger.Error(werr))
			if err == nil {
				err = werr
			}
		}
	}

	if err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return nil, err
	}
	log.Info(ctx, "run finished",
		logger.Int("cohorts", len(res.Summary.Cohorts)),
		logger.Int("n", res.Summary.Total()),
		logger.String("output", res.Path),
		logger.Float64("seconds", res.Duration.Seconds()),
	)
	return res, nil
}

func (s *Service) pipeline(ctx context.Context, log logger.Logger, res *Result, draw bool) error {
	var (
		awards []model.Award
		rows   []model.Participation
		demos  []model.Demographic
		recs   []model.Record
	)

	err := s.stage(ctx, log, metrics.StageLoad, func() (int, error) {
		var err error
		if awards, err = s.store.Awards(ctx); err != nil {
			return 0, err
		}
		if rows, err = s.store.Participations(ctx); err != nil {
			return 0, err
		}
		if demos, err = s.store.Demographics(ctx); err != nil {
			return 0, err
		}
		s.metrics.RecordRowsLoaded(repository.AwardsFile, len(awards))
		s.metrics.RecordRowsLoaded(repository.ParticipationsFile, len(rows))
		s.metrics.RecordRowsLoaded(repository.DemographicsFile, len(demos))
		return len(rows), nil
	})
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{metrics.StageFilter, func() (int, error) {
			rows = s.filter.Apply(rows)
			return len(rows), nil
		}},
		{metrics.StageDedupe, func() (int, error) {
			rows = dedupe.Unique(ctx, rows, s.level)
			return len(rows), nil
		}},
		{metrics.StageCohortJoin, func() (int, error) {
			recs = aggregate.JoinCohorts(rows, awards)
			return len(recs), nil
		}},
		{metrics.StageCohortUnmatched, func() (int, error) {
			var dropped int
			var err error
			recs, dropped, err = aggregate.Coerce(recs, s.cfg.DropUnmatchedAwards)
			if dropped > 0 {
				log.Warn(ctx, "dropped rows without a cohort", logger.Int("rows", dropped))
			}
			return len(recs), err
		}},
		{metrics.StageCohortRange, func() (int, error) {
			recs = aggregate.InRange(recs, s.cfg.CohortMin, s.cfg.CohortMax)
			return len(recs), nil
		}},
		{metrics.StageGenderJoin, func() (int, error) {
			recs = aggregate.JoinGenders(recs, demos)
			return len(recs), nil
		}},
		{metrics.StageAggregate, func() (int, error) {
			sum, err := aggregate.Summarize(recs, s.level, s.cfg.CohortMin, s.cfg.CohortMax)
			if err != nil {
				return 0, err
			}
			res.Summary = sum
			return len(sum.Cohorts), nil
		}},
	}
	prev := len(rows)
	for _, st := range steps {
		var n int
		err := s.stage(ctx, log, st.name, func() (int, error) {
			var err error
			n, err = st.fn()
			return n, err
		})
		if err != nil {
			return err
		}
		if st.name != metrics.StageAggregate {
			s.metrics.RecordRowsDropped(st.name, prev-n)
			prev = n
		}
	}

	s.recordSummary(ctx, log, res.Summary)
	if !draw {
		return nil
	}

	return s.stage(ctx, log, metrics.StageRender, func() (int, error) {
		path, n, err := s.renderer.Write(ctx, res.Summary, s.cfg.OutputDir)
		if err != nil {
			return 0, err
		}
		res.Path, res.Bytes = path, n
		s.metrics.UpdateOutputBytes(n)
		return n, nil
	})
}

// stage times fn and records its row count, or its error, under name.
func (s *Service) stage(ctx context.Context, log logger.Logger, name string, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	n, err := fn()
	s.metrics.ObserveStageDuration(name, time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordStageError(name)
		return fmt.Errorf("%s: %w", name, err)
	}
	s.metrics.UpdateStageRows(name, n)
	log.Debug(ctx, "stage finished", logger.String("stage", name), logger.Int("rows", n))
	return nil
}

func (s *Service) recordSummary(ctx context.Context, log logger.Logger, sum model.Summary) {
	for _, c := range sum.Cohorts {
		s.metrics.UpdateParticipants(c.Cohort, types.GenderMan, c.Men)
		s.metrics.UpdateParticipants(c.Cohort, types.GenderWoman, c.Women)
	}
	s.metrics.UpdateSummary(len(sum.Cohorts), sum.Total())

	other := slices.DeleteFunc(slices.Clone(sum.Genders), func(g string) bool {
		return g == types.GenderMan || g == types.GenderWoman
	})
	if len(other) > 0 {
		log.Warn(ctx, "genders outside men and women are not counted",
			logger.Strings("genders", other),
			logger.Int("uncounted", sum.Rows-sum.Total()),
		)
	}
}
