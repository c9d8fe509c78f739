// Package sampledata generates reproducible synthetic award datasets.
package sampledata

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/cohortviz/internal/domain/filter"
	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/okian/cohortviz/pkg/logger"
)

// ErrInvalidConfig is returned for non-positive sizes or an inverted cohort range.
var ErrInvalidConfig = errors.New("invalid sample data config")

// Generate builds a dataset from cfg. The same seed always yields the same rows.
func Generate(ctx context.Context, cfg Config) (*Dataset, error) {
	if cfg.Awards <= 0 || cfg.People <= 0 || cfg.Participations < 0 {
		return nil, fmt.Errorf("%w: awards=%d people=%d participations=%d", ErrInvalidConfig, cfg.Awards, cfg.People, cfg.Participations)
	}
	if cfg.CohortMin > cfg.CohortMax {
		return nil, fmt.Errorf("%w: cohort range %d-%d", ErrInvalidConfig, cfg.CohortMin, cfg.CohortMax)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible fixtures, not secrets
	ds := &Dataset{
		Awards:         make([]model.Award, cfg.Awards),
		Participations: make([]model.Participation, 0, cfg.Participations),
		Demographics:   make([]model.Demographic, 0, cfg.People),
	}

	span := cfg.CohortMax - cfg.CohortMin + 1
	startYears := make([]int, cfg.Awards)
	for i := range ds.Awards {
		cohort := cfg.CohortMin + rng.Intn(span)
		if rng.Intn(100) < pctOutOfRange {
			cohort = cfg.CohortMax + 1
		}
		ds.Awards[i] = model.Award{AwardID: fmt.Sprintf("AW%04d", i+1), Cohort: strconv.Itoa(cohort)}
		startYears[i] = firstStartYear + cohort - cfg.CohortMin
	}

	people := make([]string, cfg.People)
	for i := range people {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("person id: %w", err)
		}
		people[i] = id.String()

		var gender string
		switch p := rng.Intn(100); {
		case p < pctMan:
			gender = "man"
		case p < pctMan+pctWoman:
			gender = "woman"
		case p < pctMan+pctWoman+pctNonBinary:
			gender = "non-binary"
		default:
			continue
		}
		ds.Demographics = append(ds.Demographics, model.Demographic{PersonID: people[i], Gender: gender})
	}

	for i := 0; i < cfg.Participations; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("context cancelled during generation: %w", err)
			}
		}
		a := rng.Intn(cfg.Awards)
		ds.Participations = append(ds.Participations, model.Participation{
			AwardType:      awardType(rng),
			AwardRole:      role(rng),
			PersonID:       people[rng.Intn(cfg.People)],
			AwardID:        ds.Awards[a].AwardID,
			AwardStartYear: strconv.Itoa(startYears[a]),
		})
	}

	st := ds.Stats()
	logger.Get().Info(ctx, "generated sample data",
		logger.Int("awards", st.Awards),
		logger.Int("people", st.People),
		logger.Int("participations", st.Participations),
		logger.Int("demographics", st.Demographics),
		logger.Int("excluded", st.Excluded),
	)
	return ds, nil
}

func awardType(rng *rand.Rand) string {
	if rng.Intn(100) < pctOtherType {
		return otherTypes[rng.Intn(len(otherTypes))]
	}
	return filter.DefaultAwardType
}

func role(rng *rand.Rand) string {
	switch p := rng.Intn(100); {
	case p < pctPI:
		return piRoles[rng.Intn(len(piRoles))]
	case p < pctPI+pctInternal:
		return internalRoles[rng.Intn(len(internalRoles))]
	default:
		return externalRoles[rng.Intn(len(externalRoles))]
	}
}

// Stats counts the dataset's rows.
func (d *Dataset) Stats() Stats {
	people := make(map[string]struct{})
	for _, p := range d.Participations {
		people[p.PersonID] = struct{}{}
	}
	kept := filter.New().Apply(d.Participations)
	return Stats{
		Awards:         len(d.Awards),
		People:         len(people),
		Participations: len(d.Participations),
		Demographics:   len(d.Demographics),
		Excluded:       len(d.Participations) - len(kept),
	}
}
