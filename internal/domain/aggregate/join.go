// Package aggregate turns filtered participation rows into per-cohort gender counts.
package aggregate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/cohortviz/internal/domain/model"
)

// JoinCohorts left-joins rows to awards on award id. Rows without a matching award keep
// HasCohort=false; an award id listed more than once yields one record per listing.
func JoinCohorts(rows []model.Participation, awards []model.Award) []model.Record {
	byAward := make(map[string][]string, len(awards))
	for _, a := range awards {
		byAward[a.AwardID] = append(byAward[a.AwardID], a.Cohort)
	}

	out := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		base := model.Record{
			PersonID:       r.PersonID,
			AwardID:        r.AwardID,
			AwardStartYear: r.AwardStartYear,
			AwardRole:      r.AwardRole,
		}
		cohorts, ok := byAward[r.AwardID]
		if !ok {
			out = append(out, base)
			continue
		}
		for _, c := range cohorts {
			rec := base
			rec.RawCohort = c
			rec.HasCohort = true
			out = append(out, rec)
		}
	}
	return out
}

// Coerce parses every record's cohort as an integer. A record whose cohort is null
// (no matching award, or an empty cohort cell) fails with ErrCohortCoercion unless
// dropNull is set, in which case it is dropped and counted. Non-numeric cohorts always fail.
func Coerce(records []model.Record, dropNull bool) ([]model.Record, int, error) {
	out := make([]model.Record, 0, len(records))
	dropped := 0
	for _, r := range records {
		raw := strings.TrimSpace(r.RawCohort)
		if !r.HasCohort || raw == "" {
			if dropNull {
				dropped++
				continue
			}
			return nil, dropped, fmt.Errorf("%w: award %q has no cohort", ErrCohortCoercion, r.AwardID)
		}
		c, err := ParseCohort(raw)
		if err != nil {
			return nil, dropped, fmt.Errorf("award %q: %w", r.AwardID, err)
		}
		r.Cohort = c
		out = append(out, r)
	}
	return out, dropped, nil
}

// ParseCohort accepts integers and integral-looking floats ("3", "3.0"). Floats are
// truncated toward zero.
func ParseCohort(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrCohortCoercion, raw)
	}
	return int(math.Trunc(f)), nil
}

// InRange keeps records with lo <= cohort <= hi.
func InRange(records []model.Record, lo, hi int) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Cohort >= lo && r.Cohort <= hi {
			out = append(out, r)
		}
	}
	return out
}

// JoinGenders inner-joins records to demographics on person id. Records without a
// demographic row are dropped; a person listed more than once yields one record per listing.
func JoinGenders(records []model.Record, demos []model.Demographic) []model.Record {
	byPerson := make(map[string][]string, len(demos))
	for _, d := range demos {
		byPerson[d.PersonID] = append(byPerson[d.PersonID], d.Gender)
	}

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		for _, g := range byPerson[r.PersonID] {
			rec := r
			rec.Gender = g
			out = append(out, rec)
		}
	}
	return out
}
