package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/okian/cohortviz/internal/domain/types"
)

// Percentages returns each bucket's share of men+women, rounded half-to-even
// independently. The two values are not normalised to sum to 100. A zero total
// yields 0 and 0.
func Percentages(men, women int) (int, int) {
	sum := men + women
	if sum == 0 {
		return 0, 0
	}
	return percent(men, sum), percent(women, sum)
}

func percent(part, sum int) int {
	return int(math.RoundToEven(float64(part*100) / float64(sum)))
}

// Summarize counts men and women per cohort. Cohorts are the distinct values present in
// records, ascending. Genders outside the two buckets are listed in Genders but never counted.
func Summarize(records []model.Record, level types.Level, lo, hi int) (model.Summary, error) {
	if lo > hi {
		return model.Summary{}, fmt.Errorf("%w: %d > %d", ErrInvalidRange, lo, hi)
	}

	counts := make(map[int]*model.CohortCount)
	genders := make(map[string]struct{})
	for _, r := range records {
		c, ok := counts[r.Cohort]
		if !ok {
			c = &model.CohortCount{Cohort: r.Cohort}
			counts[r.Cohort] = c
		}
		if r.Gender != "" {
			genders[r.Gender] = struct{}{}
		}
		switch r.Gender {
		case types.GenderMan:
			c.Men++
		case types.GenderWoman:
			c.Women++
		}
	}

	s := model.Summary{
		Level:     level,
		CohortMin: lo,
		CohortMax: hi,
		Cohorts:   make([]model.CohortCount, 0, len(counts)),
		Genders:   make([]string, 0, len(genders)),
		Rows:      len(records),
	}
	for _, c := range counts {
		c.MenPercent, c.WomenPercent = Percentages(c.Men, c.Women)
		s.Cohorts = append(s.Cohorts, *c)
	}
	sort.Slice(s.Cohorts, func(i, j int) bool { return s.Cohorts[i].Cohort < s.Cohorts[j].Cohort })
	for g := range genders {
		s.Genders = append(s.Genders, g)
	}
	sort.Strings(s.Genders)
	s.N = s.Total()
	return s, nil
}
