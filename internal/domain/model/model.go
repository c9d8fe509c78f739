// Package model contains domain models passed between layers.
package model

import (
	"fmt"

	"github.com/okian/cohortviz/internal/domain/types"
)

// Award is a row of awards.csv. Cohort stays raw until the working table coerces it.
type Award struct {
	AwardID string
	Cohort  string
}

// Participation is a row of individual_awards.csv.
type Participation struct {
	AwardType      string
	AwardRole      string
	PersonID       string
	AwardID        string
	AwardStartYear string
}

// Demographic is a row of individual_demographics.csv.
type Demographic struct {
	PersonID string
	Gender   string // open domain; only "man" and "woman" are counted
}

// Record is one row of the working table.
type Record struct {
	PersonID       string
	AwardID        string
	AwardStartYear string
	AwardRole      string

	RawCohort string // cohort as read from awards.csv
	HasCohort bool   // false when the award id had no match
	Cohort    int    // valid after coercion

	Gender string
}

// CohortCount is one row of the summary table.
type CohortCount struct {
	Cohort       int `json:"cohort" yaml:"cohort"`
	Men          int `json:"men" yaml:"men"`
	Women        int `json:"women" yaml:"women"`
	MenPercent   int `json:"men_percent" yaml:"men_percent"`
	WomenPercent int `json:"women_percent" yaml:"women_percent"`
}

// Total is the number of counted participants in the cohort.
func (c CohortCount) Total() int { return c.Men + c.Women }

// Summary is the per-cohort reduction of the working table.
type Summary struct {
	Level     types.Level   `json:"level" yaml:"level"`
	CohortMin int           `json:"cohort_min" yaml:"cohort_min"`
	CohortMax int           `json:"cohort_max" yaml:"cohort_max"`
	Cohorts   []CohortCount `json:"cohorts" yaml:"cohorts"`
	Genders   []string      `json:"genders" yaml:"genders"` // distinct non-empty genders seen
	Rows      int           `json:"rows" yaml:"rows"`       // working-table rows, third genders included
	N         int           `json:"n" yaml:"n"`
}

// Total sums men and women over all cohorts.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Cohorts {
		n += c.Total()
	}
	return n
}

// Title is the two-line chart title.
func (s Summary) Title() string {
	return fmt.Sprintf("Gender of other External Team Members across Cohorts %d-%d,\n%s-Level (n=%d)",
		s.CohortMin, s.CohortMax, s.Level.Title(), s.Total())
}
