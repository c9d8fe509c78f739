// Package repository loads the award, participation and demographic tables.
package repository

import (
	"context"

	"github.com/okian/cohortviz/internal/domain/model"
)

// Table file names inside the input directory.
const (
	AwardsFile         = "awards.csv"
	ParticipationsFile = "individual_awards.csv"
	DemographicsFile   = "individual_demographics.csv"
)

// Required columns per table. Extra columns are ignored.
var (
	AwardColumns         = []string{"award_id", "cohort"}
	ParticipationColumns = []string{"award_type", "award_role", "person_id", "award_id", "award_start_year"}
	DemographicColumns   = []string{"person_id", "gender"}
)

// Store provides read access to the three input tables.
type Store interface {
	// Awards returns every row of the awards table in file order.
	Awards(ctx context.Context) ([]model.Award, error)
	// Participations returns every row of the participation table in file order.
	Participations(ctx context.Context) ([]model.Participation, error)
	// Demographics returns every row of the demographics table in file order.
	Demographics(ctx context.Context) ([]model.Demographic, error)
}
