package sampledata

import "github.com/okian/cohortviz/internal/domain/model"

// Config holds configuration for a synthetic dataset.
type Config struct {
	Seed           int64 // Same seed, same dataset
	Awards         int   // Number of awards
	People         int   // Number of distinct people
	Participations int   // Number of participation rows
	CohortMin      int   // First cohort assigned to awards
	CohortMax      int   // Last in-range cohort; a few awards land one past it
	OutputDir      string
}

// DefaultConfig returns a small dataset shaped like the real inputs.
func DefaultConfig() Config {
	return Config{
		Seed:           1,
		Awards:         60,
		People:         400,
		Participations: 900,
		CohortMin:      1,
		CohortMax:      9,
		OutputDir:      "data",
	}
}

// Dataset is one generated set of the three input tables.
type Dataset struct {
	Awards         []model.Award
	Participations []model.Participation
	Demographics   []model.Demographic
}

// Stats summarises a generated dataset.
type Stats struct {
	Awards         int
	People         int
	Participations int
	Demographics   int
	Excluded       int // rows the default filter removes
}
