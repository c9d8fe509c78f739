package sampledata

import "os"

// ShowHelp prints usage information for the sample data tool.
func ShowHelp() {
	os.Stdout.WriteString(`cohortviz sample data
=====================

Writes awards.csv, individual_awards.csv and individual_demographics.csv
with a reproducible mix of roles, award types, cohorts and genders.

Usage:
  go run ./cmd/sample-data [options]

Options:
  -out string
        Output directory (default "data")
  -seed int
        Random seed (default 1)
  -awards int
        Number of awards (default 60)
  -people int
        Number of people (default 400)
  -rows int
        Number of participation rows (default 900)
  -cohort-min int
        First cohort (default 1)
  -cohort-max int
        Last in-range cohort (default 9)
  -help
        Show this help message

Examples:
  # Generate and chart
  go run ./cmd/sample-data -out /tmp/data
  COHORTVIZ_INPUT_DIR=/tmp/data COHORTVIZ_OUTPUT_DIR=/tmp go run ./cmd
`)
}
