package sampledata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/cohortviz/internal/adapters/repository"
)

// WriteCSV writes the three tables into dir, creating it if needed. Headers match the
// columns the CSV store requires.
func WriteCSV(dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	awards := make([][]string, 0, len(ds.Awards))
	for _, a := range ds.Awards {
		awards = append(awards, []string{a.AwardID, a.Cohort})
	}
	rows := make([][]string, 0, len(ds.Participations))
	for _, p := range ds.Participations {
		rows = append(rows, []string{p.AwardType, p.AwardRole, p.PersonID, p.AwardID, p.AwardStartYear})
	}
	demos := make([][]string, 0, len(ds.Demographics))
	for _, d := range ds.Demographics {
		demos = append(demos, []string{d.PersonID, d.Gender})
	}

	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{repository.AwardsFile, repository.AwardColumns, awards},
		{repository.ParticipationsFile, repository.ParticipationColumns, rows},
		{repository.DemographicsFile, repository.DemographicColumns, demos},
	}
	for _, t := range tables {
		if err := writeTable(filepath.Join(dir, t.name), t.header, t.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
