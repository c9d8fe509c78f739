package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/cohortviz/internal/domain/model"
)

const utf8BOM = "\ufeff"

// CSVStore reads the tables from comma-separated files in one directory.
// Every call re-reads its file; nothing is cached.
type CSVStore struct {
	dir                string
	awardsFile         string
	participationsFile string
	demographicsFile   string
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore creates a store rooted at dir.
func NewCSVStore(dir string, opts ...Option) *CSVStore {
	s := &CSVStore{
		dir:                dir,
		awardsFile:         AwardsFile,
		participationsFile: ParticipationsFile,
		demographicsFile:   DemographicsFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the input directory.
func (s *CSVStore) Dir() string { return s.dir }

// Awards reads the awards table.
func (s *CSVStore) Awards(ctx context.Context) ([]model.Award, error) {
	var out []model.Award
	err := s.read(ctx, s.awardsFile, AwardColumns, func(f []string) {
		out = append(out, model.Award{AwardID: f[0], Cohort: f[1]})
	})
	return out, err
}

// Participations reads the participation table.
func (s *CSVStore) Participations(ctx context.Context) ([]model.Participation, error) {
	var out []model.Participation
	err := s.read(ctx, s.participationsFile, ParticipationColumns, func(f []string) {
		out = append(out, model.Participation{
			AwardType:      f[0],
			AwardRole:      f[1],
			PersonID:       f[2],
			AwardID:        f[3],
			AwardStartYear: f[4],
		})
	})
	return out, err
}

// Demographics reads the demographics table.
func (s *CSVStore) Demographics(ctx context.Context) ([]model.Demographic, error) {
	var out []model.Demographic
	err := s.read(ctx, s.demographicsFile, DemographicColumns, func(f []string) {
		out = append(out, model.Demographic{PersonID: f[0], Gender: f[1]})
	})
	return out, err
}

// read streams name and calls emit with the required columns of each row, in the
// order given by cols.
func (s *CSVStore) read(ctx context.Context, name string, cols []string, emit func([]string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpenTable, name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w %s: empty file", ErrReadTable, name)
		}
		return fmt.Errorf("%w %s: header: %w", ErrReadTable, name, err)
	}
	idx, err := columnIndex(header, cols)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	fields := make([]string, len(cols))
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrReadTable, name, err)
		}
		for i, j := range idx {
			if j >= len(rec) {
				return fmt.Errorf("%w %s: line %d has %d fields", ErrReadTable, name, line, len(rec))
			}
			fields[i] = rec[j]
		}
		emit(fields)
	}
}

// columnIndex maps each required column to its position in header.
func columnIndex(header, cols []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := pos[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
		idx[i] = j
	}
	return idx, nil
}
