package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTable(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestCSVStore_LoadsTables(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeTable(t, dir, AwardsFile, "award_id,title,cohort\nA1,First,2\nA2,Second,3.0\n")
	writeTable(t, dir, ParticipationsFile,
		"person_id,award_id,award_type,award_role,award_start_year,extra\n"+
			"P1,A1,it,co-investigator,2019,x\n"+
			"P2,A1,it,\"advisor, internal\",2019,y\n")
	writeTable(t, dir, DemographicsFile, "\ufeffperson_id,gender\nP1,man\nP2,\n")

	store := NewCSVStore(dir)

	awards, err := store.Awards(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(awards) != 2 {
		t.Fatalf("expected 2 awards, got %d", len(awards))
	}
	if awards[1].AwardID != "A2" || awards[1].Cohort != "3.0" {
		t.Errorf("unexpected award row %+v", awards[1])
	}

	rows, err := store.Participations(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 participation rows, got %d", len(rows))
	}
	if rows[0].PersonID != "P1" || rows[0].AwardType != "it" || rows[0].AwardStartYear != "2019" {
		t.Errorf("columns not located by name: %+v", rows[0])
	}
	if rows[1].AwardRole != "advisor, internal" {
		t.Errorf("expected quoted role, got %q", rows[1].AwardRole)
	}

	demos, err := store.Demographics(ctx)
	if err != nil {
		t.Fatalf("BOM header should be tolerated: %v", err)
	}
	if len(demos) != 2 || demos[0].Gender != "man" || demos[1].Gender != "" {
		t.Errorf("unexpected demographics %+v", demos)
	}
}

func TestCSVStore_MissingFile(t *testing.T) {
	store := NewCSVStore(t.TempDir())

	_, err := store.Awards(context.Background())
	if !errors.Is(err, ErrOpenTable) {
		t.Fatalf("expected ErrOpenTable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the os error to be wrapped, got %v", err)
	}
}

func TestCSVStore_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, DemographicsFile, "person_id,sex\nP1,man\n")

	_, err := NewCSVStore(dir).Demographics(context.Background())
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestCSVStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, AwardsFile, "")

	_, err := NewCSVStore(dir).Awards(context.Background())
	if !errors.Is(err, ErrReadTable) {
		t.Fatalf("expected ErrReadTable, got %v", err)
	}
}

func TestCSVStore_ShortRow(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, AwardsFile, "award_id,cohort\nA1\n")

	_, err := NewCSVStore(dir).Awards(context.Background())
	if !errors.Is(err, ErrReadTable) {
		t.Fatalf("expected ErrReadTable, got %v", err)
	}
}

func TestCSVStore_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, AwardsFile, "award_id,cohort\n")

	awards, err := NewCSVStore(dir).Awards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(awards) != 0 {
		t.Errorf("expected no rows, got %d", len(awards))
	}
}

func TestCSVStore_FileNameOptions(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "grants.csv", "award_id,cohort\nG1,4\n")

	store := NewCSVStore(dir, WithAwardsFile("grants.csv"), WithParticipationsFile(""), WithDemographicsFile("d.csv"))
	if store.participationsFile != ParticipationsFile {
		t.Errorf("empty name should keep the default, got %q", store.participationsFile)
	}
	if store.demographicsFile != "d.csv" {
		t.Errorf("expected d.csv, got %q", store.demographicsFile)
	}

	awards, err := store.Awards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(awards) != 1 || awards[0].AwardID != "G1" {
		t.Errorf("unexpected awards %+v", awards)
	}
}

func TestCSVStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVStore(t.TempDir()).Awards(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
