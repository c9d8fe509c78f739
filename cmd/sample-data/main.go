package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/cohortviz/internal/sampledata"
	"github.com/okian/cohortviz/pkg/logger"
)

const defaultTimeout = time.Minute

func main() {
	def := sampledata.DefaultConfig()
	var (
		out       = flag.String("out", def.OutputDir, "Output directory")
		seed      = flag.Int64("seed", def.Seed, "Random seed")
		awards    = flag.Int("awards", def.Awards, "Number of awards")
		people    = flag.Int("people", def.People, "Number of people")
		rows      = flag.Int("rows", def.Participations, "Number of participation rows")
		cohortMin = flag.Int("cohort-min", def.CohortMin, "First cohort")
		cohortMax = flag.Int("cohort-max", def.CohortMax, "Last in-range cohort")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := sampledata.Config{
		Seed:           *seed,
		Awards:         *awards,
		People:         *people,
		Participations: *rows,
		CohortMin:      *cohortMin,
		CohortMax:      *cohortMax,
		OutputDir:      *out,
	}

	ds, err := sampledata.Generate(ctx, cfg)
	if err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}
	if err := sampledata.WriteCSV(cfg.OutputDir, ds); err != nil {
		logger.Get().Error(ctx, "write failed", logger.Error(err))
		os.Exit(1)
	}
	logger.Get().Info(ctx, "sample data written", logger.String("dir", cfg.OutputDir))
}
