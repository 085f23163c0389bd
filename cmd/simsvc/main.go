package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"stagesim/internal/combat"
	"stagesim/internal/config"
	"stagesim/internal/encounter"
	"stagesim/internal/logger"
)

func main() {
	log := logrus.NewEntry(logger.FromEnv()).WithField("service", "simsvc")

	settings, err := config.LoadRunSettings()
	if err != nil {
		log.WithError(err).Fatal("load settings")
	}

	var saveLog bool
	var saveUp int
	flag.StringVar(&settings.ConfigDir, "config", settings.ConfigDir, "config dir")
	flag.StringVar(&settings.Out, "out", settings.Out, "output file (single) or summary file (batch)")
	flag.StringVar(&settings.Stage, "stage", settings.Stage, "stage id")
	flag.Int64Var(&settings.Seed, "seed", settings.Seed, "seed")
	flag.IntVar(&settings.Runs, "n", settings.Runs, "number of simulations")
	flag.IntVar(&settings.Workers, "workers", settings.Workers, "concurrent runs in batch mode")
	flag.Float64Var(&settings.Tick, "tick", settings.Tick, "simulation step in seconds")
	flag.Float64Var(&settings.MaxSeconds, "max", settings.MaxSeconds, "battle time limit in seconds")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.IntVar(&saveUp, "save-up", 0, "hold abilities until the pool reaches this much cost")
	flag.Parse()

	bundle, err := config.LoadAll(settings.ConfigDir)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	opts := encounter.Options{
		Seed:       settings.Seed,
		Tick:       settings.Tick,
		MaxSeconds: settings.MaxSeconds,
		Log:        log,
	}
	if saveUp > 0 {
		opts.Policy = combat.SaveUpPolicy{Threshold: saveUp}
	}

	if settings.Runs <= 1 {
		opts.Record = saveLog
		res, err := encounter.RunSingle(bundle, settings.Stage, opts)
		if err != nil {
			log.WithError(err).Fatal("run encounter")
		}
		if err := os.WriteFile(settings.Out, encounter.MarshalPretty(res), 0644); err != nil {
			log.WithError(err).Fatal("write result")
		}
		fmt.Printf("Single simsvc finished. Win=%v, T=%.2fs, DPS=%.1f -> %s\n", res.Win, res.Duration, res.DPS, settings.Out)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Per-run logs would drown the batch; keep warnings only.
	logSettings, _ := logger.LoadSettings()
	quiet := logger.New(logrus.WarnLevel.String(), logSettings.Format)
	opts.Log = logrus.NewEntry(quiet).WithField("service", "simsvc")

	summary, err := encounter.RunBatch(ctx, bundle, settings.Stage, settings.Runs, settings.Workers, opts)
	if err != nil {
		log.WithError(err).Fatal("run batch")
	}
	if err := os.WriteFile(settings.Out, encounter.MarshalPretty(summary), 0644); err != nil {
		log.WithError(err).Fatal("write summary")
	}
	log.WithFields(logrus.Fields{
		"runs":     summary.Runs,
		"win_rate": summary.WinRate,
		"avg_time": summary.AvgTime,
	}).Info("batch finished")
	fmt.Printf("Batch %d done -> %s\n", settings.Runs, filepath.Base(settings.Out))
}
