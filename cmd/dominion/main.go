// Command dominion runs the deterministic grand-strategy simulation core:
// it loads (or generates) a world, steps it day by day, logs the checksum
// every -checksum-every days, and prints a summary when the run ends.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/config"
	"github.com/talonreach/dominion/internal/dataload"
	"github.com/talonreach/dominion/internal/engine"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/logging"
	"github.com/talonreach/dominion/internal/observer"
	"github.com/talonreach/dominion/internal/worldstate"
)

func main() {
	gamePath := flag.String("game-path", "", "path to a real EU4 install's data directory; empty runs a synthetic demo world")
	cacheDir := flag.String("cache-dir", "data/cache", "artifact cache directory")
	cacheMode := flag.String("cache-mode", "fast", "cache validation mode: fast or strict")
	seed := flag.Uint64("seed", 1444, "deterministic RNG seed")
	runDays := flag.Int("days", 365, "number of days to simulate before exiting")
	checksumEvery := flag.Uint("checksum-every", 30, "compute and log the deterministic checksum every N days (0 disables)")
	strict := flag.Bool("strict-invariants", false, "panic on the first invariant violation instead of normalizing and continuing")
	trainingOut := flag.String("training-out", "", "path to write a packed training file (empty disables)")
	eventLogOut := flag.String("eventlog-out", "", "path to write a line-delimited JSON event log (empty disables)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	slog.SetDefault(logging.Setup(logging.ParseLevel(*logLevel)))

	runID := uuid.New()
	slog.Info("dominion starting", "run_id", runID, "seed", *seed, "days", *runDays)

	dlCfg := config.DataloadConfig{GamePath: *gamePath, CacheDir: *cacheDir, CacheMode: *cacheMode}

	var result *dataload.Result
	if *gamePath == "" {
		slog.Info("no game-path given, generating a synthetic demo world")
		demoCfg := dataload.DefaultDemoConfig()
		result = dataload.GenerateDemo(demoCfg, calendar.GameStart, *seed)
	} else {
		loaded, err := dataload.LoadWorld(dlCfg, calendar.GameStart, *seed)
		if err != nil {
			slog.Error("failed to load world, falling back to demo", "error", err)
			demoCfg := dataload.DefaultDemoConfig()
			result = dataload.GenerateDemo(demoCfg, calendar.GameStart, *seed)
		} else {
			result = loaded
		}
	}

	slog.Info("world ready",
		"countries", len(result.World.Countries),
		"provinces", len(result.World.Provinces),
		"date", result.World.Date.String(),
	)

	registry := observer.NewRegistry()
	var trainingObs *observer.TrainingObserver
	var trainingFile *os.File
	if *trainingOut != "" {
		trainingObs = observer.NewTrainingObserver(1)
		registry.Register(trainingObs)
		var err error
		trainingFile, err = os.Create(*trainingOut)
		if err != nil {
			slog.Error("failed to open training output", "error", err)
		} else {
			defer trainingFile.Close()
		}
	}
	if *eventLogOut != "" {
		f, err := os.Create(*eventLogOut)
		if err != nil {
			slog.Error("failed to open event log output", "error", err)
		} else {
			defer f.Close()
			registry.Register(observer.NewEventLogObserver(f))
		}
	}

	simCfg := config.SimConfig{ChecksumFrequency: uint32(*checksumEvery), StrictInvariants: *strict}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	var interrupted atomic.Bool
	go func() {
		sig := <-stop
		slog.Info("received signal, stopping after the current day", "signal", sig)
		interrupted.Store(true)
	}()

	w := result.World
	for day := 0; day < *runDays && !interrupted.Load(); day++ {
		stepped, err := engine.StepWorld(w, nil, result.Adj, simCfg, registry)
		if err != nil {
			slog.Error("step failed", "day", day, "error", err)
			break
		}
		w = stepped
		if simCfg.ChecksumFrequency > 0 && (day+1)%int(simCfg.ChecksumFrequency) == 0 {
			slog.Info("checksum", "date", w.Date.String(), "checksum", engine.Checksum(w))
		}
	}

	totalTreasury := fixedTotalTreasury(w)
	fmt.Printf("dominion run %s complete: %d countries, %d provinces, total treasury %s, final date %s\n",
		runID, len(w.Countries), len(w.Provinces),
		humanize.Comma(totalTreasury),
		w.Date.String(),
	)

	if trainingObs != nil && trainingFile != nil {
		if err := trainingObs.Flush(trainingFile); err != nil {
			slog.Error("failed to flush training file", "error", err)
		}
	}
}

func fixedTotalTreasury(w *worldstate.WorldState) int64 {
	total := fixedpoint.Zero
	for _, tag := range w.SortedCountryTags() {
		total = total.Add(w.Countries[tag].Treasury)
	}
	return total.RoundToInt()
}
