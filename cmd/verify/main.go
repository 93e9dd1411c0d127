// Command verify replays a world from one EU4 save up to the date of a
// second save with no player inputs, then reports how closely the
// deterministic core's predictions matched the later save's recorded
// values. See design doc Section 5.13 and spec.md §6.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talonreach/dominion/internal/config"
	"github.com/talonreach/dominion/internal/dataload"
	"github.com/talonreach/dominion/internal/logging"
	"github.com/talonreach/dominion/internal/verify"
)

func main() {
	startSave := flag.String("start", "", "path to the earlier unpacked save file")
	targetSave := flag.String("target", "", "path to the later unpacked save file to verify against")
	gamePath := flag.String("game-path", "", "game install path for the template world (empty uses a synthetic template)")
	cacheDir := flag.String("cache-dir", "data/cache", "artifact cache directory")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	slog.SetDefault(logging.Setup(logging.ParseLevel(*logLevel)))

	if *startSave == "" || *targetSave == "" {
		fmt.Fprintln(os.Stderr, "usage: verify -start <save> -target <save> [-game-path <dir>]")
		os.Exit(2)
	}

	startFile, err := os.Open(*startSave)
	if err != nil {
		slog.Error("failed to open start save", "error", err)
		os.Exit(1)
	}
	defer startFile.Close()

	targetFile, err := os.Open(*targetSave)
	if err != nil {
		slog.Error("failed to open target save", "error", err)
		os.Exit(1)
	}
	defer targetFile.Close()

	startExtracted, err := verify.Extract(startFile)
	if err != nil {
		slog.Error("failed to parse start save", "error", err)
		os.Exit(1)
	}
	targetExtracted, err := verify.Extract(targetFile)
	if err != nil {
		slog.Error("failed to parse target save", "error", err)
		os.Exit(1)
	}

	var result *dataload.Result
	dlCfg := config.DataloadConfig{GamePath: *gamePath, CacheDir: *cacheDir, CacheMode: "fast"}
	if *gamePath != "" {
		loaded, err := dataload.LoadWorld(dlCfg, startExtracted.Meta.Date, 1)
		if err != nil {
			slog.Warn("failed to load real game data, falling back to a synthetic template", "error", err)
		} else {
			result = loaded
		}
	}
	if result == nil {
		demoCfg := dataload.DefaultDemoConfig()
		result = dataload.GenerateDemo(demoCfg, startExtracted.Meta.Date, 1)
	}

	hydrated, err := verify.Hydrate(startExtracted, result.World)
	if err != nil {
		slog.Error("failed to hydrate start world", "error", err)
		os.Exit(1)
	}

	report, err := verify.Replay(hydrated, targetExtracted, result.Adj, config.DefaultSimConfig())
	if err != nil {
		slog.Error("replay failed", "error", err)
		os.Exit(1)
	}

	printReport(report)
}

func printReport(report *verify.Report) {
	colorize := isatty.IsTerminal(os.Stdout.Fd())

	pass, close, fail := report.Summary()
	fmt.Printf("Replay %s -> %s: %s metrics compared\n",
		report.StartDate.String(), report.EndDate.String(), humanize.Comma(int64(len(report.Diffs))))
	fmt.Printf("  pass=%d close=%d fail=%d\n", pass, close, fail)

	for _, d := range report.Diffs {
		label := string(d.Verdict)
		if colorize {
			label = colorFor(d.Verdict) + label + "\x1b[0m"
		}
		fmt.Printf("  [%s] %-16s %-16s predicted=%.2f recorded=%.2f\n",
			label, d.Entity, d.Metric, d.Predicted, d.Recorded)
	}
}

func colorFor(v verify.Verdict) string {
	switch v {
	case verify.VerdictPass:
		return "\x1b[32m"
	case verify.VerdictClose:
		return "\x1b[33m"
	default:
		return "\x1b[31m"
	}
}
