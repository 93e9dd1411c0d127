// Package dataload builds a WorldState and province Adjacency graph ready
// for the tick stepper: either from a real game install's data directory
// tree, or — when none is available — from the synthetic generator in
// demo.go. See design doc Section 5.8 and spec.md §2's load_world contract.
package dataload

import (
	"os"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/cache"
	"github.com/talonreach/dominion/internal/config"
	"github.com/talonreach/dominion/internal/military"
	"github.com/talonreach/dominion/internal/worldstate"
)

// Result bundles everything a loader produces: the populated world and the
// static adjacency graph movement/combat consult.
type Result struct {
	World *worldstate.WorldState
	Adj   *military.Adjacency
}

// LoadWorld reads the game data directory tree (provinces bitmap,
// definition CSV, adjacency CSV, history files, country tags, ideas,
// policies, subject-type definitions, trade network definitions,
// localisation) rooted at cfg.GamePath, building a WorldState and
// Adjacency graph at startDate with the given RNG seed.
//
// Parsing the real EU4 data-file formats is out of scope (spec.md
// Non-goals exclude persistence-format compatibility beyond save reading);
// this function defines the loader's contract and wires the cache layer,
// but returns an error for every cfg.GamePath: MissingFile for an empty or
// nonexistent path and for any existing directory, IO for a path that is not
// a directory, and CacheCorrupt if the cache cannot be opened. Callers that
// want a runnable world should use GenerateDemo instead.
func LoadWorld(cfg config.DataloadConfig, startDate calendar.Date, rngSeed uint64) (*Result, error) {
	if cfg.GamePath == "" {
		return nil, &Error{Kind: ErrorMissingFile, Path: cfg.GamePath}
	}
	info, err := os.Stat(cfg.GamePath)
	if err != nil {
		return nil, &Error{Kind: ErrorMissingFile, Path: cfg.GamePath, Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Kind: ErrorIO, Path: cfg.GamePath, Err: os.ErrInvalid}
	}

	store, err := cache.Open(cfg.CacheDir, cache.ModeFromString(cfg.CacheMode))
	if err != nil {
		return nil, &Error{Kind: ErrorCacheCorrupt, Path: cfg.CacheDir, Err: err}
	}
	defer store.Close()

	// A real implementation would now walk cfg.GamePath for
	// provinces.bmp/definition.csv/adjacencies.csv/history/common/
	// localisation, hash each against store, and either load the cached
	// parse or parse-and-store. None of those parsers exist here, so any
	// install path that does exist still fails as missing the specific
	// files the real loader would need.
	return nil, &Error{Kind: ErrorMissingFile, Path: cfg.GamePath, Err: os.ErrNotExist}
}
