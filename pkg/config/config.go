// Package config loads pindou's runtime settings from a .env file and
// the process environment, adapted from the teacher's godotenv usage in
// pkg/cli/terminal_preview.go (the only call site godotenv had, now
// dropped — see DESIGN.md) into a dedicated config loader.
package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings the CLI and core need before the pipeline
// starts.
type Config struct {
	// PalettePath points at the palette file (spec.md §6 format).
	PalettePath string
	// Workers is the worker count read from PINDOU_WORKERS (default:
	// the CPU count). The Cell Analyzer and Color Extractor run their
	// per-cell work sequentially and do not read it.
	Workers int
	// StoreDir is where persisted design records (pkg/store) are
	// written, when the store is backed by disk rather than memory.
	StoreDir string
}

const (
	envPalettePath = "PINDOU_PALETTE_PATH"
	envWorkers     = "PINDOU_WORKERS"
	envStoreDir    = "PINDOU_STORE_DIR"

	defaultPalettePath = "palette.json"
	defaultStoreDir    = "."
)

// Load reads a .env file at path (if present; godotenv.Load tolerates a
// missing file the same way the teacher's call site did) and then reads
// the three PINDOU_* variables from the environment, applying defaults
// for anything unset.
func Load(dotenvPath string) Config {
	if dotenvPath != "" {
		_ = godotenv.Load(dotenvPath)
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		PalettePath: defaultPalettePath,
		Workers:     runtime.NumCPU(),
		StoreDir:    defaultStoreDir,
	}
	if v := os.Getenv(envPalettePath); v != "" {
		cfg.PalettePath = v
	}
	if v := os.Getenv(envStoreDir); v != "" {
		cfg.StoreDir = v
	}
	if v := os.Getenv(envWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}
