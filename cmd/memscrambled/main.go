// Command memscrambled serves a single Memory Scramble board over HTTP.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/decred/slog"

	"memscramble/internal/boardfile"
	"memscramble/internal/config"
	"memscramble/internal/httpboard"
	"memscramble/pkg/board"
)

func main() {
	base := config.Default()

	var (
		boardPath  string
		addr       string
		wait       string
		debugLevel string
		configPath string
	)
	flag.StringVar(&boardPath, "board", "", "Path to the board file (required)")
	flag.StringVar(&addr, "addr", "", "Address to listen on, e.g. 127.0.0.1:8080")
	flag.StringVar(&wait, "wait", "", "Contested-cell policy: async or reject")
	flag.StringVar(&debugLevel, "debuglevel", "", "Logging level: trace, debug, info, warn, error")
	flag.StringVar(&configPath, "config", "", "Path to an optional TOML config overlay")
	flag.Parse()

	cfg, err := config.Load(configPath, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memscrambled: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags always win over the file, matching §6 ADDED's "flags override
	// file values".
	if boardPath != "" {
		cfg.Board = boardPath
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if wait != "" {
		cfg.Wait = wait
	}
	if debugLevel != "" {
		cfg.DebugLevel = debugLevel
	}

	if cfg.Board == "" {
		fmt.Fprintln(os.Stderr, "memscrambled: -board is required")
		os.Exit(1)
	}

	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("MAIN")
	level, ok := slog.LevelFromString(cfg.DebugLevel)
	if !ok {
		level = slog.LevelInfo
	}
	log.SetLevel(level)
	boardLog := backend.Logger("BORD")
	boardLog.SetLevel(level)
	httpLog := backend.Logger("HTTP")
	httpLog.SetLevel(level)

	data, err := os.ReadFile(cfg.Board)
	if err != nil {
		log.Errorf("failed to read board file %q: %v", cfg.Board, err)
		os.Exit(1)
	}
	parsed, err := boardfile.Parse(data)
	if err != nil {
		log.Errorf("failed to parse board file %q: %v", cfg.Board, err)
		os.Exit(1)
	}

	mode, err := parseWaitMode(cfg.Wait)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	b, err := board.NewBoard(board.Config{
		Rows:   parsed.Rows,
		Cols:   parsed.Cols,
		Labels: parsed.Labels,
		Mode:   mode,
		Log:    boardLog,
	})
	if err != nil {
		log.Errorf("failed to construct board: %v", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	httpboard.New(b, httpLog).Register(mux)

	log.Infof("listening on %s (%dx%d board, wait=%s)", cfg.Addr, parsed.Rows, parsed.Cols, cfg.Wait)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

func parseWaitMode(wait string) (board.WaitMode, error) {
	switch wait {
	case "", "async":
		return board.WaitAsync, nil
	case "reject":
		return board.WaitReject, nil
	default:
		return 0, fmt.Errorf("memscrambled: unknown -wait value %q, want async or reject", wait)
	}
}
