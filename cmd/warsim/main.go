// Command warsim runs a headless two-faction battle and reports the outcome.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/PaulDouglasAGI/war/internal/config"
	"github.com/PaulDouglasAGI/war/internal/eventlog"
	"github.com/PaulDouglasAGI/war/internal/sim"
	"github.com/PaulDouglasAGI/war/internal/terrain"
)

const (
	startingResources = 20
	progressInterval  = 500 // ticks between progress log lines
)

func main() {
	envCfg, err := config.ParseEnv()
	if err != nil {
		slog.Error("bad environment", "error", err)
		os.Exit(1)
	}

	var (
		seed     = flag.Int64("seed", envCfg.Seed, "RNG seed (0 = time-based)")
		maxTicks = flag.Int("ticks", envCfg.MaxTicks, "tick limit before calling a draw")
		cols     = flag.Int("cols", envCfg.Cols, "battlefield width in tiles")
		rows     = flag.Int("rows", envCfg.Rows, "battlefield height in tiles")
		rolesCfg = flag.String("roles", envCfg.RolesPath, "role table YAML (empty = builtin)")
		dbPath   = flag.String("db", envCfg.DBPath, "SQLite event log path (empty = none)")
		logLevel = flag.String("log-level", envCfg.LogLevel, "debug, info, warn or error")
	)
	flag.Parse()

	setupLogging(*logLevel)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	slog.Info("warsim", "seed", *seed, "cols", *cols, "rows", *rows, "max_ticks", *maxTicks)

	roles := sim.DefaultRoles()
	if *rolesCfg != "" {
		rc, err := config.LoadRoles(*rolesCfg)
		if err != nil {
			slog.Error("role table rejected", "path", *rolesCfg, "error", err)
			os.Exit(1)
		}
		roles = rc.Table()
		slog.Info("role table loaded", "path", *rolesCfg, "roles", len(rc.Roles))
	}

	anchors := terrain.HQAnchors(*cols, *rows)
	grid, err := terrain.Generate(terrain.DefaultGenConfig(*cols, *rows, *seed), anchors)
	if err != nil {
		slog.Error("terrain generation failed", "error", err)
		os.Exit(1)
	}

	// Neutral structures at the midfield choke points; skipped when the
	// noise put impassable terrain there.
	sites := []struct {
		kind sim.BuildingKind
		pos  sim.Point
	}{
		{sim.BuildingWatchtower, sim.Point{X: *cols / 2, Y: *rows / 4}},
		{sim.BuildingWatchtower, sim.Point{X: *cols / 2, Y: *rows * 3 / 4}},
		{sim.BuildingDepot, sim.Point{X: *cols / 4, Y: *rows / 2}},
		{sim.BuildingDepot, sim.Point{X: *cols * 3 / 4, Y: *rows / 2}},
	}

	opts := []sim.Option{
		sim.WithGrid(grid),
		sim.WithSeed(*seed),
		sim.WithHQ(sim.FactionRed, anchors[0]),
		sim.WithHQ(sim.FactionBlue, anchors[1]),
		sim.WithResources(sim.FactionRed, startingResources),
		sim.WithResources(sim.FactionBlue, startingResources),
		sim.WithRoles(roles),
	}
	for _, s := range sites {
		if grid.Walkable(s.pos) {
			opts = append(opts, sim.WithBuilding(s.kind, s.pos))
		}
	}

	var store *eventlog.Store
	if *dbPath != "" {
		store, err = eventlog.Open(*dbPath, *seed)
		if err != nil {
			slog.Error("event log unavailable", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		slog.Info("event log opened", "path", *dbPath, "run_id", store.RunID())
		opts = append(opts, sim.WithSink(store))
	}

	w := sim.NewWorld(opts...)
	start := time.Now()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	winner := sim.FactionNone
loop:
	for i := 0; i < *maxTicks; i++ {
		select {
		case sig := <-stop:
			slog.Info("stopping on signal", "signal", sig, "tick", w.Tick())
			break loop
		default:
		}
		w.AdvanceTick()
		if f, over := w.GameOver(); over {
			winner = f
			break
		}
		if w.Tick()%progressInterval == 0 {
			logProgress(w, store)
		}
	}
	elapsed := time.Since(start)

	if winner == sim.FactionNone {
		slog.Info("battle undecided at tick limit", "ticks", w.Tick())
	} else {
		slog.Info("battle decided", "winner", winner, "ticks", w.Tick())
	}
	for f := sim.FactionRed; f <= sim.FactionBlue; f++ {
		fs := w.Faction(f)
		slog.Info("faction summary",
			"faction", f,
			"units", w.RosterCount(f),
			"hq_health", fs.HQ.Health,
			"resources", fs.Resources,
			"kills", fs.Kills,
			"territory", w.Territory().OwnedCount(f),
		)
	}
	slog.Info("simulation finished",
		"ticks", humanize.Comma(int64(w.Tick())),
		"elapsed", elapsed.Round(time.Millisecond),
		"ticks_per_sec", humanize.Commaf(float64(w.Tick())/elapsed.Seconds()),
	)

	if store != nil {
		if err := store.FinishRun(winner, w.Tick()); err != nil {
			slog.Error("finalizing event log failed", "error", err)
			os.Exit(1)
		}
		if counts, err := store.CountByKind(); err == nil {
			slog.Info("events persisted", "by_kind", counts)
		}
	}
}

func logProgress(w *sim.World, store *eventlog.Store) {
	slog.Debug("progress",
		"tick", w.Tick(),
		"weather", w.CurrentWeather(),
		"red_units", w.RosterCount(sim.FactionRed),
		"blue_units", w.RosterCount(sim.FactionBlue),
		"red_hq", w.Faction(sim.FactionRed).HQ.Health,
		"blue_hq", w.Faction(sim.FactionBlue).HQ.Health,
	)
	if store != nil {
		if err := store.Flush(); err != nil {
			slog.Warn("event log flush failed", "error", err)
		}
	}
}

func setupLogging(level string) {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lv})))
}
